package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
	"ambientefest-api/repositories"
	"ambientefest-api/utils"
)

// clienteAuthMock simula la API de auth de Xano
type clienteAuthMock struct {
	postFn     func(path string, payload interface{}) ([]byte, error)
	credencial string
}

func (m *clienteAuthMock) Post(ctx context.Context, servicio xano.Servicio, path string, payload interface{}) ([]byte, error) {
	return m.postFn(path, payload)
}
func (m *clienteAuthMock) SetCredencial(token string) { m.credencial = token }
func (m *clienteAuthMock) ClearCredencial()           { m.credencial = "" }

// usuariosMock simula el repositorio de usuarios
type usuariosMock struct {
	usuarios []domain.Usuario
	err      error
}

func (m *usuariosMock) BuscarPorEmail(ctx context.Context, email string) (domain.Usuario, bool, error) {
	if m.err != nil {
		return domain.Usuario{}, false, m.err
	}
	for _, u := range m.usuarios {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return domain.Usuario{}, false, nil
}

func (m *usuariosMock) GetByID(ctx context.Context, id int) (domain.Usuario, error) {
	for _, u := range m.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.Usuario{}, &xano.ErrorRemoto{Status: 404}
}

// sesionesMock guarda sesiones en memoria
type sesionesMock struct {
	guardadas map[int]repositories.Sesion
}

func nuevasSesionesMock() *sesionesMock {
	return &sesionesMock{guardadas: make(map[int]repositories.Sesion)}
}

func (m *sesionesMock) Guardar(usuarioID int, sesion repositories.Sesion) error {
	m.guardadas[usuarioID] = sesion
	return nil
}

func (m *sesionesMock) Obtener(usuarioID int) (repositories.Sesion, error) {
	sesion, ok := m.guardadas[usuarioID]
	if !ok {
		return repositories.Sesion{}, repositories.ErrSesionNoEncontrada
	}
	return sesion, nil
}

func (m *sesionesMock) Borrar(usuarioID int) error {
	delete(m.guardadas, usuarioID)
	return nil
}

func usuarioDePrueba() domain.Usuario {
	return domain.Usuario{
		ID:     7,
		Nombre: "María",
		Email:  "maria@ejemplo.cl",
		RoleID: domain.RoleIDCliente,
		Rol:    domain.RolCliente,
	}
}

func TestLoginConTokenRemoto(t *testing.T) {
	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		if path != "/auth/login" {
			t.Errorf("ruta inesperada: %s", path)
		}
		return []byte(`{"authToken":"tok-remoto"}`), nil
	}}
	usuarios := &usuariosMock{usuarios: []domain.Usuario{usuarioDePrueba()}}
	sesiones := nuevasSesionesMock()
	servicio := NewAuthService(cliente, usuarios, sesiones, "")

	respuesta, err := servicio.Login(context.Background(), dto.LoginRequest{Email: "maria@ejemplo.cl", Password: "secreta"})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if cliente.credencial != "tok-remoto" {
		t.Errorf("la credencial remota no quedó guardada: %q", cliente.credencial)
	}
	if respuesta.Token == "" {
		t.Errorf("falta el token de sesión local")
	}
	if respuesta.Degradado {
		t.Errorf("un login remoto exitoso no es degradado")
	}
	if respuesta.Usuario.ID != 7 {
		t.Errorf("usuario incorrecto: %+v", respuesta.Usuario)
	}
	sesion, ok := sesiones.guardadas[7]
	if !ok || sesion.TokenRemoto != "tok-remoto" {
		t.Errorf("la sesión no se persistió con el token remoto")
	}
}

func TestExtraerTokenDeFormasConocidas(t *testing.T) {
	pruebas := []struct {
		nombre    string
		respuesta string
		esperado  string
	}{
		{"authToken directo", `{"authToken":"a"}`, "a"},
		{"token directo", `{"token":"b"}`, "b"},
		{"accessToken directo", `{"accessToken":"c"}`, "c"},
		{"anidado en data", `{"data":{"authToken":"d"}}`, "d"},
		{"primer elemento de arreglo", `[{"token":"e"}]`, "e"},
		{"sin token", `{"id":1}`, ""},
		{"no JSON", `hola`, ""},
	}

	for _, p := range pruebas {
		t.Run(p.nombre, func(t *testing.T) {
			if token := extraerToken([]byte(p.respuesta)); token != p.esperado {
				t.Errorf("extraerToken(%s) = %q, se esperaba %q", p.respuesta, token, p.esperado)
			}
		})
	}
}

func TestLoginSinTokenRemotoIgualEmiteSesion(t *testing.T) {
	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		return []byte(`{"message":"ok"}`), nil
	}}
	usuarios := &usuariosMock{usuarios: []domain.Usuario{usuarioDePrueba()}}
	servicio := NewAuthService(cliente, usuarios, nuevasSesionesMock(), "")

	respuesta, err := servicio.Login(context.Background(), dto.LoginRequest{Email: "maria@ejemplo.cl", Password: "secreta"})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if respuesta.Token == "" {
		t.Errorf("el login aceptado sin token remoto igual debe emitir sesión local")
	}
	if cliente.credencial != "" {
		t.Errorf("sin token remoto no hay credencial que guardar")
	}
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		return nil, &xano.ErrorRemoto{Status: 401, Ruta: "/auth/login"}
	}}
	servicio := NewAuthService(cliente, &usuariosMock{}, nuevasSesionesMock(), "")

	_, err := servicio.Login(context.Background(), dto.LoginRequest{Email: "maria@ejemplo.cl", Password: "mala"})

	var validacion *xano.ErrorValidacion
	if !errors.As(err, &validacion) {
		t.Fatalf("se esperaba ErrorValidacion, se obtuvo: %v", err)
	}
}

func TestLoginDegradadoConHashBcrypt(t *testing.T) {
	hash, err := utils.HashPassword("secreta")
	if err != nil {
		t.Fatalf("no se pudo generar el hash: %v", err)
	}
	usuario := usuarioDePrueba()
	usuario.PasswordHash = hash

	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		return nil, &xano.ErrorRed{Operacion: "POST /auth/login", Causa: errors.New("connection refused")}
	}}
	servicio := NewAuthService(cliente, &usuariosMock{usuarios: []domain.Usuario{usuario}}, nuevasSesionesMock(), "")

	respuesta, err := servicio.Login(context.Background(), dto.LoginRequest{Email: "maria@ejemplo.cl", Password: "secreta"})
	if err != nil {
		t.Fatalf("la vía degradada debía aceptar la contraseña correcta: %v", err)
	}
	if !respuesta.Degradado {
		t.Errorf("la respuesta debe marcar el login como degradado")
	}

	_, err = servicio.Login(context.Background(), dto.LoginRequest{Email: "maria@ejemplo.cl", Password: "incorrecta"})
	var validacion *xano.ErrorValidacion
	if !errors.As(err, &validacion) {
		t.Errorf("la contraseña incorrecta debía rechazarse: %v", err)
	}
}

func TestLoginDegradadoConContrasenaPlana(t *testing.T) {
	usuario := usuarioDePrueba()
	usuario.PasswordHash = "secreta"

	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		return nil, &xano.ErrorRed{Operacion: "POST /auth/login", Causa: errors.New("timeout")}
	}}
	servicio := NewAuthService(cliente, &usuariosMock{usuarios: []domain.Usuario{usuario}}, nuevasSesionesMock(), "")

	respuesta, err := servicio.Login(context.Background(), dto.LoginRequest{Email: "maria@ejemplo.cl", Password: "secreta"})
	if err != nil {
		t.Fatalf("los registros viejos con contraseña plana deben seguir entrando: %v", err)
	}
	if !respuesta.Degradado {
		t.Errorf("la respuesta debe marcar el login como degradado")
	}
}

func TestLoginAdminDeRespaldo(t *testing.T) {
	hash, err := utils.HashPassword("clave-admin")
	if err != nil {
		t.Fatalf("no se pudo generar el hash: %v", err)
	}

	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		return nil, &xano.ErrorRed{Operacion: "POST /auth/login", Causa: errors.New("connection refused")}
	}}
	// La API de datos tampoco responde
	usuarios := &usuariosMock{err: &xano.ErrorRed{Operacion: "GET /user", Causa: errors.New("connection refused")}}
	servicio := NewAuthService(cliente, usuarios, nuevasSesionesMock(), hash)

	respuesta, err := servicio.Login(context.Background(), dto.LoginRequest{Email: "admin@ambientefest.cl", Password: "clave-admin"})
	if err != nil {
		t.Fatalf("el admin de respaldo debía entrar: %v", err)
	}
	if respuesta.Usuario.Rol != domain.RolAdmin {
		t.Errorf("el admin de respaldo debe tener rol admin: %q", respuesta.Usuario.Rol)
	}

	// Con hash vacío la vía de respaldo queda deshabilitada
	sinRespaldo := NewAuthService(cliente, usuarios, nuevasSesionesMock(), "")
	if _, err := sinRespaldo.Login(context.Background(), dto.LoginRequest{Email: "admin@ambientefest.cl", Password: "clave-admin"}); err == nil {
		t.Errorf("sin hash configurado no debe existir el admin de respaldo")
	}
}

func TestRegistrarConflictoDeEmail(t *testing.T) {
	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		return nil, &xano.ErrorConflicto{Mensaje: "This email is already in use"}
	}}
	servicio := NewAuthService(cliente, &usuariosMock{}, nuevasSesionesMock(), "")

	_, err := servicio.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "María", Email: "maria@ejemplo.cl", Password: "secreta1",
	})

	var conflicto *xano.ErrorConflicto
	if !errors.As(err, &conflicto) {
		t.Fatalf("se esperaba ErrorConflicto, se obtuvo: %v", err)
	}
}

func TestRegistrarVerificaElAlta(t *testing.T) {
	usuario := usuarioDePrueba()
	usuario.PasswordHash = "$2a$10$hash"
	usuarios := &usuariosMock{usuarios: []domain.Usuario{usuario}}

	cliente := &clienteAuthMock{postFn: func(path string, payload interface{}) ([]byte, error) {
		if path != "/auth/signup" {
			t.Errorf("ruta inesperada: %s", path)
		}
		campos, ok := payload.(map[string]interface{})
		if !ok {
			t.Fatalf("payload inesperado: %T", payload)
		}
		if campos["last_name"] != "Soto" {
			t.Errorf("el alta debe llevar last_name: %v", campos["last_name"])
		}
		if _, existe := campos["lastname"]; existe {
			t.Errorf("lastname no es un campo de la tabla user")
		}
		return []byte(`{"id":7}`), nil
	}}
	servicio := NewAuthService(cliente, usuarios, nuevasSesionesMock(), "")

	creado, err := servicio.Registrar(context.Background(), dto.RegistroRequest{
		Nombre: "María", Apellidos: "Soto", Email: "maria@ejemplo.cl", Password: "secreta1",
	})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if creado.Email != "maria@ejemplo.cl" {
		t.Errorf("usuario verificado incorrecto: %+v", creado)
	}
	if creado.PasswordHash != "" || creado.Password != "" {
		t.Errorf("el usuario devuelto no debe traer secretos")
	}
}

func TestPerfilPrefiereSesionYLuegoRed(t *testing.T) {
	sesiones := nuevasSesionesMock()
	sesiones.guardadas[7] = repositories.Sesion{Usuario: usuarioDePrueba()}
	usuarios := &usuariosMock{usuarios: []domain.Usuario{{ID: 9, Email: "otro@ejemplo.cl"}}}
	servicio := NewAuthService(&clienteAuthMock{}, usuarios, sesiones, "")

	desdeSesion, err := servicio.Perfil(context.Background(), 7)
	if err != nil || desdeSesion.Email != "maria@ejemplo.cl" {
		t.Errorf("el perfil debía salir del snapshot de sesión: %+v err=%v", desdeSesion, err)
	}

	desdeRed, err := servicio.Perfil(context.Background(), 9)
	if err != nil || desdeRed.Email != "otro@ejemplo.cl" {
		t.Errorf("sin sesión el perfil debía salir de la API de datos: %+v err=%v", desdeRed, err)
	}
}

func TestLogoutBorraSesionYCredencial(t *testing.T) {
	sesiones := nuevasSesionesMock()
	sesiones.guardadas[7] = repositories.Sesion{Usuario: usuarioDePrueba()}
	cliente := &clienteAuthMock{credencial: "tok"}
	servicio := NewAuthService(cliente, &usuariosMock{}, sesiones, "")

	servicio.Logout(7)

	if _, ok := sesiones.guardadas[7]; ok {
		t.Errorf("la sesión debía borrarse")
	}
	if cliente.credencial != "" {
		t.Errorf("la credencial compartida debía descartarse")
	}
}

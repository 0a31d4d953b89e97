package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
	"ambientefest-api/repositories"
	"ambientefest-api/utils"
)

// ClienteAuth es la parte del cliente de Xano que necesita la autenticación
type ClienteAuth interface {
	Post(ctx context.Context, servicio xano.Servicio, path string, payload interface{}) ([]byte, error)
	SetCredencial(token string)
	ClearCredencial()
}

// RepositorioUsuariosAuth son las operaciones de usuarios que usa el login
type RepositorioUsuariosAuth interface {
	BuscarPorEmail(ctx context.Context, email string) (domain.Usuario, bool, error)
	GetByID(ctx context.Context, id int) (domain.Usuario, error)
}

// RepositorioSesiones persiste el snapshot de sesión de cada usuario
type RepositorioSesiones interface {
	Guardar(usuarioID int, sesion repositories.Sesion) error
	Obtener(usuarioID int) (repositories.Sesion, error)
	Borrar(usuarioID int) error
}

// Email del admin de respaldo que funciona aunque la API de auth caiga
const emailAdminRespaldo = "admin@ambientefest.cl"

const (
	intentosVerificacion = 3
	esperaVerificacion   = 300 * time.Millisecond
)

// AuthService implementa login, registro, perfil y logout contra la API
// de autenticación de Xano, con una vía degradada cuando esa API no
// responde.
type AuthService struct {
	cliente   ClienteAuth
	usuarios  RepositorioUsuariosAuth
	sesiones  RepositorioSesiones
	adminHash string
}

func NewAuthService(cliente ClienteAuth, usuarios RepositorioUsuariosAuth, sesiones RepositorioSesiones, adminHash string) *AuthService {
	return &AuthService{cliente: cliente, usuarios: usuarios, sesiones: sesiones, adminHash: adminHash}
}

// Login autentica contra la API de auth. Tres desenlaces posibles:
// token remoto obtenido, éxito sin token confirmado, o vía degradada si
// la API de auth no responde.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	payload := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
	}
	datos, err := s.cliente.Post(ctx, xano.ServicioAuth, "/auth/login", payload)
	if err != nil {
		var errRed *xano.ErrorRed
		if errors.As(err, &errRed) {
			log.Printf("auth: API de auth inalcanzable, se intenta la vía degradada: %v", err)
			return s.loginDegradado(ctx, req)
		}
		var errRemoto *xano.ErrorRemoto
		if errors.As(err, &errRemoto) && (errRemoto.Status == 401 || errRemoto.Status == 403) {
			return dto.LoginResponse{}, &xano.ErrorValidacion{Mensaje: "credenciales inválidas"}
		}
		return dto.LoginResponse{}, err
	}

	tokenRemoto := extraerToken(datos)
	if tokenRemoto != "" {
		s.cliente.SetCredencial(tokenRemoto)
	} else {
		log.Printf("auth: login aceptado sin token remoto para %s", req.Email)
	}

	usuario, encontrado, err := s.usuarios.BuscarPorEmail(ctx, req.Email)
	if err != nil || !encontrado {
		// El login remoto ya fue aceptado, no se rechaza por no poder
		// armar el snapshot completo
		usuario = domain.Usuario{Email: req.Email, RoleID: domain.RoleIDCliente, Rol: domain.RolCliente}
	}
	return s.emitirSesion(usuario, tokenRemoto, false)
}

// loginDegradado verifica las credenciales contra la API de datos cuando
// la de auth no está: compara la contraseña guardada y, si tampoco hay
// datos, reconoce al admin de respaldo por su hash bcrypt.
func (s *AuthService) loginDegradado(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	usuario, encontrado, err := s.usuarios.BuscarPorEmail(ctx, req.Email)
	if err == nil && encontrado {
		if verificarPassword(req.Password, usuario.PasswordHash) {
			return s.emitirSesion(usuario, "", true)
		}
		return dto.LoginResponse{}, &xano.ErrorValidacion{Mensaje: "credenciales inválidas"}
	}

	if s.adminHash != "" && strings.EqualFold(strings.TrimSpace(req.Email), emailAdminRespaldo) &&
		utils.CheckPassword(req.Password, s.adminHash) {
		admin := domain.Usuario{
			Nombre: "Admin",
			Email:  emailAdminRespaldo,
			RoleID: domain.RoleIDAdmin,
			Rol:    domain.RolAdmin,
		}
		return s.emitirSesion(admin, "", true)
	}

	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{}, &xano.ErrorValidacion{Mensaje: "credenciales inválidas"}
}

func (s *AuthService) emitirSesion(usuario domain.Usuario, tokenRemoto string, degradado bool) (dto.LoginResponse, error) {
	usuario = usuario.SinSecretos()
	token, err := utils.GenerateToken(usuario.ID, usuario.Email, usuario.Rol)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	sesion := repositories.Sesion{Usuario: usuario, TokenRemoto: tokenRemoto, CreadoEn: time.Now()}
	if err := s.sesiones.Guardar(usuario.ID, sesion); err != nil {
		log.Printf("auth: no se pudo guardar la sesión de %d: %v", usuario.ID, err)
	}
	return dto.LoginResponse{Token: token, Usuario: usuario, Degradado: degradado}, nil
}

// Registrar da de alta un usuario vía /auth/signup y verifica que el
// registro haya quedado con su hash de contraseña.
func (s *AuthService) Registrar(ctx context.Context, req dto.RegistroRequest) (domain.Usuario, error) {
	payload := map[string]interface{}{
		"name":      req.Nombre,
		"last_name": req.Apellidos,
		"email":     req.Email,
		"phone":     req.Telefono,
		"password":  req.Password,
	}
	if _, err := s.cliente.Post(ctx, xano.ServicioAuth, "/auth/signup", payload); err != nil {
		var conflicto *xano.ErrorConflicto
		if errors.As(err, &conflicto) {
			return domain.Usuario{}, &xano.ErrorConflicto{Mensaje: "el email ya está registrado"}
		}
		// Sin alta directa contra /user de respaldo: provoca duplicados
		return domain.Usuario{}, err
	}

	return s.verificarRegistro(ctx, req.Email)
}

// verificarRegistro espera a que el usuario recién creado aparezca en la
// API de datos con su contraseña hasheada. Xano a veces tarda en
// reflejar el alta.
func (s *AuthService) verificarRegistro(ctx context.Context, email string) (domain.Usuario, error) {
	var ultimo domain.Usuario
	for intento := 0; intento < intentosVerificacion; intento++ {
		if intento > 0 {
			select {
			case <-time.After(esperaVerificacion):
			case <-ctx.Done():
				return domain.Usuario{}, ctx.Err()
			}
		}
		usuario, encontrado, err := s.usuarios.BuscarPorEmail(ctx, email)
		if err != nil {
			continue
		}
		if encontrado {
			ultimo = usuario
			if usuario.PasswordHash != "" {
				return usuario.SinSecretos(), nil
			}
		}
	}
	if ultimo.ID != 0 {
		log.Printf("auth: el usuario %s quedó sin hash de contraseña verificable", email)
		return ultimo.SinSecretos(), nil
	}
	return domain.Usuario{}, &xano.ErrorValidacion{Mensaje: "el registro no se pudo verificar"}
}

// Perfil devuelve el usuario de la sesión, con la API de datos como
// segunda fuente si el snapshot expiró
func (s *AuthService) Perfil(ctx context.Context, usuarioID int) (domain.Usuario, error) {
	if sesion, err := s.sesiones.Obtener(usuarioID); err == nil {
		return sesion.Usuario, nil
	}
	usuario, err := s.usuarios.GetByID(ctx, usuarioID)
	if err != nil {
		return domain.Usuario{}, err
	}
	return usuario.SinSecretos(), nil
}

// Logout borra la sesión y descarta la credencial remota compartida
func (s *AuthService) Logout(usuarioID int) {
	if err := s.sesiones.Borrar(usuarioID); err != nil {
		log.Printf("auth: no se pudo borrar la sesión de %d: %v", usuarioID, err)
	}
	s.cliente.ClearCredencial()
}

// extraerToken busca el token de auth en las formas conocidas de
// respuesta de Xano: campo directo, anidado bajo data, o primer elemento
// de un arreglo
func extraerToken(datos []byte) string {
	var parsed interface{}
	if err := json.Unmarshal(datos, &parsed); err != nil {
		return ""
	}
	return tokenDesdeValor(parsed)
}

func tokenDesdeValor(valor interface{}) string {
	switch v := valor.(type) {
	case map[string]interface{}:
		for _, clave := range []string{"authToken", "token", "accessToken"} {
			if s, ok := v[clave].(string); ok && s != "" {
				return s
			}
		}
		if anidado, ok := v["data"]; ok {
			return tokenDesdeValor(anidado)
		}
	case []interface{}:
		if len(v) > 0 {
			return tokenDesdeValor(v[0])
		}
	}
	return ""
}

// verificarPassword acepta tanto un hash bcrypt como la contraseña en
// texto plano que dejan algunos registros viejos de la tabla user
func verificarPassword(password string, guardado string) bool {
	if guardado == "" {
		return false
	}
	if strings.HasPrefix(guardado, "$2a$") || strings.HasPrefix(guardado, "$2b$") || strings.HasPrefix(guardado, "$2y$") {
		return utils.CheckPassword(password, guardado)
	}
	return password == guardado
}

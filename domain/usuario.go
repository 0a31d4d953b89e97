package domain

// RoleID define los roles que existen en la tabla 'role' de Xano
const (
	RoleIDCliente = 1
	RoleIDAdmin   = 2
)

// Etiquetas de rol derivadas del role_id
const (
	RolCliente = "cliente"
	RolAdmin   = "admin"
)

// Usuario representa un usuario tal como lo consume el frontend.
// Los campos Password y PasswordHash nunca se serializan: el llamador debe
// usar SinSecretos antes de guardar el usuario en cualquier almacenamiento
// de sesión.
type Usuario struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Apellidos    string `json:"apellidos"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono,omitempty"`
	RoleID       int    `json:"role_id"`
	Rol          string `json:"rol"`
	Password     string `json:"-"`
	PasswordHash string `json:"-"`
	CreadoEn     string `json:"creado_en,omitempty"`
}

// SinSecretos retorna una copia del usuario sin credenciales.
// Se usa antes de persistir el snapshot del usuario en la sesión.
func (u Usuario) SinSecretos() Usuario {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// EsAdmin indica si el usuario tiene rol de administrador
func (u Usuario) EsAdmin() bool {
	return u.RoleID == RoleIDAdmin || u.Rol == RolAdmin
}

// RolDesdeRoleID deriva la etiqueta de rol desde el role_id numérico.
// 2 = admin, cualquier otro valor = cliente.
func RolDesdeRoleID(roleID int) string {
	if roleID == RoleIDAdmin {
		return RolAdmin
	}
	return RolCliente
}

// RoleIDDesdeRol es la inversa de RolDesdeRoleID: "admin" implica el id de
// admin y cualquier otra etiqueta (incluida la vacía de un usuario nuevo)
// implica el id de cliente.
func RoleIDDesdeRol(rol string) int {
	if rol == RolAdmin {
		return RoleIDAdmin
	}
	return RoleIDCliente
}

// Rol representa un registro de la tabla 'role'
type Rol struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

package dto

// UsuarioRequest estructura para el alta de un usuario desde el panel admin
type UsuarioRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email" binding:"required,email"`
	Telefono  string `json:"telefono"`
	Password  string `json:"password" binding:"required,min=6"`
	Rol       string `json:"rol"`
}

// UsuarioUpdateRequest estructura para actualizar un usuario. Todos los
// campos son opcionales, solo se manda lo que cambia.
type UsuarioUpdateRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email" binding:"omitempty,email"`
	Telefono  string `json:"telefono"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	Rol       string `json:"rol"`
}

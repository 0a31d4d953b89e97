package dto

import "ambientefest-api/domain"

// LoginRequest estructura para el inicio de sesión
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegistroRequest estructura para el registro de un usuario nuevo
type RegistroRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email" binding:"required,email"`
	Telefono  string `json:"telefono"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginResponse respuesta del login: el token de sesión local y el usuario.
// Degradado indica que la API de auth no estaba disponible y la
// verificación se hizo por la vía de respaldo.
type LoginResponse struct {
	Token     string         `json:"token"`
	Usuario   domain.Usuario `json:"usuario"`
	Degradado bool           `json:"degradado,omitempty"`
}

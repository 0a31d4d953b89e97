package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientefest-api/dto"
	"ambientefest-api/services"
)

// AuthController maneja las rutas de autenticación
type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login maneja POST /auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	respuesta, err := ctrl.authService.Login(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, respuesta)
}

// Registro maneja POST /auth/registro
func (ctrl *AuthController) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	usuario, err := ctrl.authService.Registrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usuario)
}

// Me maneja GET /auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	usuarioID := c.GetInt("user_id")
	usuario, err := ctrl.authService.Perfil(c.Request.Context(), usuarioID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// Logout maneja POST /auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.authService.Logout(c.GetInt("user_id"))
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "sesión cerrada"})
}

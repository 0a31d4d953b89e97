package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ambientefest-api/dto"
	"ambientefest-api/services"
)

// UsuarioController maneja el CRUD de usuarios del panel admin
type UsuarioController struct {
	usuarioService *services.UsuarioService
}

func NewUsuarioController(usuarioService *services.UsuarioService) *UsuarioController {
	return &UsuarioController{usuarioService: usuarioService}
}

// GetAll maneja GET /admin/usuarios
func (ctrl *UsuarioController) GetAll(c *gin.Context) {
	usuarios, err := ctrl.usuarioService.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

// GetByID maneja GET /admin/usuarios/:id
func (ctrl *UsuarioController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	usuario, err := ctrl.usuarioService.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// Create maneja POST /admin/usuarios
func (ctrl *UsuarioController) Create(c *gin.Context) {
	var req dto.UsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	usuario, err := ctrl.usuarioService.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usuario)
}

// Update maneja PATCH /admin/usuarios/:id
func (ctrl *UsuarioController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	var req dto.UsuarioUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	usuario, err := ctrl.usuarioService.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// Delete maneja DELETE /admin/usuarios/:id
func (ctrl *UsuarioController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	if err := ctrl.usuarioService.Borrar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "usuario eliminado"})
}

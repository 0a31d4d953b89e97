package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ambientefest-api/dto"
	"ambientefest-api/services"
)

// CarritoController maneja las rutas del carrito del usuario autenticado
type CarritoController struct {
	carritoService *services.CarritoService
}

func NewCarritoController(carritoService *services.CarritoService) *CarritoController {
	return &CarritoController{carritoService: carritoService}
}

// Ver maneja GET /carrito
func (ctrl *CarritoController) Ver(c *gin.Context) {
	detalle, err := ctrl.carritoService.Ver(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, detalle)
}

// Agregar maneja POST /carrito/items
func (ctrl *CarritoController) Agregar(c *gin.Context) {
	var req dto.AgregarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	item, err := ctrl.carritoService.Agregar(c.Request.Context(), c.GetInt("user_id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Actualizar maneja PATCH /carrito/items/:id
func (ctrl *CarritoController) Actualizar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	var req dto.ActualizarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	item, err := ctrl.carritoService.ActualizarItem(c.Request.Context(), c.GetInt("user_id"), id, req.Cantidad)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Quitar maneja DELETE /carrito/items/:id
func (ctrl *CarritoController) Quitar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	if err := ctrl.carritoService.QuitarItem(c.Request.Context(), c.GetInt("user_id"), id); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "línea eliminada"})
}

// Vaciar maneja DELETE /carrito
func (ctrl *CarritoController) Vaciar(c *gin.Context) {
	if err := ctrl.carritoService.Vaciar(c.Request.Context(), c.GetInt("user_id")); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "carrito vaciado"})
}

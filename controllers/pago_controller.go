package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ambientefest-api/dto"
	"ambientefest-api/services"
)

// PagoController maneja las rutas de pagos
type PagoController struct {
	pagoService *services.PagoService
}

func NewPagoController(pagoService *services.PagoService) *PagoController {
	return &PagoController{pagoService: pagoService}
}

// Pagar maneja POST /pagos
func (ctrl *PagoController) Pagar(c *gin.Context) {
	var req dto.PagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	pago, err := ctrl.pagoService.Pagar(c.Request.Context(), c.GetInt("user_id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pago)
}

// MisPagos maneja GET /pagos/mis
func (ctrl *PagoController) MisPagos(c *gin.Context) {
	pagos, err := ctrl.pagoService.MisPagos(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagos)
}

// GetAll maneja GET /admin/pagos
func (ctrl *PagoController) GetAll(c *gin.Context) {
	pagos, err := ctrl.pagoService.ListarTodos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagos)
}

// CambiarEstado maneja PATCH /admin/pagos/:id/estado
func (ctrl *PagoController) CambiarEstado(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	var req dto.EstadoPagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	pago, err := ctrl.pagoService.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, pago)
}

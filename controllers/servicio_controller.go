package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ambientefest-api/dto"
	"ambientefest-api/services"
)

// ServicioController maneja las rutas del catálogo de servicios
type ServicioController struct {
	servicioService *services.ServicioService
}

func NewServicioController(servicioService *services.ServicioService) *ServicioController {
	return &ServicioController{servicioService: servicioService}
}

// GetAll maneja GET /servicios. Con ?todos=true (solo tiene sentido para
// el panel admin) incluye los no disponibles e inactivos.
func (ctrl *ServicioController) GetAll(c *gin.Context) {
	incluirTodos := c.Query("todos") == "true"
	limite, _ := strconv.Atoi(c.Query("limite"))

	servicios, err := ctrl.servicioService.Listar(c.Request.Context(), incluirTodos, limite)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, servicios)
}

// GetByID maneja GET /servicios/:id
func (ctrl *ServicioController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	servicio, err := ctrl.servicioService.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, servicio)
}

// Create maneja POST /servicios. Acepta JSON o un formulario multipart
// con la imagen adjunta, según el Content-Type.
func (ctrl *ServicioController) Create(c *gin.Context) {
	creadoPor := c.GetInt("user_id")

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		ctrl.createMultipart(c, creadoPor)
		return
	}

	var req dto.ServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	servicio, err := ctrl.servicioService.Crear(c.Request.Context(), req, creadoPor)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, servicio)
}

func (ctrl *ServicioController) createMultipart(c *gin.Context, creadoPor int) {
	precio, _ := strconv.ParseFloat(c.PostForm("precio"), 64)
	req := dto.ServicioRequest{
		Nombre:         c.PostForm("nombre"),
		Descripcion:    c.PostForm("descripcion"),
		Precio:         precio,
		Categoria:      c.PostForm("categoria"),
		Proveedor:      c.PostForm("proveedor"),
		Disponibilidad: c.PostForm("disponibilidad"),
		Estado:         c.PostForm("estado"),
	}
	if id, err := strconv.Atoi(c.PostForm("service_category_id")); err == nil {
		req.ServiceCategoryID = id
	}
	if req.Nombre == "" || req.Precio <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "nombre y precio son obligatorios"})
		return
	}

	archivo, encabezado, err := c.Request.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "falta el archivo de imagen"})
		return
	}
	defer archivo.Close()

	servicio, err := ctrl.servicioService.CrearConImagen(c.Request.Context(), req, creadoPor, encabezado.Filename, archivo)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, servicio)
}

// Update maneja PATCH /servicios/:id
func (ctrl *ServicioController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	var req dto.ServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	servicio, err := ctrl.servicioService.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, servicio)
}

// Delete maneja DELETE /servicios/:id
func (ctrl *ServicioController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	if err := ctrl.servicioService.Borrar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "servicio eliminado"})
}

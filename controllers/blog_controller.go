package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ambientefest-api/dto"
	"ambientefest-api/services"
)

// BlogController maneja las rutas del blog y su moderación
type BlogController struct {
	blogService *services.BlogService
}

func NewBlogController(blogService *services.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

// GetAll maneja GET /blogs: solo publicaciones aprobadas
func (ctrl *BlogController) GetAll(c *gin.Context) {
	blogs, err := ctrl.blogService.ListarPublicos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// GetAllAdmin maneja GET /admin/blogs: todas, incluidas las pendientes
func (ctrl *BlogController) GetAllAdmin(c *gin.Context) {
	blogs, err := ctrl.blogService.ListarTodos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// GetByID maneja GET /blogs/:id
func (ctrl *BlogController) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	blog, err := ctrl.blogService.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// Create maneja POST /blogs. Acepta JSON o un formulario multipart con
// la imagen adjunta, según el Content-Type. La publicación queda
// pendiente de moderación.
func (ctrl *BlogController) Create(c *gin.Context) {
	autorID := c.GetInt("user_id")
	autor := c.GetString("email")

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		ctrl.createMultipart(c, autorID, autor)
		return
	}

	var req dto.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	blog, err := ctrl.blogService.Crear(c.Request.Context(), req, autorID, autor)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

func (ctrl *BlogController) createMultipart(c *gin.Context, autorID int, autor string) {
	req := dto.BlogRequest{
		Titulo:    c.PostForm("titulo"),
		Contenido: c.PostForm("contenido"),
		Categoria: c.PostForm("categoria"),
		Fecha:     c.PostForm("fecha"),
	}
	if req.Titulo == "" || req.Contenido == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "título y contenido son obligatorios"})
		return
	}

	archivo, encabezado, err := c.Request.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "falta el archivo de imagen"})
		return
	}
	defer archivo.Close()

	blog, err := ctrl.blogService.CrearConImagen(c.Request.Context(), req, autorID, autor, encabezado.Filename, archivo)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// CambiarEstado maneja PATCH /admin/blogs/:id/estado
func (ctrl *BlogController) CambiarEstado(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	var req dto.ModeracionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	blog, err := ctrl.blogService.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// Delete maneja DELETE /admin/blogs/:id
func (ctrl *BlogController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	if err := ctrl.blogService.Borrar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "publicación eliminada"})
}

// GetComentarios maneja GET /blogs/:id/comentarios
func (ctrl *BlogController) GetComentarios(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	comentarios, err := ctrl.blogService.ListarComentarios(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, comentarios)
}

// Comentar maneja POST /blogs/:id/comentarios
func (ctrl *BlogController) Comentar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID inválido"})
		return
	}

	var req dto.ComentarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "datos inválidos", Message: err.Error()})
		return
	}

	comentario, err := ctrl.blogService.Comentar(c.Request.Context(), id, c.GetInt("user_id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comentario)
}

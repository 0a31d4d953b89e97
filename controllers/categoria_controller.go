package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientefest-api/services"
)

// CategoriaController sirve las listas de categorías y roles
type CategoriaController struct {
	categoriaService *services.CategoriaService
}

func NewCategoriaController(categoriaService *services.CategoriaService) *CategoriaController {
	return &CategoriaController{categoriaService: categoriaService}
}

// CategoriasServicios maneja GET /categorias/servicios
func (ctrl *CategoriaController) CategoriasServicios(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.categoriaService.CategoriasServicios(c.Request.Context()))
}

// CategoriasBlogs maneja GET /categorias/blogs
func (ctrl *CategoriaController) CategoriasBlogs(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.categoriaService.CategoriasBlogs(c.Request.Context()))
}

// Roles maneja GET /roles
func (ctrl *CategoriaController) Roles(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.categoriaService.Roles(c.Request.Context()))
}

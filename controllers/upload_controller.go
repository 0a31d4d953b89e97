package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientefest-api/clients/xano"
	"ambientefest-api/dto"
)

// UploadController sube archivos a Xano y devuelve la URL pública
type UploadController struct {
	cliente *xano.Client
}

func NewUploadController(cliente *xano.Client) *UploadController {
	return &UploadController{cliente: cliente}
}

// Subir maneja POST /admin/uploads
func (ctrl *UploadController) Subir(c *gin.Context) {
	archivo, encabezado, err := c.Request.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "falta el archivo en el campo 'archivo'"})
		return
	}
	defer archivo.Close()

	url, err := ctrl.cliente.SubirArchivo(c.Request.Context(), "content", encabezado.Filename, archivo)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

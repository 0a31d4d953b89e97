package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ambientefest-api/clients/xano"
)

// clienteSalud es lo mínimo que necesita el chequeo de salud del cliente remoto
type clienteSalud interface {
	Get(ctx context.Context, servicio xano.Servicio, path string) ([]byte, error)
}

// SaludController responde el estado de la API y de la conexión con Xano
type SaludController struct {
	cliente clienteSalud
	espera  time.Duration
}

func NewSaludController(cliente clienteSalud) *SaludController {
	return &SaludController{cliente: cliente, espera: 3 * time.Second}
}

// Estado maneja GET /health: verifica que la base de datos remota responda
func (ctrl *SaludController) Estado(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.espera)
	defer cancel()

	if _, err := ctrl.cliente.Get(ctx, xano.ServicioDatos, "/health"); err != nil {
		// Cualquier respuesta del remoto cuenta como alcanzable, aunque
		// la ruta no exista. Solo un error de red lo marca caído.
		var red *xano.ErrorRed
		if errors.As(err, &red) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degradado",
				"service": "ambientefest-api",
				"xano":    "sin conexión",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ambientefest-api",
		"xano":    "ok",
	})
}

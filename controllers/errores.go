package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ambientefest-api/clients/xano"
	"ambientefest-api/dto"
)

// responderError traduce la taxonomía de errores del cliente de Xano a
// códigos HTTP. El orden importa: rate limit antes que remoto porque uno
// envuelve al otro.
func responderError(c *gin.Context, err error) {
	var validacion *xano.ErrorValidacion
	if errors.As(err, &validacion) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validacion.Mensaje})
		return
	}

	var conflicto *xano.ErrorConflicto
	if errors.As(err, &conflicto) {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: conflicto.Mensaje})
		return
	}

	var rateLimit *xano.ErrorRateLimit
	if errors.As(err, &rateLimit) {
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "demasiados pedidos al backend remoto, reintentá en unos segundos"})
		return
	}

	var red *xano.ErrorRed
	if errors.As(err, &red) {
		status := http.StatusServiceUnavailable
		if red.Timeout {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, dto.ErrorResponse{Error: "el backend remoto no responde"})
		return
	}

	var remoto *xano.ErrorRemoto
	if errors.As(err, &remoto) {
		if remoto.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "recurso no encontrado"})
			return
		}
		if remoto.Status >= 400 && remoto.Status < 500 {
			c.JSON(remoto.Status, dto.ErrorResponse{Error: "el backend remoto rechazó el pedido"})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "error del backend remoto"})
		return
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "error interno"})
}

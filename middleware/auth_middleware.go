package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ambientefest-api/domain"
	"ambientefest-api/dto"
	"ambientefest-api/utils"
)

// AuthMiddleware valida el token de sesión y deja los datos del usuario
// en el contexto de gin
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "token de autorización requerido"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "formato de token inválido"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "token inválido o expirado"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("rol", claims.Rol)
		c.Next()
	}
}

// AdminMiddleware verifica que el usuario autenticado sea administrador.
// Debe ir después de AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, exists := c.Get("rol")
		if !exists || rol != domain.RolAdmin {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "se requiere rol de administrador"})
			c.Abort()
			return
		}
		c.Next()
	}
}

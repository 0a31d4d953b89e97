package xano

import (
	"fmt"
	"strings"
)

// ErrorRed indica que no se pudo alcanzar la API remota
type ErrorRed struct {
	Operacion string
	Causa     error
	Timeout   bool
}

func (e *ErrorRed) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout en %s: %v", e.Operacion, e.Causa)
	}
	return fmt.Sprintf("error de red en %s: %v", e.Operacion, e.Causa)
}

func (e *ErrorRed) Unwrap() error {
	return e.Causa
}

// ErrorRemoto indica que la API remota respondió con un status de error
type ErrorRemoto struct {
	Status int
	Ruta   string
	Cuerpo string
}

func (e *ErrorRemoto) Error() string {
	return fmt.Sprintf("respuesta %d de %s: %s", e.Status, e.Ruta, e.Cuerpo)
}

// ErrorRateLimit es el caso particular de un 429. Se distingue del resto
// de los errores remotos porque los GET lo reintentan.
type ErrorRateLimit struct {
	ErrorRemoto
}

func (e *ErrorRateLimit) Error() string {
	return fmt.Sprintf("rate limit (429) en %s", e.Ruta)
}

func (e *ErrorRateLimit) Unwrap() error {
	return &e.ErrorRemoto
}

// ErrorConflicto indica que el recurso ya existe (email duplicado, etc.)
type ErrorConflicto struct {
	Mensaje string
}

func (e *ErrorConflicto) Error() string {
	return e.Mensaje
}

// ErrorValidacion indica datos de entrada inválidos, locales o remotos
type ErrorValidacion struct {
	Mensaje string
}

func (e *ErrorValidacion) Error() string {
	return e.Mensaje
}

// esConflicto detecta respuestas remotas que en realidad son un duplicado.
// Xano usa 403 con un texto "already in use" para emails repetidos.
func esConflicto(status int, cuerpo string) bool {
	if status == 409 {
		return true
	}
	bajo := strings.ToLower(cuerpo)
	if (status == 403 || status == 422 || status == 400) &&
		(strings.Contains(bajo, "already in use") ||
			strings.Contains(bajo, "already exists") ||
			strings.Contains(bajo, "duplicate")) {
		return true
	}
	return false
}

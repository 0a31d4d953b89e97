package domain

// Pago es un registro de pago tal como lo devuelve la API remota
type Pago struct {
	ID        int     `json:"id"`
	UsuarioID int     `json:"usuario_id"`
	CarritoID int     `json:"carrito_id"`
	Monto     float64 `json:"monto"`
	Metodo    string  `json:"metodo"`
	Estado    string  `json:"estado"`
	Fecha     string  `json:"fecha"`
}

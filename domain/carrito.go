package domain

// Carrito es la cabecera del carrito de un usuario en la API remota
type Carrito struct {
	ID        int    `json:"id"`
	UsuarioID int    `json:"usuario_id"`
	CreadoEn  string `json:"creado_en,omitempty"`
}

// ItemCarrito es una línea del carrito. El subtotal se calcula con el
// precio vigente del servicio al momento de agregarlo.
type ItemCarrito struct {
	ID         int     `json:"id"`
	CarritoID  int     `json:"carrito_id"`
	ServicioID int     `json:"servicio_id"`
	Cantidad   int     `json:"cantidad"`
	Subtotal   float64 `json:"subtotal"`
}

// CarritoDetalle agrupa la cabecera con sus items y el total calculado
type CarritoDetalle struct {
	Carrito Carrito       `json:"carrito"`
	Items   []ItemCarrito `json:"items"`
	Total   float64       `json:"total"`
}

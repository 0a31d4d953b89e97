package dto

// PagoRequest estructura para registrar un pago del carrito vigente
type PagoRequest struct {
	Metodo string `json:"metodo" binding:"required"`
}

// EstadoPagoRequest estructura para que un admin cambie el estado del pago
type EstadoPagoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

package dto

// AgregarItemRequest estructura para agregar un servicio al carrito
type AgregarItemRequest struct {
	ServicioID int `json:"servicio_id" binding:"required"`
	Cantidad   int `json:"cantidad" binding:"required,gt=0"`
}

// ActualizarItemRequest estructura para cambiar la cantidad de una línea
type ActualizarItemRequest struct {
	Cantidad int `json:"cantidad" binding:"required,gt=0"`
}

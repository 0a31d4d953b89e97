package dto

// ServicioRequest estructura para crear o actualizar un servicio
type ServicioRequest struct {
	Nombre            string  `json:"nombre" binding:"required"`
	Descripcion       string  `json:"descripcion"`
	Precio            float64 `json:"precio" binding:"required,gt=0"`
	Categoria         string  `json:"categoria"`
	Proveedor         string  `json:"proveedor"`
	Disponibilidad    string  `json:"disponibilidad"`
	Imagen            string  `json:"imagen"`
	Disponible        *bool   `json:"disponible"`
	Estado            string  `json:"estado"`
	ServiceCategoryID int     `json:"service_category_id"`
}

package domain

// Estados posibles de un servicio en el catálogo
const (
	ServicioActivo   = "active"
	ServicioInactivo = "inactive"
)

// Servicio representa un servicio de eventos del catálogo.
// Imagen siempre es un string (URL resuelta o cadena vacía si no hay
// imagen); la normalización desde las formas ambiguas de Xano ocurre en los
// mappers del repositorio.
type Servicio struct {
	ID                int     `json:"id"`
	Nombre            string  `json:"nombre"`
	Descripcion       string  `json:"descripcion"`
	Precio            float64 `json:"precio"`
	Categoria         string  `json:"categoria"`
	Proveedor         string  `json:"proveedor"`
	Disponibilidad    string  `json:"disponibilidad"`
	Imagen            string  `json:"imagen"`
	ImagenURL         string  `json:"imagen_url"`
	Valoracion        float64 `json:"valoracion"`
	NumValoraciones   int     `json:"numValoraciones"`
	Disponible        bool    `json:"disponible"`
	Estado            string  `json:"estado"`
	CreadoPor         int     `json:"creado_por"`
	ServiceCategoryID int     `json:"service_category_id,omitempty"`
	CreadoEn          string  `json:"creado_en,omitempty"`
}

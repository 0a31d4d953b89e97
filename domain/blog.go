package domain

// Estados de moderación de un blog (valores tal como los guarda Xano).
// Un blog se crea pendiente y solo un admin lo aprueba o rechaza.
const (
	BlogPendiente = "pending"
	BlogAprobado  = "active"
	BlogRechazado = "rejected"
)

// Blog representa una publicación del blog.
// La URL de imagen resuelta se expone bajo tres alias (imagen, imagen_url,
// image_url) porque distintas vistas del frontend usan distinto nombre.
type Blog struct {
	ID               int    `json:"id"`
	Titulo           string `json:"titulo"`
	Contenido        string `json:"contenido"`
	Categoria        string `json:"categoria"`
	Imagen           string `json:"imagen"`
	ImagenURL        string `json:"imagen_url"`
	ImageURL         string `json:"image_url"`
	FechaPublicacion string `json:"fecha_publicacion"`
	Fecha            string `json:"fecha"`
	Estado           string `json:"estado"`
	AutorID          int    `json:"autor_id"`
	Autor            string `json:"autor"`
	CreadoEn         string `json:"creado_en,omitempty"`
}

// EstadoBlogValido indica si un estado de moderación es reconocido
func EstadoBlogValido(estado string) bool {
	switch estado {
	case BlogPendiente, BlogAprobado, BlogRechazado:
		return true
	}
	return false
}

// Comentario representa un comentario sobre una publicación del blog
type Comentario struct {
	ID        int    `json:"id"`
	BlogID    int    `json:"blog_id"`
	UsuarioID int    `json:"usuario_id"`
	Contenido string `json:"contenido"`
	Fecha     string `json:"fecha"`
}

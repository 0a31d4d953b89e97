package dto

// BlogRequest estructura para crear o actualizar una publicación.
// El estado no se acepta desde afuera: toda publicación nueva entra
// pendiente de moderación.
type BlogRequest struct {
	Titulo    string `json:"titulo" binding:"required"`
	Contenido string `json:"contenido" binding:"required"`
	Categoria string `json:"categoria"`
	Imagen    string `json:"imagen"`
	Fecha     string `json:"fecha"`
}

// ModeracionRequest estructura para aprobar o rechazar una publicación
type ModeracionRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// ComentarioRequest estructura para comentar una publicación
type ComentarioRequest struct {
	Contenido string `json:"contenido" binding:"required"`
}

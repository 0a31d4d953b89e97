package services

import (
	"context"
	"io"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
)

// RepositorioBlogs son las operaciones del blog que usa el servicio
type RepositorioBlogs interface {
	GetAll(ctx context.Context, soloAprobados bool) ([]domain.Blog, error)
	GetByID(ctx context.Context, id int) (domain.Blog, error)
	Create(ctx context.Context, blog domain.Blog) (domain.Blog, error)
	CreateMultipart(ctx context.Context, blog domain.Blog, nombreArchivo string, contenido io.Reader) (domain.Blog, error)
	UpdateStatus(ctx context.Context, id int, estado string) (domain.Blog, error)
	Delete(ctx context.Context, id int) error
	GetComentarios(ctx context.Context, blogID int) ([]domain.Comentario, error)
	CreateComentario(ctx context.Context, comentario domain.Comentario) (domain.Comentario, error)
}

// BlogService maneja las publicaciones del blog y su moderación
type BlogService struct {
	repo RepositorioBlogs
}

func NewBlogService(repo RepositorioBlogs) *BlogService {
	return &BlogService{repo: repo}
}

// ListarPublicos devuelve solo las publicaciones aprobadas
func (s *BlogService) ListarPublicos(ctx context.Context) ([]domain.Blog, error) {
	return s.repo.GetAll(ctx, true)
}

// ListarTodos devuelve todas las publicaciones, para el panel de moderación
func (s *BlogService) ListarTodos(ctx context.Context) ([]domain.Blog, error) {
	return s.repo.GetAll(ctx, false)
}

func (s *BlogService) Obtener(ctx context.Context, id int) (domain.Blog, error) {
	return s.repo.GetByID(ctx, id)
}

// Crear da de alta la publicación siempre en estado pendiente, sin
// importar lo que mande el cliente
func (s *BlogService) Crear(ctx context.Context, req dto.BlogRequest, autorID int, autor string) (domain.Blog, error) {
	fecha := req.Fecha
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}
	blog := domain.Blog{
		Titulo:           req.Titulo,
		Contenido:        req.Contenido,
		Categoria:        req.Categoria,
		Imagen:           req.Imagen,
		FechaPublicacion: fecha,
		Estado:           domain.BlogPendiente,
		AutorID:          autorID,
		Autor:            autor,
	}
	return s.repo.Create(ctx, blog)
}

// CrearConImagen da de alta la publicación con su imagen en un solo
// formulario multipart, también en estado pendiente
func (s *BlogService) CrearConImagen(ctx context.Context, req dto.BlogRequest, autorID int, autor string, nombreArchivo string, contenido io.Reader) (domain.Blog, error) {
	fecha := req.Fecha
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}
	blog := domain.Blog{
		Titulo:           req.Titulo,
		Contenido:        req.Contenido,
		Categoria:        req.Categoria,
		FechaPublicacion: fecha,
		Estado:           domain.BlogPendiente,
		AutorID:          autorID,
		Autor:            autor,
	}
	return s.repo.CreateMultipart(ctx, blog, nombreArchivo, contenido)
}

// CambiarEstado aprueba o rechaza una publicación pendiente
func (s *BlogService) CambiarEstado(ctx context.Context, id int, estado string) (domain.Blog, error) {
	if !domain.EstadoBlogValido(estado) {
		return domain.Blog{}, &xano.ErrorValidacion{Mensaje: "estado de moderación desconocido: " + estado}
	}
	return s.repo.UpdateStatus(ctx, id, estado)
}

func (s *BlogService) Borrar(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *BlogService) ListarComentarios(ctx context.Context, blogID int) ([]domain.Comentario, error) {
	return s.repo.GetComentarios(ctx, blogID)
}

// Comentar agrega un comentario de un usuario autenticado sobre una
// publicación aprobada
func (s *BlogService) Comentar(ctx context.Context, blogID int, usuarioID int, req dto.ComentarioRequest) (domain.Comentario, error) {
	blog, err := s.repo.GetByID(ctx, blogID)
	if err != nil {
		return domain.Comentario{}, err
	}
	if blog.Estado != domain.BlogAprobado {
		return domain.Comentario{}, &xano.ErrorValidacion{Mensaje: "la publicación no está aprobada"}
	}
	return s.repo.CreateComentario(ctx, domain.Comentario{
		BlogID:    blogID,
		UsuarioID: usuarioID,
		Contenido: req.Contenido,
	})
}

package repositories

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/events"
)

// BlogRepository maneja las publicaciones del blog y sus comentarios
type BlogRepository struct {
	cliente   *xano.Client
	cache     *CacheRepository
	publisher *events.Publisher
	ttl       time.Duration
}

func NewBlogRepository(cliente *xano.Client, cache *CacheRepository, publisher *events.Publisher, ttl time.Duration) *BlogRepository {
	return &BlogRepository{cliente: cliente, cache: cache, publisher: publisher, ttl: ttl}
}

// GetAll lista blogs. Si soloAprobados es true filtra los que pasaron
// moderación, que es lo único que ve el público.
func (r *BlogRepository) GetAll(ctx context.Context, soloAprobados bool) ([]domain.Blog, error) {
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, "/blog", r.ttl)
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	blogs := make([]domain.Blog, 0, len(registros))
	for _, registro := range registros {
		blog := mapBlogDesdeXano(registro)
		if soloAprobados && blog.Estado != domain.BlogAprobado {
			continue
		}
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id int) (domain.Blog, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, fmt.Sprintf("/blog/%d", id))
	if err != nil {
		return domain.Blog{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Blog{}, err
	}
	return mapBlogDesdeXano(registro), nil
}

func (r *BlogRepository) Create(ctx context.Context, blog domain.Blog) (domain.Blog, error) {
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/blog", mapBlogHaciaXano(blog))
	if err != nil {
		return domain.Blog{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Blog{}, err
	}
	creado := mapBlogDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

// CreateMultipart da de alta una publicación con la imagen adjunta en
// el mismo formulario
func (r *BlogRepository) CreateMultipart(ctx context.Context, blog domain.Blog, nombreArchivo string, contenido io.Reader) (domain.Blog, error) {
	campos := map[string]string{
		"title":            blog.Titulo,
		"content":          blog.Contenido,
		"category":         blog.Categoria,
		"publication_date": blog.FechaPublicacion,
		"status":           blog.Estado,
		"user_id":          strconv.Itoa(blog.AutorID),
	}
	datos, err := r.cliente.PostMultipart(ctx, xano.ServicioDatos, "/blog", campos, "image_file", nombreArchivo, contenido)
	if err != nil {
		return domain.Blog{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Blog{}, err
	}
	creado := mapBlogDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

func (r *BlogRepository) Update(ctx context.Context, id int, blog domain.Blog) (domain.Blog, error) {
	datos, err := r.cliente.Patch(ctx, xano.ServicioDatos, fmt.Sprintf("/blog/%d", id), mapBlogHaciaXano(blog))
	if err != nil {
		return domain.Blog{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Blog{}, err
	}
	actualizado := mapBlogDesdeXano(registro)
	r.invalidar("update", id)
	return actualizado, nil
}

// UpdateStatus cambia solo el estado de moderación del blog
func (r *BlogRepository) UpdateStatus(ctx context.Context, id int, estado string) (domain.Blog, error) {
	datos, err := r.cliente.Patch(ctx, xano.ServicioDatos, fmt.Sprintf("/blog/%d", id), map[string]interface{}{"status": estado})
	if err != nil {
		return domain.Blog{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Blog{}, err
	}
	actualizado := mapBlogDesdeXano(registro)
	r.invalidar("update", id)
	return actualizado, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id int) error {
	if err := r.cliente.Delete(ctx, xano.ServicioDatos, fmt.Sprintf("/blog/%d", id)); err != nil {
		return err
	}
	r.invalidar("delete", id)
	return nil
}

// GetComentarios lista los comentarios de una publicación
func (r *BlogRepository) GetComentarios(ctx context.Context, blogID int) ([]domain.Comentario, error) {
	valores := url.Values{}
	valores.Set("blog_id", strconv.Itoa(blogID))
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, "/blog_comment?"+valores.Encode(), r.ttl)
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	comentarios := make([]domain.Comentario, 0, len(registros))
	for _, registro := range registros {
		comentario := domain.Comentario{
			ID:        comoInt(registro["id"]),
			BlogID:    comoInt(primeroNoVacio(registro, "blog_id", "blogId")),
			UsuarioID: comoInt(primeroNoVacio(registro, "user_id", "usuario_id")),
			Contenido: comoString(primeroNoVacio(registro, "content", "comment", "contenido")),
			Fecha:     comoString(primeroNoVacio(registro, "date", "created_at", "fecha")),
		}
		// Algunas respuestas traen comentarios de otros blogs mezclados
		if comentario.BlogID != 0 && comentario.BlogID != blogID {
			continue
		}
		comentarios = append(comentarios, comentario)
	}
	return comentarios, nil
}

func (r *BlogRepository) CreateComentario(ctx context.Context, comentario domain.Comentario) (domain.Comentario, error) {
	payload := map[string]interface{}{
		"blog_id": comentario.BlogID,
		"user_id": comentario.UsuarioID,
		"content": comentario.Contenido,
	}
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/blog_comment", payload)
	if err != nil {
		return domain.Comentario{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Comentario{}, err
	}
	creado := domain.Comentario{
		ID:        comoInt(registro["id"]),
		BlogID:    comoInt(primeroNoVacio(registro, "blog_id", "blogId")),
		UsuarioID: comoInt(primeroNoVacio(registro, "user_id", "usuario_id")),
		Contenido: comoString(primeroNoVacio(registro, "content", "comment", "contenido")),
		Fecha:     comoString(primeroNoVacio(registro, "date", "created_at", "fecha")),
	}
	r.invalidar("create", creado.ID)
	return creado, nil
}

func (r *BlogRepository) invalidar(accion string, id int) {
	r.cache.InvalidarPrefijo(xano.ServicioDatos, "/blog")
	r.publisher.Publicar(accion, "blog", id)
}

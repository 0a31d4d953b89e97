package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
)

// blogsMock simula el repositorio de blogs en memoria
type blogsMock struct {
	blogs         []domain.Blog
	comentarios   []domain.Comentario
	siguienteID   int
	ultimoArchivo string
}

func (m *blogsMock) GetAll(ctx context.Context, soloAprobados bool) ([]domain.Blog, error) {
	if !soloAprobados {
		return m.blogs, nil
	}
	aprobados := []domain.Blog{}
	for _, b := range m.blogs {
		if b.Estado == domain.BlogAprobado {
			aprobados = append(aprobados, b)
		}
	}
	return aprobados, nil
}

func (m *blogsMock) GetByID(ctx context.Context, id int) (domain.Blog, error) {
	for _, b := range m.blogs {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Blog{}, &xano.ErrorRemoto{Status: 404}
}

func (m *blogsMock) Create(ctx context.Context, blog domain.Blog) (domain.Blog, error) {
	m.siguienteID++
	blog.ID = m.siguienteID
	m.blogs = append(m.blogs, blog)
	return blog, nil
}

func (m *blogsMock) CreateMultipart(ctx context.Context, blog domain.Blog, nombreArchivo string, contenido io.Reader) (domain.Blog, error) {
	m.ultimoArchivo = nombreArchivo
	return m.Create(ctx, blog)
}

func (m *blogsMock) UpdateStatus(ctx context.Context, id int, estado string) (domain.Blog, error) {
	for i := range m.blogs {
		if m.blogs[i].ID == id {
			m.blogs[i].Estado = estado
			return m.blogs[i], nil
		}
	}
	return domain.Blog{}, &xano.ErrorRemoto{Status: 404}
}

func (m *blogsMock) Delete(ctx context.Context, id int) error { return nil }

func (m *blogsMock) GetComentarios(ctx context.Context, blogID int) ([]domain.Comentario, error) {
	return m.comentarios, nil
}

func (m *blogsMock) CreateComentario(ctx context.Context, comentario domain.Comentario) (domain.Comentario, error) {
	comentario.ID = len(m.comentarios) + 1
	m.comentarios = append(m.comentarios, comentario)
	return comentario, nil
}

func TestCrearBlogSiempreQuedaPendiente(t *testing.T) {
	mock := &blogsMock{}
	servicio := NewBlogService(mock)

	blog, err := servicio.Crear(context.Background(), dto.BlogRequest{
		Titulo: "Tendencias 2026", Contenido: "...", Categoria: "Tendencia",
	}, 7, "maria@ejemplo.cl")
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if blog.Estado != domain.BlogPendiente {
		t.Errorf("toda publicación nueva debe quedar pendiente, quedó %q", blog.Estado)
	}
	if blog.AutorID != 7 || blog.Autor != "maria@ejemplo.cl" {
		t.Errorf("autor incorrecto: %+v", blog)
	}
	if blog.FechaPublicacion == "" {
		t.Errorf("la fecha debía completarse sola")
	}
}

func TestCrearBlogConImagenTambienQuedaPendiente(t *testing.T) {
	mock := &blogsMock{}
	servicio := NewBlogService(mock)

	blog, err := servicio.CrearConImagen(context.Background(), dto.BlogRequest{
		Titulo: "Decoración de exteriores", Contenido: "...", Categoria: "Consejos",
	}, 7, "maria@ejemplo.cl", "portada.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if blog.Estado != domain.BlogPendiente {
		t.Errorf("la publicación con imagen también queda pendiente, quedó %q", blog.Estado)
	}
	if mock.ultimoArchivo != "portada.png" {
		t.Errorf("el archivo no llegó al repositorio: %q", mock.ultimoArchivo)
	}
}

func TestListarPublicosFiltraPendientesYRechazados(t *testing.T) {
	mock := &blogsMock{blogs: []domain.Blog{
		{ID: 1, Estado: domain.BlogAprobado},
		{ID: 2, Estado: domain.BlogPendiente},
		{ID: 3, Estado: domain.BlogRechazado},
	}}
	servicio := NewBlogService(mock)

	publicos, err := servicio.ListarPublicos(context.Background())
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if len(publicos) != 1 || publicos[0].ID != 1 {
		t.Errorf("el público solo ve aprobados: %+v", publicos)
	}

	todos, _ := servicio.ListarTodos(context.Background())
	if len(todos) != 3 {
		t.Errorf("la moderación ve todos: %d", len(todos))
	}
}

func TestCambiarEstadoRechazaValoresDesconocidos(t *testing.T) {
	mock := &blogsMock{blogs: []domain.Blog{{ID: 1, Estado: domain.BlogPendiente}}}
	servicio := NewBlogService(mock)

	if _, err := servicio.CambiarEstado(context.Background(), 1, "publicado"); err == nil {
		t.Errorf("un estado desconocido debe rechazarse")
	}

	blog, err := servicio.CambiarEstado(context.Background(), 1, domain.BlogAprobado)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if blog.Estado != domain.BlogAprobado {
		t.Errorf("el estado no cambió: %q", blog.Estado)
	}
}

func TestComentarSoloPublicacionesAprobadas(t *testing.T) {
	mock := &blogsMock{blogs: []domain.Blog{
		{ID: 1, Estado: domain.BlogAprobado},
		{ID: 2, Estado: domain.BlogPendiente},
	}}
	servicio := NewBlogService(mock)

	comentario, err := servicio.Comentar(context.Background(), 1, 7, dto.ComentarioRequest{Contenido: "Muy útil"})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if comentario.BlogID != 1 || comentario.UsuarioID != 7 {
		t.Errorf("comentario mal armado: %+v", comentario)
	}

	_, err = servicio.Comentar(context.Background(), 2, 7, dto.ComentarioRequest{Contenido: "..."})
	var validacion *xano.ErrorValidacion
	if !errors.As(err, &validacion) {
		t.Errorf("no se puede comentar una publicación pendiente: %v", err)
	}
}

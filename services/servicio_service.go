package services

import (
	"context"
	"io"

	"ambientefest-api/domain"
	"ambientefest-api/dto"
	"ambientefest-api/repositories"
)

// RepositorioServicios son las operaciones de catálogo que usa el servicio
type RepositorioServicios interface {
	GetAll(ctx context.Context, opciones repositories.OpcionesListado) ([]domain.Servicio, error)
	GetByID(ctx context.Context, id int) (domain.Servicio, error)
	Create(ctx context.Context, servicio domain.Servicio) (domain.Servicio, error)
	CreateMultipart(ctx context.Context, servicio domain.Servicio, nombreArchivo string, contenido io.Reader) (domain.Servicio, error)
	Update(ctx context.Context, id int, servicio domain.Servicio) (domain.Servicio, error)
	Delete(ctx context.Context, id int) error
}

// ServicioService maneja el catálogo de servicios de eventos
type ServicioService struct {
	repo RepositorioServicios
}

func NewServicioService(repo RepositorioServicios) *ServicioService {
	return &ServicioService{repo: repo}
}

// Listar devuelve el catálogo público (disponibles y activos) o el
// completo si incluirTodos, que es lo que ve el panel de administración
func (s *ServicioService) Listar(ctx context.Context, incluirTodos bool, limite int) ([]domain.Servicio, error) {
	return s.repo.GetAll(ctx, repositories.OpcionesListado{IncluirTodos: incluirTodos, Limite: limite})
}

func (s *ServicioService) Obtener(ctx context.Context, id int) (domain.Servicio, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServicioService) Crear(ctx context.Context, req dto.ServicioRequest, creadoPor int) (domain.Servicio, error) {
	return s.repo.Create(ctx, servicioDesdeRequest(req, creadoPor))
}

// CrearConImagen da de alta el servicio con su imagen en un solo
// formulario multipart
func (s *ServicioService) CrearConImagen(ctx context.Context, req dto.ServicioRequest, creadoPor int, nombreArchivo string, contenido io.Reader) (domain.Servicio, error) {
	return s.repo.CreateMultipart(ctx, servicioDesdeRequest(req, creadoPor), nombreArchivo, contenido)
}

func (s *ServicioService) Actualizar(ctx context.Context, id int, req dto.ServicioRequest) (domain.Servicio, error) {
	return s.repo.Update(ctx, id, servicioDesdeRequest(req, 0))
}

func (s *ServicioService) Borrar(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func servicioDesdeRequest(req dto.ServicioRequest, creadoPor int) domain.Servicio {
	estado := req.Estado
	if estado == "" {
		estado = domain.ServicioActivo
	}
	disponible := true
	if req.Disponible != nil {
		disponible = *req.Disponible
	}
	return domain.Servicio{
		Nombre:            req.Nombre,
		Descripcion:       req.Descripcion,
		Precio:            req.Precio,
		Categoria:         req.Categoria,
		Proveedor:         req.Proveedor,
		Disponibilidad:    req.Disponibilidad,
		Imagen:            req.Imagen,
		ImagenURL:         req.Imagen,
		Disponible:        disponible,
		Estado:            estado,
		CreadoPor:         creadoPor,
		ServiceCategoryID: req.ServiceCategoryID,
	}
}

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

// OpcionesListado controla qué devuelve el listado del catálogo.
// Por defecto solo servicios disponibles y activos, con el TTL de cache
// estándar.
type OpcionesListado struct {
	IncluirTodos bool
	Limite       int
	TTL          time.Duration
}

// ServicioRepository maneja el catálogo de servicios contra la API de
// datos de Xano, con cache en lecturas e invalidación en escrituras
type ServicioRepository struct {
	cliente   *xano.Client
	cache     *CacheRepository
	publisher *events.Publisher
	ttl       time.Duration
}

func NewServicioRepository(cliente *xano.Client, cache *CacheRepository, publisher *events.Publisher, ttl time.Duration) *ServicioRepository {
	return &ServicioRepository{cliente: cliente, cache: cache, publisher: publisher, ttl: ttl}
}

func (r *ServicioRepository) pathListado(opciones OpcionesListado) string {
	valores := url.Values{}
	if !opciones.IncluirTodos {
		valores.Set("available", "true")
		valores.Set("status", domain.ServicioActivo)
	}
	if opciones.Limite > 0 {
		valores.Set("limit", strconv.Itoa(opciones.Limite))
	}
	path := "/service"
	if len(valores) > 0 {
		path += "?" + valores.Encode()
	}
	return path
}

func (r *ServicioRepository) GetAll(ctx context.Context, opciones OpcionesListado) ([]domain.Servicio, error) {
	ttl := opciones.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, r.pathListado(opciones), ttl)
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	servicios := make([]domain.Servicio, 0, len(registros))
	for _, registro := range registros {
		servicio := mapServicioDesdeXano(registro)
		// Xano a veces ignora los filtros de query, se filtra de nuevo acá
		if !opciones.IncluirTodos && (!servicio.Disponible || servicio.Estado != domain.ServicioActivo) {
			continue
		}
		servicios = append(servicios, servicio)
	}
	return servicios, nil
}

// GetByID va directo a la red: el detalle se pide poco y conviene fresco
func (r *ServicioRepository) GetByID(ctx context.Context, id int) (domain.Servicio, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, fmt.Sprintf("/service/%d", id))
	if err != nil {
		return domain.Servicio{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Servicio{}, err
	}
	return mapServicioDesdeXano(registro), nil
}

func (r *ServicioRepository) Create(ctx context.Context, servicio domain.Servicio) (domain.Servicio, error) {
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/service", mapServicioHaciaXano(servicio))
	if err != nil {
		return domain.Servicio{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Servicio{}, err
	}
	creado := mapServicioDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

// CreateMultipart da de alta un servicio con la imagen adjunta en el
// mismo formulario, como hace el panel de administración
func (r *ServicioRepository) CreateMultipart(ctx context.Context, servicio domain.Servicio, nombreArchivo string, contenido io.Reader) (domain.Servicio, error) {
	campos := map[string]string{
		"name":                servicio.Nombre,
		"description":         servicio.Descripcion,
		"price":               strconv.FormatFloat(servicio.Precio, 'f', -1, 64),
		"category":            servicio.Categoria,
		"provider":            servicio.Proveedor,
		"availability":        servicio.Disponibilidad,
		"rating":              strconv.FormatFloat(servicio.Valoracion, 'f', -1, 64),
		"num_ratings":         strconv.Itoa(servicio.NumValoraciones),
		"available":           strconv.FormatBool(servicio.Disponible),
		"status":              servicio.Estado,
		"user_id":             strconv.Itoa(servicio.CreadoPor),
		"service_category_id": strconv.Itoa(servicio.ServiceCategoryID),
	}
	datos, err := r.cliente.PostMultipart(ctx, xano.ServicioDatos, "/service", campos, "image_file", nombreArchivo, contenido)
	if err != nil {
		return domain.Servicio{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Servicio{}, err
	}
	creado := mapServicioDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

func (r *ServicioRepository) Update(ctx context.Context, id int, servicio domain.Servicio) (domain.Servicio, error) {
	datos, err := r.cliente.Patch(ctx, xano.ServicioDatos, fmt.Sprintf("/service/%d", id), mapServicioHaciaXano(servicio))
	if err != nil {
		return domain.Servicio{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Servicio{}, err
	}
	actualizado := mapServicioDesdeXano(registro)
	r.invalidar("update", id)
	return actualizado, nil
}

func (r *ServicioRepository) Delete(ctx context.Context, id int) error {
	if err := r.cliente.Delete(ctx, xano.ServicioDatos, fmt.Sprintf("/service/%d", id)); err != nil {
		return err
	}
	r.invalidar("delete", id)
	return nil
}

func (r *ServicioRepository) invalidar(accion string, id int) {
	r.cache.InvalidarPrefijo(xano.ServicioDatos, "/service")
	r.publisher.Publicar(accion, "service", id)
}

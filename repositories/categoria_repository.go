package repositories

import (
	"context"
	"log"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
)

// TTL más largo que el resto: las categorías casi no cambian
const ttlCategorias = 300 * time.Second

// Categorías estáticas que se usan cuando la API remota no responde.
// Coinciden con las tablas service_category y blog_category de Xano.
var categoriasServiciosFallback = []string{
	"Animacion y Entretenimiento",
	"Musica y Sonido",
	"Decoracion y Ambientacion",
	"Catering y Banquetería",
	"Fotografia y Video",
	"Logistica y Produccion",
	"Estilo y Belleza",
	"Eventos Infantiles",
	"Eventos Especiales",
}

var categoriasBlogFallback = []string{
	"Tendencia",
	"Consejos",
	"Experiencias",
}

var rolesFallback = []domain.Rol{
	{ID: domain.RoleIDCliente, Nombre: domain.RolCliente},
	{ID: domain.RoleIDAdmin, Nombre: domain.RolAdmin},
}

// CategoriaRepository sirve las listas de categorías y roles, con
// fallback estático si la API remota falla
type CategoriaRepository struct {
	cliente *xano.Client
	cache   *CacheRepository
}

func NewCategoriaRepository(cliente *xano.Client, cache *CacheRepository) *CategoriaRepository {
	return &CategoriaRepository{cliente: cliente, cache: cache}
}

func (r *CategoriaRepository) GetServiceCategories(ctx context.Context) []string {
	return r.listarCategorias(ctx, "/service_category", categoriasServiciosFallback)
}

func (r *CategoriaRepository) GetBlogCategories(ctx context.Context) []string {
	return r.listarCategorias(ctx, "/blog_category", categoriasBlogFallback)
}

func (r *CategoriaRepository) listarCategorias(ctx context.Context, path string, fallback []string) []string {
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, path, ttlCategorias)
	if err != nil {
		log.Printf("categorias: fallo GET %s, se usa la lista estática: %v", path, err)
		return fallback
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		log.Printf("categorias: respuesta inválida de %s, se usa la lista estática: %v", path, err)
		return fallback
	}
	nombres := make([]string, 0, len(registros))
	for _, registro := range registros {
		if nombre := normalizarCategoria(registro); nombre != "" {
			nombres = append(nombres, nombre)
		}
	}
	if len(nombres) == 0 {
		return fallback
	}
	return nombres
}

func (r *CategoriaRepository) GetRoles(ctx context.Context) []domain.Rol {
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, "/role", ttlCategorias)
	if err != nil {
		log.Printf("roles: fallo GET /role, se usa la lista estática: %v", err)
		return rolesFallback
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		log.Printf("roles: respuesta inválida, se usa la lista estática: %v", err)
		return rolesFallback
	}
	roles := make([]domain.Rol, 0, len(registros))
	for _, registro := range registros {
		roles = append(roles, domain.Rol{
			ID:     comoInt(registro["id"]),
			Nombre: comoString(primeroNoVacio(registro, "name", "nombre")),
		})
	}
	if len(roles) == 0 {
		return rolesFallback
	}
	return roles
}

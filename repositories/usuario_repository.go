package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/events"
)

// UsuarioRepository maneja la tabla de usuarios de la API de datos
type UsuarioRepository struct {
	cliente   *xano.Client
	cache     *CacheRepository
	publisher *events.Publisher
	ttl       time.Duration
}

func NewUsuarioRepository(cliente *xano.Client, cache *CacheRepository, publisher *events.Publisher, ttl time.Duration) *UsuarioRepository {
	return &UsuarioRepository{cliente: cliente, cache: cache, publisher: publisher, ttl: ttl}
}

func (r *UsuarioRepository) GetAll(ctx context.Context) ([]domain.Usuario, error) {
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, "/user", r.ttl)
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	usuarios := make([]domain.Usuario, 0, len(registros))
	for _, registro := range registros {
		usuarios = append(usuarios, mapUsuarioDesdeXano(registro))
	}
	return usuarios, nil
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id int) (domain.Usuario, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, fmt.Sprintf("/user/%d", id))
	if err != nil {
		return domain.Usuario{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Usuario{}, err
	}
	return mapUsuarioDesdeXano(registro), nil
}

// BuscarPorEmail trae la lista fresca (sin cache, para no comparar
// contraseñas contra datos viejos) y filtra por email sin distinguir
// mayúsculas. Devuelve false si no hay coincidencia.
func (r *UsuarioRepository) BuscarPorEmail(ctx context.Context, email string) (domain.Usuario, bool, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, "/user")
	if err != nil {
		return domain.Usuario{}, false, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return domain.Usuario{}, false, err
	}
	buscado := strings.ToLower(strings.TrimSpace(email))
	for _, registro := range registros {
		usuario := mapUsuarioDesdeXano(registro)
		if strings.ToLower(usuario.Email) == buscado {
			return usuario, true, nil
		}
	}
	return domain.Usuario{}, false, nil
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/user", mapUsuarioHaciaXano(usuario))
	if err != nil {
		return domain.Usuario{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Usuario{}, err
	}
	creado := mapUsuarioDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

func (r *UsuarioRepository) Update(ctx context.Context, id int, usuario domain.Usuario) (domain.Usuario, error) {
	datos, err := r.cliente.Patch(ctx, xano.ServicioDatos, fmt.Sprintf("/user/%d", id), mapUsuarioHaciaXano(usuario))
	if err != nil {
		return domain.Usuario{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Usuario{}, err
	}
	actualizado := mapUsuarioDesdeXano(registro)
	r.invalidar("update", id)
	return actualizado, nil
}

func (r *UsuarioRepository) Delete(ctx context.Context, id int) error {
	if err := r.cliente.Delete(ctx, xano.ServicioDatos, fmt.Sprintf("/user/%d", id)); err != nil {
		return err
	}
	r.invalidar("delete", id)
	return nil
}

func (r *UsuarioRepository) invalidar(accion string, id int) {
	r.cache.InvalidarPrefijo(xano.ServicioDatos, "/user")
	r.publisher.Publicar(accion, "user", id)
}

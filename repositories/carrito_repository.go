package repositories

import (
	"context"
	"fmt"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/events"
)

// CarritoRepository maneja las tablas remotas cart y cart_detail.
// Las lecturas del carrito van directo a la red: el usuario acaba de
// modificarlo y un cache viejo se nota enseguida.
type CarritoRepository struct {
	cliente   *xano.Client
	cache     *CacheRepository
	publisher *events.Publisher
}

func NewCarritoRepository(cliente *xano.Client, cache *CacheRepository, publisher *events.Publisher) *CarritoRepository {
	return &CarritoRepository{cliente: cliente, cache: cache, publisher: publisher}
}

// GetByUsuario busca la cabecera de carrito del usuario. Xano no filtra
// por user_id en el GET básico, se filtra acá.
func (r *CarritoRepository) GetByUsuario(ctx context.Context, usuarioID int) (domain.Carrito, bool, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, "/cart")
	if err != nil {
		return domain.Carrito{}, false, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return domain.Carrito{}, false, err
	}
	for _, registro := range registros {
		if comoInt(primeroNoVacio(registro, "user_id", "usuario_id")) == usuarioID {
			return domain.Carrito{
				ID:        comoInt(registro["id"]),
				UsuarioID: usuarioID,
				CreadoEn:  comoString(primeroNoVacio(registro, "created_at", "creado_en")),
			}, true, nil
		}
	}
	return domain.Carrito{}, false, nil
}

func (r *CarritoRepository) Create(ctx context.Context, usuarioID int) (domain.Carrito, error) {
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/cart", map[string]interface{}{"user_id": usuarioID})
	if err != nil {
		return domain.Carrito{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Carrito{}, err
	}
	carrito := domain.Carrito{
		ID:        comoInt(registro["id"]),
		UsuarioID: usuarioID,
		CreadoEn:  comoString(primeroNoVacio(registro, "created_at", "creado_en")),
	}
	r.invalidar("create", carrito.ID)
	return carrito, nil
}

// GetItems lista las líneas de un carrito
func (r *CarritoRepository) GetItems(ctx context.Context, carritoID int) ([]domain.ItemCarrito, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, "/cart_detail")
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	items := make([]domain.ItemCarrito, 0, len(registros))
	for _, registro := range registros {
		item := mapItemCarritoDesdeXano(registro)
		if item.CarritoID != carritoID {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *CarritoRepository) AddItem(ctx context.Context, item domain.ItemCarrito) (domain.ItemCarrito, error) {
	payload := map[string]interface{}{
		"cart_id":    item.CarritoID,
		"service_id": item.ServicioID,
		"quantity":   item.Cantidad,
		"subtotal":   item.Subtotal,
	}
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/cart_detail", payload)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	creado := mapItemCarritoDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

func (r *CarritoRepository) UpdateItem(ctx context.Context, id int, cantidad int, subtotal float64) (domain.ItemCarrito, error) {
	payload := map[string]interface{}{
		"quantity": cantidad,
		"subtotal": subtotal,
	}
	datos, err := r.cliente.Patch(ctx, xano.ServicioDatos, fmt.Sprintf("/cart_detail/%d", id), payload)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	actualizado := mapItemCarritoDesdeXano(registro)
	r.invalidar("update", id)
	return actualizado, nil
}

func (r *CarritoRepository) DeleteItem(ctx context.Context, id int) error {
	if err := r.cliente.Delete(ctx, xano.ServicioDatos, fmt.Sprintf("/cart_detail/%d", id)); err != nil {
		return err
	}
	r.invalidar("delete", id)
	return nil
}

func (r *CarritoRepository) invalidar(accion string, id int) {
	r.cache.InvalidarPrefijo(xano.ServicioDatos, "/cart")
	r.publisher.Publicar(accion, "cart", id)
}

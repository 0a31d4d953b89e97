package repositories

import (
	"context"
	"fmt"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/events"
)

// PagoRepository maneja la tabla remota payment
type PagoRepository struct {
	cliente   *xano.Client
	cache     *CacheRepository
	publisher *events.Publisher
	ttl       time.Duration
}

func NewPagoRepository(cliente *xano.Client, cache *CacheRepository, publisher *events.Publisher, ttl time.Duration) *PagoRepository {
	return &PagoRepository{cliente: cliente, cache: cache, publisher: publisher, ttl: ttl}
}

func (r *PagoRepository) GetAll(ctx context.Context) ([]domain.Pago, error) {
	datos, err := r.cache.Get(ctx, xano.ServicioDatos, "/payment", r.ttl)
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	pagos := make([]domain.Pago, 0, len(registros))
	for _, registro := range registros {
		pagos = append(pagos, mapPagoDesdeXano(registro))
	}
	return pagos, nil
}

// GetByUsuario filtra los pagos del usuario. Va directo a la red porque
// el usuario suele consultar justo después de pagar.
func (r *PagoRepository) GetByUsuario(ctx context.Context, usuarioID int) ([]domain.Pago, error) {
	datos, err := r.cliente.Get(ctx, xano.ServicioDatos, "/payment")
	if err != nil {
		return nil, err
	}
	registros, err := decodificarLista(datos)
	if err != nil {
		return nil, err
	}
	pagos := make([]domain.Pago, 0)
	for _, registro := range registros {
		pago := mapPagoDesdeXano(registro)
		if pago.UsuarioID != usuarioID {
			continue
		}
		pagos = append(pagos, pago)
	}
	return pagos, nil
}

func (r *PagoRepository) Create(ctx context.Context, pago domain.Pago) (domain.Pago, error) {
	payload := map[string]interface{}{
		"user_id": pago.UsuarioID,
		"cart_id": pago.CarritoID,
		"amount":  pago.Monto,
		"method":  pago.Metodo,
		"status":  pago.Estado,
	}
	datos, err := r.cliente.Post(ctx, xano.ServicioDatos, "/payment", payload)
	if err != nil {
		return domain.Pago{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Pago{}, err
	}
	creado := mapPagoDesdeXano(registro)
	r.invalidar("create", creado.ID)
	return creado, nil
}

// UpdateStatus cambia el estado del pago (pendiente, confirmado, etc.)
func (r *PagoRepository) UpdateStatus(ctx context.Context, id int, estado string) (domain.Pago, error) {
	datos, err := r.cliente.Patch(ctx, xano.ServicioDatos, fmt.Sprintf("/payment/%d", id), map[string]interface{}{"status": estado})
	if err != nil {
		return domain.Pago{}, err
	}
	registro, err := decodificarRegistro(datos)
	if err != nil {
		return domain.Pago{}, err
	}
	actualizado := mapPagoDesdeXano(registro)
	r.invalidar("update", id)
	return actualizado, nil
}

func (r *PagoRepository) invalidar(accion string, id int) {
	r.cache.InvalidarPrefijo(xano.ServicioDatos, "/payment")
	r.publisher.Publicar(accion, "payment", id)
}

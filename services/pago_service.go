package services

import (
	"context"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
)

// RepositorioPagos son las operaciones remotas de pagos
type RepositorioPagos interface {
	GetAll(ctx context.Context) ([]domain.Pago, error)
	GetByUsuario(ctx context.Context, usuarioID int) ([]domain.Pago, error)
	Create(ctx context.Context, pago domain.Pago) (domain.Pago, error)
	UpdateStatus(ctx context.Context, id int, estado string) (domain.Pago, error)
}

// Carrito visto desde pagos: alcanza con verlo y vaciarlo
type CarritoParaPagos interface {
	Ver(ctx context.Context, usuarioID int) (domain.CarritoDetalle, error)
	Vaciar(ctx context.Context, usuarioID int) error
}

// Estados de un pago
const (
	PagoPendiente  = "pending"
	PagoConfirmado = "confirmed"
	PagoRechazado  = "rejected"
)

// PagoService registra pagos sobre el carrito vigente del usuario
type PagoService struct {
	pagos    RepositorioPagos
	carritos CarritoParaPagos
}

func NewPagoService(pagos RepositorioPagos, carritos CarritoParaPagos) *PagoService {
	return &PagoService{pagos: pagos, carritos: carritos}
}

// Pagar registra el pago por el total del carrito y lo vacía. El monto
// sale siempre del carrito, no del request.
func (s *PagoService) Pagar(ctx context.Context, usuarioID int, req dto.PagoRequest) (domain.Pago, error) {
	detalle, err := s.carritos.Ver(ctx, usuarioID)
	if err != nil {
		return domain.Pago{}, err
	}
	if len(detalle.Items) == 0 {
		return domain.Pago{}, &xano.ErrorValidacion{Mensaje: "el carrito está vacío"}
	}

	pago, err := s.pagos.Create(ctx, domain.Pago{
		UsuarioID: usuarioID,
		CarritoID: detalle.Carrito.ID,
		Monto:     detalle.Total,
		Metodo:    req.Metodo,
		Estado:    PagoPendiente,
	})
	if err != nil {
		return domain.Pago{}, err
	}

	if err := s.carritos.Vaciar(ctx, usuarioID); err != nil {
		// El pago ya quedó registrado, el carrito sucio se limpia después
		return pago, nil
	}
	return pago, nil
}

// MisPagos lista los pagos del usuario autenticado
func (s *PagoService) MisPagos(ctx context.Context, usuarioID int) ([]domain.Pago, error) {
	return s.pagos.GetByUsuario(ctx, usuarioID)
}

// ListarTodos es la vista de administración
func (s *PagoService) ListarTodos(ctx context.Context) ([]domain.Pago, error) {
	return s.pagos.GetAll(ctx)
}

// CambiarEstado confirma o rechaza un pago pendiente
func (s *PagoService) CambiarEstado(ctx context.Context, id int, estado string) (domain.Pago, error) {
	switch estado {
	case PagoPendiente, PagoConfirmado, PagoRechazado:
	default:
		return domain.Pago{}, &xano.ErrorValidacion{Mensaje: "estado de pago desconocido: " + estado}
	}
	return s.pagos.UpdateStatus(ctx, id, estado)
}

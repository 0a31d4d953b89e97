package services

import (
	"context"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
)

// RepositorioCarritos son las operaciones remotas del carrito
type RepositorioCarritos interface {
	GetByUsuario(ctx context.Context, usuarioID int) (domain.Carrito, bool, error)
	Create(ctx context.Context, usuarioID int) (domain.Carrito, error)
	GetItems(ctx context.Context, carritoID int) ([]domain.ItemCarrito, error)
	AddItem(ctx context.Context, item domain.ItemCarrito) (domain.ItemCarrito, error)
	UpdateItem(ctx context.Context, id int, cantidad int, subtotal float64) (domain.ItemCarrito, error)
	DeleteItem(ctx context.Context, id int) error
}

// BuscadorServicios es lo único que el carrito necesita del catálogo
type BuscadorServicios interface {
	GetByID(ctx context.Context, id int) (domain.Servicio, error)
}

// CarritoService maneja el carrito de compras. El subtotal de cada línea
// se calcula acá con el precio vigente del servicio, nunca con un precio
// que mande el cliente.
type CarritoService struct {
	carritos  RepositorioCarritos
	servicios BuscadorServicios
}

func NewCarritoService(carritos RepositorioCarritos, servicios BuscadorServicios) *CarritoService {
	return &CarritoService{carritos: carritos, servicios: servicios}
}

// Ver devuelve el carrito del usuario con sus líneas y el total. Un
// usuario sin carrito ve uno vacío, no un error.
func (s *CarritoService) Ver(ctx context.Context, usuarioID int) (domain.CarritoDetalle, error) {
	carrito, existe, err := s.carritos.GetByUsuario(ctx, usuarioID)
	if err != nil {
		return domain.CarritoDetalle{}, err
	}
	if !existe {
		return domain.CarritoDetalle{
			Carrito: domain.Carrito{UsuarioID: usuarioID},
			Items:   []domain.ItemCarrito{},
		}, nil
	}
	items, err := s.carritos.GetItems(ctx, carrito.ID)
	if err != nil {
		return domain.CarritoDetalle{}, err
	}
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return domain.CarritoDetalle{Carrito: carrito, Items: items, Total: total}, nil
}

// Agregar suma un servicio al carrito, creando el carrito si es el primero
func (s *CarritoService) Agregar(ctx context.Context, usuarioID int, req dto.AgregarItemRequest) (domain.ItemCarrito, error) {
	servicio, err := s.servicios.GetByID(ctx, req.ServicioID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	if !servicio.Disponible || servicio.Estado != domain.ServicioActivo {
		return domain.ItemCarrito{}, &xano.ErrorValidacion{Mensaje: "el servicio no está disponible"}
	}

	carrito, existe, err := s.carritos.GetByUsuario(ctx, usuarioID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	if !existe {
		carrito, err = s.carritos.Create(ctx, usuarioID)
		if err != nil {
			return domain.ItemCarrito{}, err
		}
	}

	// Si el servicio ya está en el carrito se suma la cantidad
	items, err := s.carritos.GetItems(ctx, carrito.ID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	for _, item := range items {
		if item.ServicioID == req.ServicioID {
			cantidad := item.Cantidad + req.Cantidad
			return s.carritos.UpdateItem(ctx, item.ID, cantidad, servicio.Precio*float64(cantidad))
		}
	}

	return s.carritos.AddItem(ctx, domain.ItemCarrito{
		CarritoID:  carrito.ID,
		ServicioID: req.ServicioID,
		Cantidad:   req.Cantidad,
		Subtotal:   servicio.Precio * float64(req.Cantidad),
	})
}

// ActualizarItem cambia la cantidad de una línea del carrito del usuario
func (s *CarritoService) ActualizarItem(ctx context.Context, usuarioID int, itemID int, cantidad int) (domain.ItemCarrito, error) {
	item, err := s.buscarItem(ctx, usuarioID, itemID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	servicio, err := s.servicios.GetByID(ctx, item.ServicioID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	return s.carritos.UpdateItem(ctx, itemID, cantidad, servicio.Precio*float64(cantidad))
}

// QuitarItem saca una línea del carrito del usuario
func (s *CarritoService) QuitarItem(ctx context.Context, usuarioID int, itemID int) error {
	if _, err := s.buscarItem(ctx, usuarioID, itemID); err != nil {
		return err
	}
	return s.carritos.DeleteItem(ctx, itemID)
}

// Vaciar borra todas las líneas del carrito, por ejemplo después de pagar
func (s *CarritoService) Vaciar(ctx context.Context, usuarioID int) error {
	carrito, existe, err := s.carritos.GetByUsuario(ctx, usuarioID)
	if err != nil || !existe {
		return err
	}
	items, err := s.carritos.GetItems(ctx, carrito.ID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.carritos.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// buscarItem verifica que la línea exista y pertenezca al carrito del
// usuario, para que nadie toque líneas ajenas
func (s *CarritoService) buscarItem(ctx context.Context, usuarioID int, itemID int) (domain.ItemCarrito, error) {
	carrito, existe, err := s.carritos.GetByUsuario(ctx, usuarioID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	if !existe {
		return domain.ItemCarrito{}, &xano.ErrorValidacion{Mensaje: "el carrito está vacío"}
	}
	items, err := s.carritos.GetItems(ctx, carrito.ID)
	if err != nil {
		return domain.ItemCarrito{}, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return domain.ItemCarrito{}, &xano.ErrorValidacion{Mensaje: "la línea no está en el carrito"}
}

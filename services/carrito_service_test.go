package services

import (
	"context"
	"errors"
	"testing"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
	"ambientefest-api/dto"
)

// carritosMock simula las tablas cart y cart_detail en memoria
type carritosMock struct {
	carritos    []domain.Carrito
	items       []domain.ItemCarrito
	siguienteID int
}

func (m *carritosMock) GetByUsuario(ctx context.Context, usuarioID int) (domain.Carrito, bool, error) {
	for _, c := range m.carritos {
		if c.UsuarioID == usuarioID {
			return c, true, nil
		}
	}
	return domain.Carrito{}, false, nil
}

func (m *carritosMock) Create(ctx context.Context, usuarioID int) (domain.Carrito, error) {
	m.siguienteID++
	carrito := domain.Carrito{ID: m.siguienteID, UsuarioID: usuarioID}
	m.carritos = append(m.carritos, carrito)
	return carrito, nil
}

func (m *carritosMock) GetItems(ctx context.Context, carritoID int) ([]domain.ItemCarrito, error) {
	items := []domain.ItemCarrito{}
	for _, item := range m.items {
		if item.CarritoID == carritoID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *carritosMock) AddItem(ctx context.Context, item domain.ItemCarrito) (domain.ItemCarrito, error) {
	m.siguienteID++
	item.ID = m.siguienteID
	m.items = append(m.items, item)
	return item, nil
}

func (m *carritosMock) UpdateItem(ctx context.Context, id int, cantidad int, subtotal float64) (domain.ItemCarrito, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Cantidad = cantidad
			m.items[i].Subtotal = subtotal
			return m.items[i], nil
		}
	}
	return domain.ItemCarrito{}, &xano.ErrorRemoto{Status: 404}
}

func (m *carritosMock) DeleteItem(ctx context.Context, id int) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return &xano.ErrorRemoto{Status: 404}
}

// catalogoMock simula el catálogo con precios fijos
type catalogoMock struct {
	servicios map[int]domain.Servicio
}

func (m *catalogoMock) GetByID(ctx context.Context, id int) (domain.Servicio, error) {
	servicio, ok := m.servicios[id]
	if !ok {
		return domain.Servicio{}, &xano.ErrorRemoto{Status: 404}
	}
	return servicio, nil
}

func catalogoDePrueba() *catalogoMock {
	return &catalogoMock{servicios: map[int]domain.Servicio{
		1: {ID: 1, Nombre: "DJ", Precio: 150000, Disponible: true, Estado: domain.ServicioActivo},
		2: {ID: 2, Nombre: "Catering", Precio: 250000, Disponible: true, Estado: domain.ServicioActivo},
		3: {ID: 3, Nombre: "Agotado", Precio: 90000, Disponible: false, Estado: domain.ServicioActivo},
	}}
}

func TestAgregarCalculaSubtotalConPrecioDelCatalogo(t *testing.T) {
	servicio := NewCarritoService(&carritosMock{}, catalogoDePrueba())

	item, err := servicio.Agregar(context.Background(), 7, dto.AgregarItemRequest{ServicioID: 1, Cantidad: 2})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if item.Subtotal != 300000 {
		t.Errorf("subtotal incorrecto: %v", item.Subtotal)
	}
}

func TestAgregarRechazaServiciosNoDisponibles(t *testing.T) {
	servicio := NewCarritoService(&carritosMock{}, catalogoDePrueba())

	_, err := servicio.Agregar(context.Background(), 7, dto.AgregarItemRequest{ServicioID: 3, Cantidad: 1})
	var validacion *xano.ErrorValidacion
	if !errors.As(err, &validacion) {
		t.Errorf("un servicio no disponible no entra al carrito: %v", err)
	}
}

func TestAgregarSumaCantidadSiYaEstaEnElCarrito(t *testing.T) {
	mock := &carritosMock{}
	servicio := NewCarritoService(mock, catalogoDePrueba())
	ctx := context.Background()

	servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 1, Cantidad: 1})
	item, err := servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 1, Cantidad: 2})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if item.Cantidad != 3 || item.Subtotal != 450000 {
		t.Errorf("las cantidades deben sumarse: %+v", item)
	}

	detalle, _ := servicio.Ver(ctx, 7)
	if len(detalle.Items) != 1 {
		t.Errorf("el mismo servicio no debe duplicar líneas: %d", len(detalle.Items))
	}
}

func TestVerCarritoVacioNoEsError(t *testing.T) {
	servicio := NewCarritoService(&carritosMock{}, catalogoDePrueba())

	detalle, err := servicio.Ver(context.Background(), 99)
	if err != nil {
		t.Fatalf("un usuario sin carrito ve uno vacío: %v", err)
	}
	if len(detalle.Items) != 0 || detalle.Total != 0 {
		t.Errorf("detalle inesperado: %+v", detalle)
	}
}

func TestVerSumaElTotal(t *testing.T) {
	mock := &carritosMock{}
	servicio := NewCarritoService(mock, catalogoDePrueba())
	ctx := context.Background()

	servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 1, Cantidad: 1})
	servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 2, Cantidad: 1})

	detalle, err := servicio.Ver(ctx, 7)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if detalle.Total != 400000 {
		t.Errorf("total incorrecto: %v", detalle.Total)
	}
}

func TestQuitarItemVerificaPropiedad(t *testing.T) {
	mock := &carritosMock{}
	servicio := NewCarritoService(mock, catalogoDePrueba())
	ctx := context.Background()

	item, _ := servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 1, Cantidad: 1})

	// Otro usuario no puede tocar la línea ajena
	if err := servicio.QuitarItem(ctx, 8, item.ID); err == nil {
		t.Errorf("la línea de otro usuario no debe poder quitarse")
	}

	if err := servicio.QuitarItem(ctx, 7, item.ID); err != nil {
		t.Errorf("el dueño sí puede quitarla: %v", err)
	}
}

func TestVaciarDejaElCarritoSinLineas(t *testing.T) {
	mock := &carritosMock{}
	servicio := NewCarritoService(mock, catalogoDePrueba())
	ctx := context.Background()

	servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 1, Cantidad: 1})
	servicio.Agregar(ctx, 7, dto.AgregarItemRequest{ServicioID: 2, Cantidad: 2})

	if err := servicio.Vaciar(ctx, 7); err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	detalle, _ := servicio.Ver(ctx, 7)
	if len(detalle.Items) != 0 {
		t.Errorf("el carrito debía quedar vacío: %+v", detalle.Items)
	}
}

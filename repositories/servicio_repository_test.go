package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
)

const catalogoDePrueba = `[
	{"id":1,"name":"DJ para Matrimonios","price":150000,"available":true,"status":"active","image":{"url":"https://cdn/dj.png"},"category":{"id":2,"name":"Musica y Sonido"}},
	{"id":2,"name":"Catering Premium","price":250000,"available":true,"status":"active","image":"https://cdn/catering.png","category":"Catering y Banquetería"},
	{"id":3,"name":"Decoración Rústica","price":90000,"available":false,"status":"active","category":"Decoracion y Ambientacion"},
	{"id":4,"name":"Show de Magia","price":80000,"available":true,"status":"inactive","category":"Eventos Infantiles"},
	{"id":5,"name":"Fotografía Profesional","price":120000,"available":true,"status":"active","image":[{"url":"https://cdn/foto.png"}],"category":{"id":5}},
	{"id":6,"name":"Iluminación LED","price":60000,"available":true,"status":"active"}
]`

// El publisher nil es válido: publica a nadie
func nuevoServicioRepo(base string) *ServicioRepository {
	cliente := xano.New(base, "", 5*time.Second, 5*time.Second)
	return NewServicioRepository(cliente, NewCacheRepository(cliente), nil, 2*time.Minute)
}

func servicioNuevoDePrueba() domain.Servicio {
	return domain.Servicio{
		Nombre:     "Nuevo",
		Precio:     10000,
		Disponible: true,
		Estado:     domain.ServicioActivo,
	}
}

func TestGetAllFiltraNoDisponiblesEInactivos(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogoDePrueba))
	}))
	defer servidor.Close()

	repo := nuevoServicioRepo(servidor.URL)
	servicios, err := repo.GetAll(context.Background(), OpcionesListado{})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}

	if len(servicios) != 4 {
		t.Fatalf("se esperaban 4 servicios visibles de 6, hubo %d", len(servicios))
	}
	for _, s := range servicios {
		if !s.Disponible || s.Estado != "active" {
			t.Errorf("se coló un servicio filtrable: %+v", s)
		}
		if s.Imagen != "" && !strings.HasPrefix(s.Imagen, "https://") {
			t.Errorf("imagen sin normalizar: %q", s.Imagen)
		}
	}
}

func TestGetAllIncluirTodos(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogoDePrueba))
	}))
	defer servidor.Close()

	repo := nuevoServicioRepo(servidor.URL)
	servicios, err := repo.GetAll(context.Background(), OpcionesListado{IncluirTodos: true})
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if len(servicios) != 6 {
		t.Errorf("incluirTodos debe devolver los 6, hubo %d", len(servicios))
	}
}

func TestGetAllConcurrenteCuestaUnSoloGET(t *testing.T) {
	var llamadas int32
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&llamadas, 1)
		time.Sleep(80 * time.Millisecond)
		w.Write([]byte(catalogoDePrueba))
	}))
	defer servidor.Close()

	repo := nuevoServicioRepo(servidor.URL)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.GetAll(context.Background(), OpcionesListado{}); err != nil {
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&llamadas); n != 1 {
		t.Errorf("dos listados concurrentes deben compartir el GET, hubo %d", n)
	}
}

func TestCreateInvalidaElListado(t *testing.T) {
	var gets int32
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
			w.Write([]byte(catalogoDePrueba))
			return
		}
		w.Write([]byte(`{"id":7,"name":"Nuevo","price":10000,"available":true,"status":"active"}`))
	}))
	defer servidor.Close()

	repo := nuevoServicioRepo(servidor.URL)
	ctx := context.Background()

	repo.GetAll(ctx, OpcionesListado{})
	repo.GetAll(ctx, OpcionesListado{})
	if n := atomic.LoadInt32(&gets); n != 1 {
		t.Fatalf("el listado debía estar cacheado, hubo %d GET", n)
	}

	if _, err := repo.Create(ctx, servicioNuevoDePrueba()); err != nil {
		t.Fatalf("error inesperado en create: %v", err)
	}

	repo.GetAll(ctx, OpcionesListado{})
	if n := atomic.LoadInt32(&gets); n != 2 {
		t.Errorf("la escritura debía invalidar el listado, hubo %d GET", n)
	}
}

func TestGetByIDNoPasaPorElCache(t *testing.T) {
	var llamadas int32
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&llamadas, 1)
		w.Write([]byte(`{"id":1,"name":"DJ","price":150000,"available":true,"status":"active"}`))
	}))
	defer servidor.Close()

	repo := nuevoServicioRepo(servidor.URL)
	ctx := context.Background()

	repo.GetByID(ctx, 1)
	repo.GetByID(ctx, 1)
	if n := atomic.LoadInt32(&llamadas); n != 2 {
		t.Errorf("el detalle debe ir siempre a la red, hubo %d llamadas", n)
	}
}

func TestCreateMultipartMandaFormulario(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("se esperaba multipart, Content-Type era %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("multipart inválido: %v", err)
		}
		if r.FormValue("name") != "Carpa Gigante" {
			t.Errorf("campo name incorrecto: %q", r.FormValue("name"))
		}
		if r.FormValue("user_id") != "7" {
			t.Errorf("el dueño viaja como user_id: %q", r.FormValue("user_id"))
		}
		if _, _, err := r.FormFile("image_file"); err != nil {
			t.Errorf("falta el archivo en image_file: %v", err)
		}
		w.Write([]byte(`{"id":8,"name":"Carpa Gigante","price":500000,"image":{"url":"https://cdn/carpa.png"},"available":true,"status":"active"}`))
	}))
	defer servidor.Close()

	repo := nuevoServicioRepo(servidor.URL)
	servicio := servicioNuevoDePrueba()
	servicio.Nombre = "Carpa Gigante"
	servicio.CreadoPor = 7

	creado, err := repo.CreateMultipart(context.Background(), servicio, "carpa.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if creado.Imagen != "https://cdn/carpa.png" {
		t.Errorf("la imagen de la respuesta no quedó normalizada: %q", creado.Imagen)
	}
}

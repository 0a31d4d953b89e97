package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
)

func nuevoBlogRepo(base string) *BlogRepository {
	cliente := xano.New(base, "", 5*time.Second, 5*time.Second)
	return NewBlogRepository(cliente, NewCacheRepository(cliente), nil, 2*time.Minute)
}

func TestBlogCreateMultipartMandaFormulario(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/blog" {
			t.Errorf("petición inesperada: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("multipart inválido: %v", err)
		}
		if r.FormValue("title") != "Tendencias 2026" {
			t.Errorf("campo title incorrecto: %q", r.FormValue("title"))
		}
		if r.FormValue("status") != domain.BlogPendiente {
			t.Errorf("el alta viaja con su estado: %q", r.FormValue("status"))
		}
		if r.FormValue("user_id") != "7" {
			t.Errorf("el autor viaja como user_id: %q", r.FormValue("user_id"))
		}
		if _, _, err := r.FormFile("image_file"); err != nil {
			t.Errorf("falta el archivo en image_file: %v", err)
		}
		w.Write([]byte(`{"id":3,"title":"Tendencias 2026","status":"pending","user_id":7,"image":{"url":"https://cdn/portada.png"}}`))
	}))
	defer servidor.Close()

	repo := nuevoBlogRepo(servidor.URL)
	blog := domain.Blog{
		Titulo:    "Tendencias 2026",
		Contenido: "...",
		Estado:    domain.BlogPendiente,
		AutorID:   7,
	}

	creado, err := repo.CreateMultipart(context.Background(), blog, "portada.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if creado.Imagen != "https://cdn/portada.png" {
		t.Errorf("la imagen de la respuesta no quedó normalizada: %q", creado.Imagen)
	}
}

func TestBlogGetAllFiltraNoAprobados(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"title":"A","status":"active"},
			{"id":2,"title":"B","status":"pending"},
			{"id":3,"title":"C","status":"rejected"}
		]`))
	}))
	defer servidor.Close()

	repo := nuevoBlogRepo(servidor.URL)
	publicos, err := repo.GetAll(context.Background(), true)
	if err != nil {
		t.Fatalf("error inesperado: %v", err)
	}
	if len(publicos) != 1 || publicos[0].ID != 1 {
		t.Errorf("el público solo ve aprobados: %+v", publicos)
	}
}

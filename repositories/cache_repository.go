package repositories

import (
	"context"
	"time"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/singleflight"

	"ambientefest-api/clients/xano"
)

// entradaCache guarda la respuesta cruda junto con su momento de carga.
// La frescura se juzga contra el TTL que pide cada llamada, no contra
// un TTL fijo del cache.
type entradaCache struct {
	datos    []byte
	creadoEn time.Time
}

// CacheRepository pone un cache TTL con deduplicación delante de los GET
// a Xano. Pedidos concurrentes por la misma clave comparten un solo
// viaje a la red.
type CacheRepository struct {
	cliente *xano.Client
	cache   *ccache.Cache[*entradaCache]
	grupo   singleflight.Group
}

func NewCacheRepository(cliente *xano.Client) *CacheRepository {
	return &CacheRepository{
		cliente: cliente,
		cache:   ccache.New(ccache.Configure[*entradaCache]().MaxSize(1000)),
	}
}

func claveCache(servicio xano.Servicio, path string) string {
	return string(servicio) + "::" + path
}

// Get devuelve la respuesta cacheada si todavía es fresca según ttl, o
// va a la red una sola vez por clave. Los errores no se cachean.
func (r *CacheRepository) Get(ctx context.Context, servicio xano.Servicio, path string, ttl time.Duration) ([]byte, error) {
	clave := claveCache(servicio, path)

	if item := r.cache.Get(clave); item != nil && !item.Expired() {
		entrada := item.Value()
		if time.Since(entrada.creadoEn) < ttl {
			return entrada.datos, nil
		}
	}

	resultado, err, _ := r.grupo.Do(clave, func() (interface{}, error) {
		// Otro goroutine pudo haber cargado mientras esperábamos el lock
		if item := r.cache.Get(clave); item != nil && !item.Expired() {
			entrada := item.Value()
			if time.Since(entrada.creadoEn) < ttl {
				return entrada.datos, nil
			}
		}
		datos, err := r.cliente.Get(ctx, servicio, path)
		if err != nil {
			return nil, err
		}
		r.cache.Set(clave, &entradaCache{datos: datos, creadoEn: time.Now()}, time.Hour)
		return datos, nil
	})
	if err != nil {
		return nil, err
	}
	return resultado.([]byte), nil
}

// InvalidarPrefijo borra todas las entradas del servicio cuyo path
// empieza con el prefijo dado. Se llama después de cada escritura.
func (r *CacheRepository) InvalidarPrefijo(servicio xano.Servicio, prefijo string) {
	r.cache.DeletePrefix(claveCache(servicio, prefijo))
}

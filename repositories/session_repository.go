package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"ambientefest-api/domain"
)

// Sesion es el snapshot que se guarda al iniciar sesión: el usuario sin
// secretos y el token bearer remoto si Xano entregó uno
type Sesion struct {
	Usuario     domain.Usuario `json:"usuario"`
	TokenRemoto string         `json:"token_remoto,omitempty"`
	CreadoEn    time.Time      `json:"creado_en"`
}

var ErrSesionNoEncontrada = errors.New("sesión no encontrada")

// SessionRepository persiste sesiones en memcached, una por usuario.
// Si memcached no está configurado todas las operaciones son no-op: la
// autenticación sigue funcionando solo con el token firmado.
type SessionRepository struct {
	cliente    *memcache.Client
	expiracion time.Duration
}

func NewSessionRepository(host string, expiracion time.Duration) *SessionRepository {
	if host == "" {
		return &SessionRepository{expiracion: expiracion}
	}
	return &SessionRepository{cliente: memcache.New(host), expiracion: expiracion}
}

func claveSesion(usuarioID int) string {
	return fmt.Sprintf("sesion::%d", usuarioID)
}

func (r *SessionRepository) Guardar(usuarioID int, sesion Sesion) error {
	if r.cliente == nil {
		return nil
	}
	datos, err := json.Marshal(sesion)
	if err != nil {
		return err
	}
	return r.cliente.Set(&memcache.Item{
		Key:        claveSesion(usuarioID),
		Value:      datos,
		Expiration: int32(r.expiracion.Seconds()),
	})
}

func (r *SessionRepository) Obtener(usuarioID int) (Sesion, error) {
	if r.cliente == nil {
		return Sesion{}, ErrSesionNoEncontrada
	}
	item, err := r.cliente.Get(claveSesion(usuarioID))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return Sesion{}, ErrSesionNoEncontrada
		}
		return Sesion{}, err
	}
	var sesion Sesion
	if err := json.Unmarshal(item.Value, &sesion); err != nil {
		return Sesion{}, err
	}
	return sesion, nil
}

func (r *SessionRepository) Borrar(usuarioID int) error {
	if r.cliente == nil {
		return nil
	}
	err := r.cliente.Delete(claveSesion(usuarioID))
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}

package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Servicio identifica contra cuál de las dos bases de Xano va un pedido
type Servicio string

const (
	ServicioDatos Servicio = "datos"
	ServicioAuth  Servicio = "auth"
)

const maxReintentos = 2

// Client habla con las dos APIs remotas de Xano. Todas las operaciones
// comparten la misma credencial bearer, protegida por un RWMutex porque
// el login puede cambiarla mientras hay lecturas en vuelo.
type Client struct {
	baseDatos string
	baseAuth  string

	http     *http.Client
	httpFile *http.Client

	mu         sync.RWMutex
	credencial string
}

func New(baseDatos string, baseAuth string, timeout time.Duration, timeoutFile time.Duration) *Client {
	return &Client{
		baseDatos: strings.TrimRight(baseDatos, "/"),
		baseAuth:  strings.TrimRight(baseAuth, "/"),
		http:      &http.Client{Timeout: timeout},
		httpFile:  &http.Client{Timeout: timeoutFile},
	}
}

// SetCredencial guarda el token bearer que se adjunta a todos los pedidos
func (c *Client) SetCredencial(token string) {
	c.mu.Lock()
	c.credencial = token
	c.mu.Unlock()
}

// ClearCredencial descarta la credencial vigente
func (c *Client) ClearCredencial() {
	c.mu.Lock()
	c.credencial = ""
	c.mu.Unlock()
}

func (c *Client) CredencialActual() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credencial
}

func (c *Client) TieneCredencial() bool {
	return c.CredencialActual() != ""
}

func (c *Client) baseDe(servicio Servicio) string {
	if servicio == ServicioAuth {
		return c.baseAuth
	}
	return c.baseDatos
}

// Get hace un GET con reintentos ante 429. Solo los GET reintentan:
// dos reintentos con espera de 500ms y luego 1000ms.
func (c *Client) Get(ctx context.Context, servicio Servicio, path string) ([]byte, error) {
	var ultimo error
	for intento := 0; intento <= maxReintentos; intento++ {
		if intento > 0 {
			delay := time.Duration(1<<uint(intento)) * 250 * time.Millisecond
			log.Printf("xano: 429 en GET %s, reintento %d en %v", path, intento, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &ErrorRed{Operacion: "GET " + path, Causa: ctx.Err()}
			}
		}
		cuerpo, err := c.do(ctx, http.MethodGet, servicio, path, nil)
		if err == nil {
			return cuerpo, nil
		}
		ultimo = err
		var rl *ErrorRateLimit
		if !errors.As(err, &rl) {
			return nil, err
		}
	}
	return nil, ultimo
}

// Post envía el payload como JSON. Sin reintentos: no es idempotente.
func (c *Client) Post(ctx context.Context, servicio Servicio, path string, payload interface{}) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPost, servicio, path, payload)
}

func (c *Client) Patch(ctx context.Context, servicio Servicio, path string, payload interface{}) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPatch, servicio, path, payload)
}

func (c *Client) Delete(ctx context.Context, servicio Servicio, path string) error {
	_, err := c.do(ctx, http.MethodDelete, servicio, path, nil)
	return err
}

func (c *Client) doJSON(ctx context.Context, metodo string, servicio Servicio, path string, payload interface{}) ([]byte, error) {
	var lector io.Reader
	if payload != nil {
		datos, err := json.Marshal(payload)
		if err != nil {
			return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("payload no serializable: %v", err)}
		}
		lector = bytes.NewReader(datos)
	}
	return c.do(ctx, metodo, servicio, path, lector)
}

// do arma el pedido, adjunta la credencial y clasifica la respuesta
func (c *Client) do(ctx context.Context, metodo string, servicio Servicio, path string, cuerpo io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, metodo, c.baseDe(servicio)+path, cuerpo)
	if err != nil {
		return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("pedido inválido %s %s: %v", metodo, path, err)}
	}
	if cuerpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.CredencialActual(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, clasificarErrorRed(metodo+" "+path, err)
	}
	defer resp.Body.Close()

	datos, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrorRed{Operacion: metodo + " " + path, Causa: err}
	}

	return clasificarRespuesta(resp.StatusCode, path, datos)
}

func clasificarRespuesta(status int, path string, datos []byte) ([]byte, error) {
	if status >= 200 && status < 300 {
		return datos, nil
	}
	cuerpo := string(datos)
	if status == http.StatusTooManyRequests {
		return nil, &ErrorRateLimit{ErrorRemoto{Status: status, Ruta: path, Cuerpo: cuerpo}}
	}
	if esConflicto(status, cuerpo) {
		return nil, &ErrorConflicto{Mensaje: extraerMensaje(datos, "el recurso ya existe")}
	}
	return nil, &ErrorRemoto{Status: status, Ruta: path, Cuerpo: cuerpo}
}

func clasificarErrorRed(operacion string, err error) error {
	timeout := false
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		timeout = true
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		timeout = true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		timeout = true
	}
	return &ErrorRed{Operacion: operacion, Causa: err, Timeout: timeout}
}

// extraerMensaje busca un campo "message" en la respuesta de error de Xano
func extraerMensaje(datos []byte, porDefecto string) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal(datos, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return porDefecto
}

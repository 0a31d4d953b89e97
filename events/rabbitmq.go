package events

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"ambientefest-api/clients/xano"
)

// MensajeEntidad es el evento que se publica después de cada escritura
// para que las otras réplicas invaliden su cache local
type MensajeEntidad struct {
	Accion  string `json:"action"`
	Recurso string `json:"resource"`
	ID      int    `json:"id"`
}

// InvalidadorCache es lo único que el consumidor necesita del cache
type InvalidadorCache interface {
	InvalidarPrefijo(servicio xano.Servicio, prefijo string)
}

// Publisher publica eventos de escritura en RabbitMQ. Un publisher nil o
// sin conexión es válido y no publica nada: la invalidación local ya
// ocurrió y perder el aviso remoto no corrompe datos, solo demora.
type Publisher struct {
	canal *amqp.Channel
	cola  string
}

func NewPublisher(url string, cola string) (*Publisher, error) {
	conexion, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	canal, err := conexion.Channel()
	if err != nil {
		conexion.Close()
		return nil, err
	}
	if _, err := canal.QueueDeclare(cola, true, false, false, false, nil); err != nil {
		conexion.Close()
		return nil, err
	}
	return &Publisher{canal: canal, cola: cola}, nil
}

// Publicar manda el evento a la cola. Los errores se loguean y se
// descartan: la publicación es mejor esfuerzo.
func (p *Publisher) Publicar(accion string, recurso string, id int) {
	if p == nil || p.canal == nil {
		return
	}
	mensaje := MensajeEntidad{Accion: accion, Recurso: recurso, ID: id}
	cuerpo, err := json.Marshal(mensaje)
	if err != nil {
		log.Printf("events: no se pudo serializar el evento %s %s: %v", accion, recurso, err)
		return
	}
	err = p.canal.Publish("", p.cola, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        cuerpo,
	})
	if err != nil {
		log.Printf("events: no se pudo publicar el evento %s %s: %v", accion, recurso, err)
	}
}

// Consumer escucha los eventos de escritura de las otras réplicas e
// invalida los prefijos de cache afectados
type Consumer struct {
	url         string
	cola        string
	invalidador InvalidadorCache
}

func NewConsumer(url string, cola string, invalidador InvalidadorCache) *Consumer {
	return &Consumer{url: url, cola: cola, invalidador: invalidador}
}

// Iniciar conecta y procesa mensajes hasta que la conexión se cierre
func (c *Consumer) Iniciar() error {
	conexion, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conexion.Close()

	canal, err := conexion.Channel()
	if err != nil {
		return err
	}
	defer canal.Close()

	if _, err := canal.QueueDeclare(c.cola, true, false, false, false, nil); err != nil {
		return err
	}
	if err := canal.Qos(1, 0, false); err != nil {
		return err
	}

	mensajes, err := canal.Consume(c.cola, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	log.Printf("events: escuchando la cola %s", c.cola)
	for entrega := range mensajes {
		var mensaje MensajeEntidad
		if err := json.Unmarshal(entrega.Body, &mensaje); err != nil {
			log.Printf("events: mensaje inválido: %v", err)
			entrega.Nack(false, false)
			continue
		}
		c.procesar(mensaje)
		entrega.Ack(false)
	}
	return nil
}

func (c *Consumer) procesar(mensaje MensajeEntidad) {
	prefijo := PrefijoDeRecurso(mensaje.Recurso)
	if prefijo == "" {
		log.Printf("events: recurso desconocido %q, se ignora", mensaje.Recurso)
		return
	}
	log.Printf("events: %s sobre %s id=%d, se invalida %s", mensaje.Accion, mensaje.Recurso, mensaje.ID, prefijo)
	c.invalidador.InvalidarPrefijo(xano.ServicioDatos, prefijo)
}

// PrefijoDeRecurso mapea el nombre del recurso del evento al prefijo de
// path que hay que invalidar en el cache
func PrefijoDeRecurso(recurso string) string {
	switch recurso {
	case "service":
		return "/service"
	case "blog":
		return "/blog"
	case "user":
		return "/user"
	case "cart":
		return "/cart"
	case "payment":
		return "/payment"
	case "service_category":
		return "/service_category"
	case "blog_category":
		return "/blog_category"
	}
	return ""
}

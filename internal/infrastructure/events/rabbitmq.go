package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var (
	_ ports.EventPublisher = (*RabbitMQ)(nil)
	_ ports.EventConsumer  = (*RabbitMQ)(nil)
)

// RabbitMQ publica y consume sobre una cola durable con mensajes persistentes.
type RabbitMQ struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   zerolog.Logger
	mu    sync.Mutex // amqp.Channel no admite publicaciones concurrentes
}

// DialRabbitMQ abre conexión y canal y declara la cola.
func DialRabbitMQ(url, queue string, log zerolog.Logger) (*RabbitMQ, error) {
	const op = "rabbitmq.Dial"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RabbitMQ{conn: conn, ch: ch, queue: queue, log: log}, nil
}

// Publish implementa ports.EventPublisher.
func (r *RabbitMQ) Publish(ctx context.Context, ev dto.Event) error {
	const op = "rabbitmq.Publish"

	body, err := Encode(ev)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	err = r.ch.PublishWithContext(ctx, "", r.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Type:         ev.Type,
		MessageId:    ev.ID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Consume implementa ports.EventConsumer con ack manual: un error del handler
// devuelve el mensaje a la cola; un mensaje ilegible se descarta.
func (r *RabbitMQ) Consume(ctx context.Context, handle ports.EventHandler) error {
	const op = "rabbitmq.Consume"

	if err := r.ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	msgs, err := r.ch.Consume(r.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("%s: canal cerrado por el broker", op)
			}
			ev, err := Decode(msg.Body)
			if err != nil {
				r.log.Error().Err(err).Str("message_id", msg.MessageId).Msg("mensaje descartado")
				_ = msg.Nack(false, false)
				continue
			}
			if err := handle(ctx, ev); err != nil {
				r.log.Warn().Err(err).Str("event_id", ev.ID).Msg("evento devuelto a la cola")
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close cierra canal y conexión.
func (r *RabbitMQ) Close() error {
	_ = r.ch.Close()
	return r.conn.Close()
}

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher escribe los eventos en un topic; la clave es el ID del recurso
// para conservar el orden por reserva o reseña.
type KafkaPublisher struct {
	w *kafka.Writer
}

// NewKafkaPublisher construye el writer (síncrono, acks de todas las réplicas).
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// Publish implementa ports.EventPublisher.
func (p *KafkaPublisher) Publish(ctx context.Context, ev dto.Event) error {
	body, err := Encode(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:     []byte(EventKey(ev)),
		Value:   body,
		Time:    ev.OccurredAt,
		Headers: []kafka.Header{{Key: "type", Value: []byte(ev.Type)}},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s: %w", ev.Type, err)
	}
	return nil
}

// Close implementa ports.EventPublisher.
func (p *KafkaPublisher) Close() error { return p.w.Close() }

// EventKey clave de partición del evento.
func EventKey(ev dto.Event) string {
	switch {
	case ev.Reservation != nil:
		return "reservation:" + ev.Reservation.ID
	case ev.Review != nil:
		return "review:" + ev.Review.ID
	}
	return ev.ID
}

var _ ports.EventConsumer = (*KafkaConsumer)(nil)

// KafkaConsumer lee del topic con commit manual tras procesar cada mensaje.
type KafkaConsumer struct {
	r   *kafka.Reader
	log zerolog.Logger
}

// NewKafkaConsumer construye el reader del grupo de consumo.
func NewKafkaConsumer(brokers []string, group, topic string, log zerolog.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        group,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0,
		}),
		log: log,
	}
}

// Consume implementa ports.EventConsumer. Un error del handler no confirma el offset
// y se reintenta tras una breve espera.
func (c *KafkaConsumer) Consume(ctx context.Context, handle ports.EventHandler) error {
	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka: leer: %w", err)
		}
		ev, err := Decode(m.Value)
		if err != nil {
			c.log.Error().Err(err).Int64("offset", m.Offset).Msg("mensaje descartado")
		} else {
			for attempt := 1; ; attempt++ {
				if err = handle(ctx, ev); err == nil || attempt == 3 {
					break
				}
				c.log.Warn().Err(err).Str("event_id", ev.ID).Int("attempt", attempt).Msg("reintentando evento")
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
				}
			}
			if err != nil {
				c.log.Error().Err(err).Str("event_id", ev.ID).Msg("evento sin procesar tras reintentos")
			}
		}
		if err := c.r.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			return fmt.Errorf("kafka: commit: %w", err)
		}
	}
}

// Close implementa ports.EventConsumer.
func (c *KafkaConsumer) Close() error { return c.r.Close() }

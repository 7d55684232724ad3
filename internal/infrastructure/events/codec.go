// Package events adaptadores de ports.EventPublisher y ports.EventConsumer
// (RabbitMQ, Kafka y log).
package events

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
)

// Encode serializa el evento como JSON.
func Encode(ev dto.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("events: codificar %s: %w", ev.Type, err)
	}
	return b, nil
}

// Decode deserializa un mensaje; sin tipo es un mensaje inválido.
func Decode(body []byte) (dto.Event, error) {
	var ev dto.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return dto.Event{}, fmt.Errorf("events: decodificar: %w", err)
	}
	if ev.Type == "" {
		return dto.Event{}, fmt.Errorf("events: mensaje sin tipo")
	}
	return ev, nil
}

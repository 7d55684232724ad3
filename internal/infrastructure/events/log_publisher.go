package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher solo registra los eventos (EVENTS_DRIVER=log, desarrollo).
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher construye el publisher.
func NewLogPublisher(log zerolog.Logger) *LogPublisher { return &LogPublisher{log: log} }

// Publish implementa ports.EventPublisher.
func (p *LogPublisher) Publish(_ context.Context, ev dto.Event) error {
	p.log.Info().Str("event", ev.Type).Str("event_id", ev.ID).Msg("evento publicado")
	return nil
}

// Close implementa ports.EventPublisher.
func (p *LogPublisher) Close() error { return nil }

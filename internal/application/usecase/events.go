package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

// publish envía el evento sin bloquear la operación de negocio: un fallo del broker solo se registra.
func publish(ctx context.Context, pub ports.EventPublisher, log zerolog.Logger, ev dto.Event) {
	if pub == nil {
		return
	}
	ev.ID = uuid.New().String()
	ev.OccurredAt = time.Now().UTC()
	if err := pub.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("event", ev.Type).Str("event_id", ev.ID).Msg("no se pudo publicar el evento")
	}
}

package ports

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
)

// EventPublisher publica eventos de reservas y reseñas hacia el broker configurado.
type EventPublisher interface {
	Publish(ctx context.Context, event dto.Event) error
	Close() error
}

// EventHandler procesa un evento consumido. Un error deja el mensaje sin confirmar.
type EventHandler func(ctx context.Context, event dto.Event) error

// EventConsumer consume eventos hasta que ctx se cancela.
type EventConsumer interface {
	Consume(ctx context.Context, handle EventHandler) error
	Close() error
}

// MessageSender canal de aviso al restaurante (Telegram, e-mail).
type MessageSender interface {
	Name() string
	Send(ctx context.Context, subject, body string) error
}

// ReservationSheetRenderer genera la hoja imprimible de reservas de un día.
type ReservationSheetRenderer interface {
	RenderReservationSheet(sheet dto.ReservationSheet) ([]byte, error)
}

// SitemapRenderer serializa el sitemap del sitio público.
type SitemapRenderer interface {
	RenderSitemap(entries []dto.SitemapEntry) ([]byte, error)
}

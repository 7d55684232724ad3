package repository

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// MenuCounters resultado crudo del conteo de la carta.
type MenuCounters struct {
	Categories     int
	Items          int
	AvailableItems int
}

// AnalyticsRepository consultas de solo lectura para el panel del back-office.
type AnalyticsRepository interface {
	// GetReservationCounters cuenta reservas por estado y las que tienen peticiones especiales.
	GetReservationCounters(ctx context.Context) (entity.ReservationCounters, error)

	// GetReviewCounters cuenta reseñas por moderación y calcula la media de rating.
	// Usa COALESCE para devolver cero si no hay reseñas.
	GetReviewCounters(ctx context.Context) (entity.ReviewCounters, error)

	// GetMenuCounters cuenta categorías, platos y platos disponibles.
	GetMenuCounters(ctx context.Context) (MenuCounters, error)
}

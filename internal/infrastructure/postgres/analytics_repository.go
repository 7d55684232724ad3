package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el panel del back-office.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetReservationCounters cuenta reservas por estado en una sola pasada.
func (r *AnalyticsRepo) GetReservationCounters(ctx context.Context) (entity.ReservationCounters, error) {
	const query = `
	SELECT
	    COUNT(*)                                                   AS total,
	    COUNT(*) FILTER (WHERE status = 'pending')                 AS pending,
	    COUNT(*) FILTER (WHERE status = 'confirmed')               AS confirmed,
	    COUNT(*) FILTER (WHERE status = 'cancelled')               AS cancelled,
	    COUNT(*) FILTER (WHERE btrim(special_requests) <> '')      AS with_requests
	FROM reservations`

	var c entity.ReservationCounters
	if err := r.q.QueryRow(ctx, query).Scan(
		&c.Total, &c.Pending, &c.Confirmed, &c.Cancelled, &c.WithSpecialRequests,
	); err != nil {
		return entity.ReservationCounters{}, fmt.Errorf("analytics.GetReservationCounters: %w", err)
	}
	return c, nil
}

// GetReviewCounters cuenta reseñas por moderación y calcula la media (NUMERIC → decimal).
// Usa COALESCE para devolver cero si no hay reseñas.
func (r *AnalyticsRepo) GetReviewCounters(ctx context.Context) (entity.ReviewCounters, error) {
	const query = `
	SELECT
	    COUNT(*)                                  AS total,
	    COUNT(*) FILTER (WHERE approved)          AS approved,
	    COUNT(*) FILTER (WHERE NOT approved)      AS pending,
	    COUNT(*) FILTER (WHERE featured)          AS featured,
	    COALESCE(ROUND(AVG(rating), 2), 0)        AS average_rating
	FROM reviews`

	var c entity.ReviewCounters
	if err := r.q.QueryRow(ctx, query).Scan(
		&c.Total, &c.Approved, &c.Pending, &c.Featured, &c.AverageRating,
	); err != nil {
		return entity.ReviewCounters{}, fmt.Errorf("analytics.GetReviewCounters: %w", err)
	}
	return c, nil
}

// GetMenuCounters cuenta categorías, platos y platos disponibles.
func (r *AnalyticsRepo) GetMenuCounters(ctx context.Context) (repository.MenuCounters, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM menu_categories)                  AS categories,
	    COUNT(*)                                                AS items,
	    COUNT(*) FILTER (WHERE available)                       AS available_items
	FROM menu_items`

	var c repository.MenuCounters
	if err := r.q.QueryRow(ctx, query).Scan(&c.Categories, &c.Items, &c.AvailableItems); err != nil {
		return repository.MenuCounters{}, fmt.Errorf("analytics.GetMenuCounters: %w", err)
	}
	return c, nil
}

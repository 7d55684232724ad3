package memory

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo contadores calculados sobre las tablas en memoria.
type AnalyticsRepo struct {
	b *Backend
}

// GetReservationCounters implementa repository.AnalyticsRepository.
func (r *AnalyticsRepo) GetReservationCounters(ctx context.Context) (entity.ReservationCounters, error) {
	list, err := r.b.Reservations.Select(ctx, repository.Query{})
	if err != nil {
		return entity.ReservationCounters{}, err
	}
	return entity.CountReservations(list), nil
}

// GetReviewCounters implementa repository.AnalyticsRepository.
func (r *AnalyticsRepo) GetReviewCounters(ctx context.Context) (entity.ReviewCounters, error) {
	list, err := r.b.Reviews.Select(ctx, repository.Query{})
	if err != nil {
		return entity.ReviewCounters{}, err
	}
	return entity.CountReviews(list), nil
}

// GetMenuCounters implementa repository.AnalyticsRepository.
func (r *AnalyticsRepo) GetMenuCounters(ctx context.Context) (repository.MenuCounters, error) {
	items, err := r.b.Items.Select(ctx, repository.Query{})
	if err != nil {
		return repository.MenuCounters{}, err
	}
	c := repository.MenuCounters{Categories: r.b.Categories.Len(), Items: len(items)}
	for _, it := range items {
		if it.Available {
			c.AvailableItems++
		}
	}
	return c, nil
}

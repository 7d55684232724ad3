// Package analytics contiene los casos de uso del panel del back-office.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de reservas, reseñas y carta.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardResponse.
//
// Tres llamadas en paralelo:
//  1. GetReservationCounters → reservas por estado
//  2. GetReviewCounters      → moderación y media de valoración
//  3. GetMenuCounters        → categorías y platos disponibles
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type reservationsResult struct {
		c   entity.ReservationCounters
		err error
	}
	type reviewsResult struct {
		c   entity.ReviewCounters
		err error
	}
	type menuResult struct {
		c   repository.MenuCounters
		err error
	}

	resCh := make(chan reservationsResult, 1)
	revCh := make(chan reviewsResult, 1)
	menuCh := make(chan menuResult, 1)

	go func() {
		c, err := uc.analyticsRepo.GetReservationCounters(ctx)
		resCh <- reservationsResult{c, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.GetReviewCounters(ctx)
		revCh <- reviewsResult{c, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.GetMenuCounters(ctx)
		menuCh <- menuResult{c, err}
	}()

	res := <-resCh
	rev := <-revCh
	menu := <-menuCh

	if res.err != nil {
		return nil, fmt.Errorf("dashboard: reservas: %w", res.err)
	}
	if rev.err != nil {
		return nil, fmt.Errorf("dashboard: reseñas: %w", rev.err)
	}
	if menu.err != nil {
		return nil, fmt.Errorf("dashboard: carta: %w", menu.err)
	}

	out := dto.ToDashboardResponse(&entity.DashboardStats{
		Reservations:   res.c,
		Reviews:        rev.c,
		Categories:     menu.c.Categories,
		MenuItems:      menu.c.Items,
		AvailableItems: menu.c.AvailableItems,
	})
	return &out, nil
}

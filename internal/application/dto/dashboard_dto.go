package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// DashboardResponse respuesta de GET /api/admin/dashboard.
type DashboardResponse struct {
	Reservations ReservationCountersDTO `json:"reservations"`
	Reviews      ReviewCountersDTO      `json:"reviews"`
	Menu         MenuCountersDTO        `json:"menu"`
}

// ReservationCountersDTO contadores de reservas.
type ReservationCountersDTO struct {
	Total               int `json:"total"`
	Pending             int `json:"pending"`
	Confirmed           int `json:"confirmed"`
	Cancelled           int `json:"cancelled"`
	WithSpecialRequests int `json:"with_special_requests"`
}

// ReviewCountersDTO contadores de reseñas.
type ReviewCountersDTO struct {
	Total         int             `json:"total"`
	Approved      int             `json:"approved"`
	Pending       int             `json:"pending"`
	Featured      int             `json:"featured"`
	AverageRating decimal.Decimal `json:"average_rating"` // 2 decimales
}

// MenuCountersDTO contadores de la carta.
type MenuCountersDTO struct {
	Categories     int `json:"categories"`
	Items          int `json:"items"`
	AvailableItems int `json:"available_items"`
}

// ToDashboardResponse convierte las estadísticas en DTO.
func ToDashboardResponse(s *entity.DashboardStats) DashboardResponse {
	return DashboardResponse{
		Reservations: ReservationCountersDTO(s.Reservations),
		Reviews: ReviewCountersDTO{
			Total:         s.Reviews.Total,
			Approved:      s.Reviews.Approved,
			Pending:       s.Reviews.Pending,
			Featured:      s.Reviews.Featured,
			AverageRating: s.Reviews.AverageRating,
		},
		Menu: MenuCountersDTO{
			Categories:     s.Categories,
			Items:          s.MenuItems,
			AvailableItems: s.AvailableItems,
		},
	}
}

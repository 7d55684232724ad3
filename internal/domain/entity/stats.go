package entity

import "github.com/shopspring/decimal"

// ReservationCounters contadores del panel de reservas.
type ReservationCounters struct {
	Total               int
	Pending             int
	Confirmed           int
	Cancelled           int
	WithSpecialRequests int
}

// ReviewCounters contadores del panel de reseñas.
type ReviewCounters struct {
	Total         int
	Approved      int
	Pending       int
	Featured      int
	AverageRating decimal.Decimal // 0 si no hay reseñas
}

// DashboardStats resumen del back-office.
type DashboardStats struct {
	Reservations   ReservationCounters
	Reviews        ReviewCounters
	Categories     int
	MenuItems      int
	AvailableItems int
}

// CountReservations calcula los contadores sobre una lista ya cargada.
func CountReservations(list []*Reservation) ReservationCounters {
	var c ReservationCounters
	for _, r := range list {
		c.Total++
		switch r.Status {
		case ReservationPending:
			c.Pending++
		case ReservationConfirmed:
			c.Confirmed++
		case ReservationCancelled:
			c.Cancelled++
		}
		if r.SpecialRequests != "" {
			c.WithSpecialRequests++
		}
	}
	return c
}

// CountReviews calcula los contadores y la media (2 decimales) sobre una lista ya cargada.
func CountReviews(list []*Review) ReviewCounters {
	var c ReviewCounters
	sum := decimal.Zero
	for _, r := range list {
		c.Total++
		if r.Approved {
			c.Approved++
		} else {
			c.Pending++
		}
		if r.Featured {
			c.Featured++
		}
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	if c.Total > 0 {
		c.AverageRating = sum.Div(decimal.NewFromInt(int64(c.Total))).Round(2)
	}
	return c
}

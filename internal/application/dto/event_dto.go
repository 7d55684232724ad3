package dto

import "time"

// Tipos de evento publicados hacia el notificador.
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReviewSubmitted          = "review.submitted"
)

// Event mensaje publicado en el broker.
type Event struct {
	ID             string               `json:"id"`
	Type           string               `json:"type"`
	OccurredAt     time.Time            `json:"occurred_at"`
	Reservation    *ReservationResponse `json:"reservation,omitempty"`
	PreviousStatus string               `json:"previous_status,omitempty"`
	Review         *ReviewResponse      `json:"review,omitempty"`
}

// SitemapEntry URL del sitemap público.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time // cero = sin lastmod
	ChangeFreq string
	Priority   string
}

package entity

import "time"

// ReservationStatus estado de una reserva.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// validNext transiciones permitidas desde cada estado. confirmed y cancelled son terminales.
var validNext = map[ReservationStatus][]ReservationStatus{
	ReservationPending: {ReservationConfirmed, ReservationCancelled},
}

// Valid indica si s es un estado conocido.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// CanTransition indica si se puede pasar de s a next. Repetir el estado actual se acepta (no-op).
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, n := range validNext[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Reservation solicitud de mesa. Se crea siempre en pending.
type Reservation struct {
	ID              string
	Name            string
	Phone           string
	Email           string // opcional
	DateTime        time.Time
	Guests          int
	SpecialRequests string // opcional
	Status          ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReservationPatch cambio administrativo de una reserva.
type ReservationPatch struct {
	Status *ReservationStatus
}

// IsEmpty indica que el patch no modifica nada.
func (p ReservationPatch) IsEmpty() bool { return p.Status == nil }

// Apply aplica el patch sobre r.
func (p ReservationPatch) Apply(r *Reservation) {
	if p.Status != nil {
		r.Status = *p.Status
	}
}

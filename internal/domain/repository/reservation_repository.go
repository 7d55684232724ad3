package repository

import (
	"context"
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para Reservation.
type ReservationRepository interface {
	Table[entity.Reservation, entity.ReservationPatch]
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	// ListBetween reservas con datetime en [from, to), ordenadas por hora ascendente.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Reservation, error)
}

// CanonicalReservationOrder orden del panel de reservas.
func CanonicalReservationOrder() Query { return Query{}.OrderBy("datetime", false) }

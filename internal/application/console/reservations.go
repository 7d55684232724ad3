package console

import (
	"context"
	"fmt"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// SubmitReservation envío público del formulario de reservas. El estado siempre es pending,
// sea cual sea la entrada. Solo con sesión de admin se recarga la lista del panel.
func (c *Console) SubmitReservation(ctx context.Context, req dto.CreateReservationRequest) (*entity.Reservation, error) {
	if err := dto.Validate(req); err != nil {
		c.Feed.Notify(notice.Failure(err, "Revise los datos de la reserva"))
		return nil, err
	}
	created, err := c.Reservations.Insert(ctx, &entity.Reservation{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		DateTime:        req.DateTime,
		Guests:          int(req.Guests),
		SpecialRequests: req.SpecialRequests,
		Status:          entity.ReservationPending,
	})
	if err != nil {
		c.log.Error().Err(err).Str("op", "submit_reservation").Msg("reserva rechazada")
		c.Feed.Notify(notice.Failure(err, "No se pudo enviar la reserva"))
		return nil, err
	}
	c.Feed.Notify(notice.Success("Reserva enviada. Le confirmaremos por teléfono"))
	if c.Session.IsAdmin() {
		_ = c.Reservations.Refetch(ctx)
	}
	return created, nil
}

// UpdateReservationStatus cambia el estado de una reserva. Con la reserva en caché se
// comprueba la transición antes de llamar al backend, que sigue siendo quien decide.
func (c *Console) UpdateReservationStatus(ctx context.Context, id string, status entity.ReservationStatus) (*entity.Reservation, error) {
	if cur, ok := c.Reservations.Find(id); ok && !cur.Status.CanTransition(status) {
		err := fmt.Errorf("%s → %s: %w", cur.Status, status, domain.ErrInvalidTransition)
		c.Feed.Notify(notice.Failure(err, "Cambio de estado no permitido"))
		return nil, err
	}
	return c.Reservations.Update(ctx, id, entity.ReservationPatch{Status: &status})
}

// ReservationsByStatus reservas en caché con el estado indicado; vacío = todas.
func (c *Console) ReservationsByStatus(status entity.ReservationStatus) []*entity.Reservation {
	all := c.Reservations.List().Items
	if status == "" {
		return all
	}
	out := make([]*entity.Reservation, 0, len(all))
	for _, r := range all {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// ReservationCounters contadores del panel sobre la caché.
func (c *Console) ReservationCounters() entity.ReservationCounters {
	return entity.CountReservations(c.Reservations.List().Items)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// ReservationUseCase casos de uso de reservas: envío público, gestión y hoja del día.
type ReservationUseCase struct {
	repo       repository.ReservationRepository
	publisher  ports.EventPublisher
	sheet      ports.ReservationSheetRenderer
	restaurant string
	log        zerolog.Logger
}

// NewReservationUseCase construye el caso de uso. publisher y sheet pueden ser nil.
func NewReservationUseCase(
	repo repository.ReservationRepository,
	publisher ports.EventPublisher,
	sheet ports.ReservationSheetRenderer,
	restaurant string,
	log zerolog.Logger,
) *ReservationUseCase {
	return &ReservationUseCase{repo: repo, publisher: publisher, sheet: sheet, restaurant: restaurant, log: log}
}

// Submit registra una reserva del formulario público; el estado siempre es pending.
func (uc *ReservationUseCase) Submit(ctx context.Context, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	created, err := uc.repo.Insert(ctx, &entity.Reservation{
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		DateTime:        in.DateTime,
		Guests:          int(in.Guests),
		SpecialRequests: in.SpecialRequests,
		Status:          entity.ReservationPending,
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToReservationResponse(created)
	publish(ctx, uc.publisher, uc.log, dto.Event{Type: dto.EventReservationCreated, Reservation: &out})
	return &out, nil
}

// List lista reservas; sin orden explícito usa el canónico (fecha descendente).
func (uc *ReservationUseCase) List(ctx context.Context, q repository.Query) ([]dto.ReservationResponse, error) {
	if q.Order == nil {
		q.Order = repository.CanonicalReservationOrder().Order
	}
	list, err := uc.repo.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToReservationResponse(r))
	}
	return out, nil
}

// UpdateStatus aplica la transición de estado. Repetir el estado actual no escribe ni publica;
// salir de un estado terminal → ErrInvalidTransition.
func (uc *ReservationUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateReservationRequest) (*dto.ReservationResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cur, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("reserva %s: %w", id, domain.ErrNotFound)
	}
	next := entity.ReservationStatus(*in.Status)
	if !cur.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, cur.Status, next)
	}
	if cur.Status == next {
		out := dto.ToReservationResponse(cur)
		return &out, nil
	}
	updated, err := uc.repo.Update(ctx, id, entity.ReservationPatch{Status: &next})
	if err != nil {
		return nil, err
	}
	out := dto.ToReservationResponse(updated)
	publish(ctx, uc.publisher, uc.log, dto.Event{
		Type:           dto.EventReservationStatusChanged,
		Reservation:    &out,
		PreviousStatus: string(cur.Status),
	})
	return &out, nil
}

// Delete elimina la reserva.
func (uc *ReservationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Sheet genera el PDF con las reservas del día de day (en su zona horaria), canceladas excluidas.
func (uc *ReservationUseCase) Sheet(ctx context.Context, day time.Time) ([]byte, error) {
	if uc.sheet == nil {
		return nil, fmt.Errorf("hoja de reservas no configurada")
	}
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	list, err := uc.repo.ListBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	sheet := dto.ReservationSheet{Restaurant: uc.restaurant, Date: from}
	for _, r := range list {
		if r.Status == entity.ReservationCancelled {
			continue
		}
		sheet.Reservations = append(sheet.Reservations, dto.ToReservationResponse(r))
	}
	return uc.sheet.RenderReservationSheet(sheet)
}

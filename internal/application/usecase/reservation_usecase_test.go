package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
)

// capturePublisher guarda los eventos publicados.
type capturePublisher struct {
	mu     sync.Mutex
	events []dto.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, ev dto.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// captureSheet guarda la última hoja renderizada.
type captureSheet struct {
	last dto.ReservationSheet
}

func (c *captureSheet) RenderReservationSheet(s dto.ReservationSheet) ([]byte, error) {
	c.last = s
	return []byte("%PDF"), nil
}

func newReservationUseCase(pub *capturePublisher, sheet *captureSheet) *usecase.ReservationUseCase {
	b := memory.NewBackend()
	return usecase.NewReservationUseCase(b.Reservations, pub, sheet, "Afrispot", zerolog.Nop())
}

func reservationRequest(at time.Time) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{Name: "Awa Diop", Phone: "+221770000000", DateTime: at, Guests: 4}
}

func TestSubmitReservation_PendienteYEvento(t *testing.T) {
	pub := &capturePublisher{}
	uc := newReservationUseCase(pub, nil)

	r, err := uc.Submit(context.Background(), reservationRequest(time.Now().Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "pending", r.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, dto.EventReservationCreated, pub.events[0].Type)
	assert.NotEmpty(t, pub.events[0].ID)
	assert.Equal(t, r.ID, pub.events[0].Reservation.ID)
}

func TestSubmitReservation_FalloDelBrokerNoFallaElAlta(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker caído")}
	uc := newReservationUseCase(pub, nil)

	_, err := uc.Submit(context.Background(), reservationRequest(time.Now()))
	assert.NoError(t, err)
}

func TestSubmitReservation_Invalida(t *testing.T) {
	pub := &capturePublisher{}
	uc := newReservationUseCase(pub, nil)

	_, err := uc.Submit(context.Background(), dto.CreateReservationRequest{Name: "Awa"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, pub.events)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	pub := &capturePublisher{}
	uc := newReservationUseCase(pub, nil)
	ctx := context.Background()
	r, err := uc.Submit(ctx, reservationRequest(time.Now()))
	require.NoError(t, err)

	confirmed := "confirmed"
	up, err := uc.UpdateStatus(ctx, r.ID, dto.UpdateReservationRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", up.Status)

	// Repetir el estado no publica.
	_, err = uc.UpdateStatus(ctx, r.ID, dto.UpdateReservationRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, []string{dto.EventReservationCreated, dto.EventReservationStatusChanged}, pub.types())
	assert.Equal(t, "pending", pub.events[1].PreviousStatus)

	cancelled := "cancelled"
	_, err = uc.UpdateStatus(ctx, r.ID, dto.UpdateReservationRequest{Status: &cancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_Inexistente(t *testing.T) {
	uc := newReservationUseCase(&capturePublisher{}, nil)
	s := "confirmed"
	_, err := uc.UpdateStatus(context.Background(), "no-existe", dto.UpdateReservationRequest{Status: &s})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSheet_SoloElDiaSinCanceladas(t *testing.T) {
	sheet := &captureSheet{}
	uc := newReservationUseCase(&capturePublisher{}, sheet)
	ctx := context.Background()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	late, _ := uc.Submit(ctx, reservationRequest(day.Add(21*time.Hour)))
	early, _ := uc.Submit(ctx, reservationRequest(day.Add(12*time.Hour)))
	other, _ := uc.Submit(ctx, reservationRequest(day.Add(36*time.Hour)))
	dropped, _ := uc.Submit(ctx, reservationRequest(day.Add(19*time.Hour)))
	cancelled := "cancelled"
	_, err := uc.UpdateStatus(ctx, dropped.ID, dto.UpdateReservationRequest{Status: &cancelled})
	require.NoError(t, err)

	out, err := uc.Sheet(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	assert.Equal(t, "Afrispot", sheet.last.Restaurant)
	assert.True(t, sheet.last.Date.Equal(day))
	require.Len(t, sheet.last.Reservations, 2)
	assert.Equal(t, early.ID, sheet.last.Reservations[0].ID)
	assert.Equal(t, late.ID, sheet.last.Reservations[1].ID)
	assert.NotEqual(t, other.ID, sheet.last.Reservations[1].ID)
}

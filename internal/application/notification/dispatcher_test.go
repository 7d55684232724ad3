package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/notification"
)

type fakeSender struct {
	name     string
	err      error
	subjects []string
	bodies   []string
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(_ context.Context, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

func reservationEvent() dto.Event {
	return dto.Event{
		ID:   "ev-1",
		Type: dto.EventReservationCreated,
		Reservation: &dto.ReservationResponse{
			Name:            "Awa Diop",
			Phone:           "+221770000000",
			DateTime:        time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC),
			Guests:          4,
			SpecialRequests: "Terrasse",
			Status:          "pending",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Formato
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_NuevaReserva(t *testing.T) {
	subject, body, ok := notification.Format(reservationEvent())
	require.True(t, ok)
	assert.Equal(t, "Nueva reserva: Awa Diop (4 pers.)", subject)
	assert.Contains(t, body, "Fecha: 14-03-2026 20:30")
	assert.Contains(t, body, "Peticiones: Terrasse")
	assert.Contains(t, body, "Estado: pendiente")
}

func TestFormat_CambioDeEstadoIncluyeAnterior(t *testing.T) {
	ev := reservationEvent()
	ev.Type = dto.EventReservationStatusChanged
	ev.Reservation.Status = "confirmed"
	ev.PreviousStatus = "pending"

	subject, body, ok := notification.Format(ev)
	require.True(t, ok)
	assert.Equal(t, "Reserva confirmada: Awa Diop", subject)
	assert.Contains(t, body, "Estado anterior: pendiente")
}

func TestFormat_Resena(t *testing.T) {
	subject, body, ok := notification.Format(dto.Event{
		Type:   dto.EventReviewSubmitted,
		Review: &dto.ReviewResponse{Name: "Moussa", Rating: 4, Comment: "Excellent yassa"},
	})
	require.True(t, ok)
	assert.Equal(t, "Nueva reseña de Moussa (★★★★☆)", subject)
	assert.Contains(t, body, "Comentario: Excellent yassa")
}

func TestFormat_EventoDesconocidoOSinPayload(t *testing.T) {
	_, _, ok := notification.Format(dto.Event{Type: "menu.updated"})
	assert.False(t, ok)
	_, _, ok = notification.Format(dto.Event{Type: dto.EventReservationCreated})
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatcher
// ──────────────────────────────────────────────────────────────────────────────

func TestHandle_EnviaPorTodosLosCanales(t *testing.T) {
	tg, mail := &fakeSender{name: "telegram"}, &fakeSender{name: "email"}
	d := notification.NewDispatcher(zerolog.Nop(), tg, nil, mail)

	require.NoError(t, d.Handle(context.Background(), reservationEvent()))
	assert.Len(t, tg.subjects, 1)
	assert.Len(t, mail.subjects, 1)
}

func TestHandle_UnCanalFallido_NoEsError(t *testing.T) {
	tg := &fakeSender{name: "telegram", err: errors.New("timeout")}
	mail := &fakeSender{name: "email"}
	d := notification.NewDispatcher(zerolog.Nop(), tg, mail)

	assert.NoError(t, d.Handle(context.Background(), reservationEvent()))
	assert.Len(t, mail.subjects, 1)
}

func TestHandle_TodosLosCanalesFallan(t *testing.T) {
	d := notification.NewDispatcher(zerolog.Nop(),
		&fakeSender{name: "telegram", err: errors.New("timeout")},
		&fakeSender{name: "email", err: errors.New("smtp")},
	)
	err := d.Handle(context.Background(), reservationEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram")
	assert.Contains(t, err.Error(), "email")
}

func TestHandle_SinCanales(t *testing.T) {
	d := notification.NewDispatcher(zerolog.Nop())
	assert.ErrorIs(t, d.Handle(context.Background(), reservationEvent()), notification.ErrNoSenders)
	assert.NoError(t, d.Handle(context.Background(), dto.Event{Type: "otro"}), "sin aviso asociado no se necesita canal")
}

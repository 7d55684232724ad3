// Package notification convierte los eventos de reservas y reseñas en avisos al restaurante.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

// ErrNoSenders ningún canal configurado.
var ErrNoSenders = errors.New("notification: sin canales configurados")

// Dispatcher envía cada evento por todos los canales configurados.
type Dispatcher struct {
	senders []ports.MessageSender
	log     zerolog.Logger
}

// NewDispatcher crea el dispatcher. Los senders nil se ignoran.
func NewDispatcher(log zerolog.Logger, senders ...ports.MessageSender) *Dispatcher {
	d := &Dispatcher{log: log}
	for _, s := range senders {
		if s != nil {
			d.senders = append(d.senders, s)
		}
	}
	return d
}

// Handle implementa ports.EventHandler. Los tipos desconocidos se confirman sin aviso;
// solo devuelve error si fallan todos los canales (el mensaje se reintenta).
func (d *Dispatcher) Handle(ctx context.Context, ev dto.Event) error {
	subject, body, ok := Format(ev)
	if !ok {
		d.log.Debug().Str("event", ev.Type).Msg("evento sin aviso asociado")
		return nil
	}
	if len(d.senders) == 0 {
		return ErrNoSenders
	}
	var errs []error
	for _, s := range d.senders {
		if err := s.Send(ctx, subject, body); err != nil {
			d.log.Error().Err(err).Str("sender", s.Name()).Str("event_id", ev.ID).Msg("aviso no enviado")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		d.log.Info().Str("sender", s.Name()).Str("event", ev.Type).Str("event_id", ev.ID).Msg("aviso enviado")
	}
	if len(errs) == len(d.senders) {
		return errors.Join(errs...)
	}
	return nil
}

// Format devuelve asunto y cuerpo del aviso; ok=false si el evento no genera aviso.
func Format(ev dto.Event) (subject, body string, ok bool) {
	switch ev.Type {
	case dto.EventReservationCreated:
		r := ev.Reservation
		if r == nil {
			return "", "", false
		}
		subject = fmt.Sprintf("Nueva reserva: %s (%d pers.)", r.Name, r.Guests)
		return subject, reservationBody(r), true
	case dto.EventReservationStatusChanged:
		r := ev.Reservation
		if r == nil {
			return "", "", false
		}
		subject = fmt.Sprintf("Reserva %s: %s", statusLabel(r.Status), r.Name)
		body = reservationBody(r)
		if ev.PreviousStatus != "" {
			body += fmt.Sprintf("\nEstado anterior: %s", statusLabel(ev.PreviousStatus))
		}
		return subject, body, true
	case dto.EventReviewSubmitted:
		rv := ev.Review
		if rv == nil {
			return "", "", false
		}
		subject = fmt.Sprintf("Nueva reseña de %s (%s)", rv.Name, stars(rv.Rating))
		var b strings.Builder
		fmt.Fprintf(&b, "Valoración: %d/5\n", rv.Rating)
		if rv.Email != "" {
			fmt.Fprintf(&b, "Email: %s\n", rv.Email)
		}
		fmt.Fprintf(&b, "Comentario: %s\n", rv.Comment)
		b.WriteString("Pendiente de moderación.")
		return subject, b.String(), true
	}
	return "", "", false
}

func reservationBody(r *dto.ReservationResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", r.Name)
	fmt.Fprintf(&b, "Teléfono: %s\n", r.Phone)
	if r.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", r.Email)
	}
	fmt.Fprintf(&b, "Fecha: %s\n", r.DateTime.Format("02-01-2006 15:04"))
	fmt.Fprintf(&b, "Personas: %d\n", r.Guests)
	if r.SpecialRequests != "" {
		fmt.Fprintf(&b, "Peticiones: %s\n", r.SpecialRequests)
	}
	fmt.Fprintf(&b, "Estado: %s", statusLabel(r.Status))
	return b.String()
}

func statusLabel(s string) string {
	switch s {
	case "pending":
		return "pendiente"
	case "confirmed":
		return "confirmada"
	case "cancelled":
		return "cancelada"
	}
	return s
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

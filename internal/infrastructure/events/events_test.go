package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/events"
	"github.com/jhoicas/afrispot-api/pkg/config"
)

func TestEncodeDecode_ConservaPayload(t *testing.T) {
	ev := dto.Event{
		ID:             "ev-1",
		Type:           dto.EventReservationStatusChanged,
		OccurredAt:     time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
		Reservation:    &dto.ReservationResponse{ID: "r-1", Name: "Awa", Guests: 4, Status: "confirmed"},
		PreviousStatus: "pending",
	}
	body, err := events.Encode(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"type":"reservation.status_changed"`)

	got, err := events.Decode(body)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestDecode_MensajeInvalido(t *testing.T) {
	_, err := events.Decode([]byte("no-json"))
	assert.Error(t, err)
	_, err = events.Decode([]byte(`{"id":"x"}`))
	assert.Error(t, err, "sin tipo")
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, "reservation:r-1", events.EventKey(dto.Event{Reservation: &dto.ReservationResponse{ID: "r-1"}}))
	assert.Equal(t, "review:v-1", events.EventKey(dto.Event{Review: &dto.ReviewResponse{ID: "v-1"}}))
	assert.Equal(t, "ev-1", events.EventKey(dto.Event{ID: "ev-1"}))
}

func TestLogPublisher_NuncaFalla(t *testing.T) {
	p := events.NewLogPublisher(zerolog.Nop())
	assert.NoError(t, p.Publish(context.Background(), dto.Event{Type: dto.EventReviewSubmitted}))
	assert.NoError(t, p.Close())
}

func TestDrivers(t *testing.T) {
	p, err := events.NewPublisher(config.EventsConfig{Driver: config.EventsDriverLog}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &events.LogPublisher{}, p)

	k, err := events.NewPublisher(config.EventsConfig{Driver: config.EventsDriverKafka, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "t"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &events.KafkaPublisher{}, k)
	assert.NoError(t, k.Close())

	_, err = events.NewPublisher(config.EventsConfig{Driver: "nats"}, zerolog.Nop())
	assert.Error(t, err)
	_, err = events.NewConsumer(config.EventsConfig{Driver: config.EventsDriverLog}, zerolog.Nop())
	assert.Error(t, err, "log no se puede consumir")
}

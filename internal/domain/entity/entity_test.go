package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de reserva
// ──────────────────────────────────────────────────────────────────────────────

func TestReservationStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to entity.ReservationStatus
		ok       bool
	}{
		{entity.ReservationPending, entity.ReservationConfirmed, true},
		{entity.ReservationPending, entity.ReservationCancelled, true},
		{entity.ReservationConfirmed, entity.ReservationConfirmed, true},
		{entity.ReservationConfirmed, entity.ReservationPending, false},
		{entity.ReservationCancelled, entity.ReservationPending, false},
		{entity.ReservationConfirmed, entity.ReservationCancelled, false},
		{entity.ReservationPending, "archived", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Patches
// ──────────────────────────────────────────────────────────────────────────────

func TestMenuItemPatch_ApplySoloCamposPresentes(t *testing.T) {
	it := &entity.MenuItem{Name: "Thiéboudienne", Description: "Riz au poisson", Price: 10000, CategoryID: "c1", Available: true}
	off := false
	price := int64(12000)

	entity.MenuItemPatch{Available: &off, Price: &price}.Apply(it)

	assert.False(t, it.Available)
	assert.Equal(t, int64(12000), it.Price)
	assert.Equal(t, "Thiéboudienne", it.Name)
	assert.Equal(t, "Riz au poisson", it.Description)
	assert.Equal(t, "c1", it.CategoryID)
}

func TestPatches_IsEmpty(t *testing.T) {
	on := true
	assert.True(t, entity.MenuItemPatch{}.IsEmpty())
	assert.False(t, entity.MenuItemPatch{Available: &on}.IsEmpty())
	assert.True(t, entity.ReviewPatch{}.IsEmpty())
	assert.True(t, entity.ReservationPatch{}.IsEmpty())
	assert.True(t, entity.MenuCategoryPatch{}.IsEmpty())
}

// ──────────────────────────────────────────────────────────────────────────────
// Reseñas públicas y contadores
// ──────────────────────────────────────────────────────────────────────────────

func TestPublicReviews_DestacadaSinAprobarNoEsPublica(t *testing.T) {
	list := []*entity.Review{
		{ID: "a", Approved: true},
		{ID: "b", Featured: true},
		{ID: "c", Approved: true, Featured: true},
	}

	got := entity.PublicReviews(list)

	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestCountReservations(t *testing.T) {
	list := []*entity.Reservation{
		{Status: entity.ReservationPending, SpecialRequests: "terrasse"},
		{Status: entity.ReservationPending},
		{Status: entity.ReservationConfirmed},
		{Status: entity.ReservationCancelled, SpecialRequests: "anniversaire"},
	}

	c := entity.CountReservations(list)

	assert.Equal(t, entity.ReservationCounters{Total: 4, Pending: 2, Confirmed: 1, Cancelled: 1, WithSpecialRequests: 2}, c)
}

func TestCountReviews_Media(t *testing.T) {
	list := []*entity.Review{
		{Rating: 5, Approved: true, Featured: true},
		{Rating: 4},
		{Rating: 4, Approved: true},
	}

	c := entity.CountReviews(list)

	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 2, c.Approved)
	assert.Equal(t, 1, c.Pending)
	assert.Equal(t, 1, c.Featured)
	assert.True(t, decimal.RequireFromString("4.33").Equal(c.AverageRating), "media: %s", c.AverageRating)
}

func TestCountReviews_SinDatos(t *testing.T) {
	c := entity.CountReviews(nil)
	assert.True(t, c.AverageRating.IsZero())
}

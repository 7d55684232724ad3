package dto_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/domain"
)

func TestFlexInt_AceptaNumeroYTexto(t *testing.T) {
	cases := map[string]dto.FlexInt{
		`4`:            4,
		`"4"`:          4,
		`"8+"`:         8,
		`"4 personas"`: 4,
		`" 2 "`:        2,
		`"beaucoup"`:   0,
	}
	for raw, want := range cases {
		var got struct {
			Guests dto.FlexInt `json:"guests"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"guests":`+raw+`}`), &got), raw)
		assert.Equal(t, want, got.Guests, raw)
	}
}

func TestFlexInt_TipoInvalido(t *testing.T) {
	var f dto.FlexInt
	assert.Error(t, json.Unmarshal([]byte(`true`), &f))
}

func TestValidate_ReservaSinInvitados(t *testing.T) {
	in := dto.CreateReservationRequest{
		Name:     "Awa",
		Phone:    "+225 07 00 00 00",
		DateTime: time.Now().Add(24 * time.Hour),
		Guests:   dto.ParseFlexInt("beaucoup"),
	}

	err := dto.Validate(in)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "guests")
}

func TestValidate_PlatoRequiereCamposYPrecioNoNegativo(t *testing.T) {
	err := dto.Validate(dto.CreateMenuItemRequest{Name: "Garba"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description es requerido")
	assert.Contains(t, err.Error(), "price es requerido")
	assert.Contains(t, err.Error(), "category_id es requerido")

	neg := int64(-1)
	err = dto.Validate(dto.CreateMenuItemRequest{Name: "Garba", Description: "Attiéké thon", Price: &neg, CategoryID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")

	zero := int64(0)
	assert.NoError(t, dto.Validate(dto.CreateMenuItemRequest{Name: "Eau", Description: "Offerte", Price: &zero, CategoryID: "c1"}))
}

func TestValidate_RatingFueraDeRango(t *testing.T) {
	err := dto.Validate(dto.CreateReviewRequest{Name: "Koffi", Rating: 6, Comment: "Top"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
}

func TestCreateReviewRequest_IgnoraModeracion(t *testing.T) {
	var in dto.CreateReviewRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","rating":5,"comment":"ok","approved":true,"featured":true}`), &in))
	assert.NoError(t, dto.Validate(in))
}

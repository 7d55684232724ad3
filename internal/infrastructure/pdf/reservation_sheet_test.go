package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/pdf"
)

func TestRenderReservationSheet_GeneraPDF(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	out, err := pdf.NewReservationSheetGenerator().RenderReservationSheet(dto.ReservationSheet{
		Restaurant: "Afrispot",
		Date:       day,
		Reservations: []dto.ReservationResponse{
			{Name: "Awa Diop", Phone: "+221770000000", DateTime: day.Add(20 * time.Hour), Guests: 4, Status: "pending"},
			{Name: "Moussa Fall", Phone: "+221780000000", DateTime: day.Add(21 * time.Hour), Guests: 2, Status: "confirmed", SpecialRequests: "Anniversaire"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderReservationSheet_DiaVacio(t *testing.T) {
	out, err := pdf.NewReservationSheetGenerator().RenderReservationSheet(dto.ReservationSheet{Date: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

// Package pdf genera la hoja de reservas del día para imprimir en sala.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante           │  Hoja de reservas + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: reservas / cubiertos / pendientes                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Nombre | Teléfono | Pers. | Estado | Notas    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var _ ports.ReservationSheetRenderer = (*ReservationSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 139, Green: 69, Blue: 19}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPending = &props.Color{Red: 180, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReservationSheetGenerator implementa ports.ReservationSheetRenderer con Maroto v2.
type ReservationSheetGenerator struct {
	now func() time.Time
}

// NewReservationSheetGenerator construye el generador.
func NewReservationSheetGenerator() *ReservationSheetGenerator {
	return &ReservationSheetGenerator{now: time.Now}
}

// RenderReservationSheet genera el PDF y devuelve sus bytes.
func (g *ReservationSheetGenerator) RenderReservationSheet(sheet dto.ReservationSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de reservas "+sheet.Date.Format("2006-01-02"), true).
		WithAuthor(sheet.Restaurant, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(sheet.Reservations))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(sheet.Reservations) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin reservas para este día.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, r := range reservationRows(sheet.Reservations) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+g.now().Format("02/01/2006 15:04"), props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Right}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de reservas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet dto.ReservationSheet) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(sheet.Restaurant, "Restaurante"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE RESERVAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sheet.Date.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow totales del día: reservas, cubiertos y pendientes de confirmar.
func summaryRow(list []dto.ReservationResponse) core.Row {
	covers, pending := 0, 0
	for _, r := range list {
		covers += r.Guests
		if r.Status == "pending" {
			pending++
		}
	}
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
		)
	}
	return row.New(13).Add(
		cell("Reservas", strconv.Itoa(len(list))),
		cell("Cubiertos", strconv.Itoa(covers)),
		cell("Pendientes", strconv.Itoa(pending)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 1, align.Left),
		h("Nombre", 3, align.Left),
		h("Teléfono", 2, align.Left),
		h("Pers.", 1, align.Center),
		h("Estado", 2, align.Left),
		h("Peticiones", 3, align.Left),
	)
}

func reservationRows(list []dto.ReservationResponse) []core.Row {
	out := make([]core.Row, 0, len(list))
	for _, r := range list {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		status := props.Text{Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold}
		if r.Status == "pending" {
			status.Color = colorPending
		}
		out = append(out, row.New(7).Add(
			cell(r.DateTime.Format("15:04"), 1, align.Left),
			cell(r.Name, 3, align.Left),
			cell(r.Phone, 2, align.Left),
			cell(strconv.Itoa(r.Guests), 1, align.Center),
			col.New(2).Add(text.New(statusLabel(r.Status), status)),
			cell(nonEmpty(r.SpecialRequests, "—"), 3, align.Left),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s string) string {
	switch s {
	case "pending":
		return "Pendiente"
	case "confirmed":
		return "Confirmada"
	case "cancelled":
		return "Cancelada"
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

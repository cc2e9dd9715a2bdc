// Package pdf genera el comprobante de bitácora (entrega, consumo y daños) de un evento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + Reserva    │  Estado + Fechas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículos entregados                                 │
//	│  TABLA: Lecturas de electricidad                             │
//	│  TABLA: Daños / pérdidas                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Monto / Electricidad / Recuperación / TOTAL        │
//	│  FOOTER: QR con el ID + verificación                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	domainlog "github.com/jhoicas/logbook-api/internal/domain/logbook"
)

var _ logbook.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorOrange  = &props.Color{Red: 200, Green: 100, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa logbook.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	venue string
}

// NewReceiptGenerator construye el generador; venue aparece como autor y pie del documento.
func NewReceiptGenerator(venue string) *ReceiptGenerator {
	return &ReceiptGenerator{venue: venue}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, e *entity.LogEntry) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Log Book "+e.BookingID, true).
		WithAuthor(g.venue, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(e))

	m.AddRows(sectionTitle("ARTÍCULOS ENTREGADOS"))
	m.AddRows(issuedRows(e.ItemsIssued)...)

	if len(e.ElectricityReadings) > 0 {
		m.AddRows(sectionTitle("LECTURAS DE ELECTRICIDAD"))
		m.AddRows(readingRows(e.ElectricityReadings)...)
	}

	if len(e.DamageLossSummary) > 0 {
		m.AddRows(sectionTitle("DAÑOS / PÉRDIDAS"))
		m.AddRows(damageRows(e.DamageLossSummary)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(e))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(e, g.venue))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(e *entity.LogEntry) core.Row {
	statusColor := colorOrange
	if e.IsVerified() {
		statusColor = colorGreen
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("LOG BOOK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reserva: "+e.BookingID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(string(e.Status)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: statusColor, Top: 1,
			}),
			text.New("Evento: "+dateRange(e.DateRange), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func customerRow(e *entity.LogEntry) core.Row {
	detail := fmt.Sprintf("Tel: %s   |   Propiedad: %s", nonEmpty(e.MobileNo, "-"), e.PropertyType)
	if e.EventType != "" {
		detail += "   |   Tipo de evento: " + e.EventType
	}
	if e.CheckInTime != "" {
		detail += "   |   Check-in: " + e.CheckInTime
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(e.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(detail, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

// tableRow arma una fila de tabla; sizes debe sumar 12.
func tableRow(header bool, sizes []int, cells ...string) core.Row {
	style := fontstyle.Normal
	if header {
		style = fontstyle.Bold
	}
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		a := align.Left
		if i > 0 && i == len(cells)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(c, props.Text{
			Style: style, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func issuedRows(items []entity.IssuedItem) []core.Row {
	sizes := []int{3, 3, 3, 1, 2}
	rows := []core.Row{tableRow(true, sizes, "Artículo", "Marca / Modelo", "Estado", "Cant.", "Observaciones")}
	for _, it := range items {
		rows = append(rows, tableRow(false, sizes,
			it.Category+" / "+it.SubCategory,
			it.Brand+" "+it.Model,
			it.Condition,
			fmt.Sprint(it.Quantity),
			nonEmpty(it.Remarks, "-"),
		))
	}
	return rows
}

func readingRows(readings []entity.ElectricityReading) []core.Row {
	sizes := []int{3, 2, 2, 2, 1, 2}
	rows := []core.Row{tableRow(true, sizes, "Tipo", "Inicio", "Fin", "Consumo", "Tarifa", "Total")}
	for _, r := range readings {
		rows = append(rows, tableRow(false, sizes,
			r.Type,
			r.StartReading.String(),
			r.EndReading.String(),
			r.UnitsConsumed.String()+" "+r.UnitType,
			formatMoney(r.CostPerUnit),
			formatMoney(r.Total),
		))
	}
	return rows
}

func damageRows(damages []entity.DamageLoss) []core.Row {
	sizes := []int{3, 3, 2, 1, 3}
	rows := []core.Row{tableRow(true, sizes, "Artículo", "Marca / Modelo", "Estado", "Cant.", "Monto")}
	for _, d := range damages {
		rows = append(rows, tableRow(false, sizes,
			d.Category+" / "+d.SubCategory,
			d.Brand+" "+d.Model,
			d.Condition,
			fmt.Sprint(d.Quantity),
			formatMoney(d.Amount),
		))
	}
	return rows
}

func totalsRow(e *entity.LogEntry) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	electricity := decimal.Zero
	for _, r := range e.ElectricityReadings {
		electricity = electricity.Add(r.Total)
	}
	grand := e.GrandTotal
	if !e.IsVerified() {
		grand = domainlog.GrandTotal(e.TotalAmount, e.ElectricityReadings, e.TotalRecoveryAmount)
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Monto:", 0),
			label("Electricidad:", 5),
			label("Recuperación:", 10),
			label("Daños reportados:", 15),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 20,
			}),
		),
		col.New(3).Add(
			value(formatMoney(e.TotalAmount), 0),
			value(formatMoney(electricity), 5),
			value(formatMoney(e.TotalRecoveryAmount), 10),
			value(formatMoney(domainlog.DamageTotal(e.DamageLossSummary)), 15),
			text.New(formatMoney(grand), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 20,
			}),
		),
	)
}

func footerRow(e *entity.LogEntry, venue string) core.Row {
	msg := "Pendiente de verificación. El total es provisional."
	if e.IsVerified() && e.VerifiedAt != nil {
		msg = "Verificado el " + e.VerifiedAt.Format("02/01/2006 15:04")
		if e.VerifiedBy != "" {
			msg += " por " + e.VerifiedBy
		}
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(e.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(msg, props.Text{Size: 9, Top: 4, Left: 3}),
			text.New("ID: "+e.ID, props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
			text.New(venue, props.Text{Style: fontstyle.Bold, Size: 9, Top: 20, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func dateRange(r entity.DateRange) string {
	f := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006")
	}
	return f(r.From) + " - " + f(r.To)
}

// formatMoney fija dos decimales e inserta comas de miles.
// Ej: 1249.86 → "1,249.86", -5000 → "-5,000.00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + "." + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}

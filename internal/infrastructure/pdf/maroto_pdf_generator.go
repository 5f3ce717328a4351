// Package pdf genera el reporte analítico combinado en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período + fecha de generación             │
//	│  RESUMEN: ingresos / utilidad / compras / unidades vendidas │
//	│  MERMA: ítems con alerta y valor perdido                    │
//	│  VARIANZA: teórico vs real por ingrediente                  │
//	│  PRECIOS: tendencia y recomendación                         │
//	│  MENÚ: cuadrantes STAR / PLOWHORSE / PUZZLE / DOG           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador; title encabeza cada reporte.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Restaurant Analytics"
	}
	return &MarotoPDFGenerator{title: title}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(report *dto.FullReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)

	m.AddRows(sectionTitle("MERMA (COMPRADO VS ENTREGADO)"))
	m.AddRows(tableHeader([]string{"Ítem", "Comprado", "Entregado", "Merma %", "Valor perdido", "Estado"}, []int{3, 2, 2, 1, 2, 2}))
	for _, it := range report.Leakage.Items {
		if it.Status == "" {
			continue
		}
		m.AddRows(tableRow([]string{
			it.ItemName, qty(it.Purchased, it.Unit), qty(it.Issued, it.Unit),
			it.LeakagePct.StringFixed(1), money(it.ValueLost), it.Status,
		}, []int{3, 2, 2, 1, 2, 2}, true))
	}
	m.AddRows(keyValue("Valor total perdido", money(report.Leakage.TotalValueLost)))

	m.AddRows(sectionTitle("VARIANZA DE RECETAS"))
	m.AddRows(tableHeader([]string{"Ingrediente", "Teórico", "Real", "Varianza %", "Estado"}, []int{4, 2, 2, 2, 2}))
	for _, it := range report.Variance.Items {
		m.AddRows(tableRow([]string{
			it.Ingredient, qty(it.Theoretical, it.Unit), qty(it.Actual, it.Unit),
			it.VariancePct.StringFixed(1), it.Status,
		}, []int{4, 2, 2, 2, 2}, it.Status != "NORMAL"))
	}

	m.AddRows(sectionTitle("TENDENCIA DE PRECIOS"))
	m.AddRows(tableHeader([]string{"Ítem", "Primer precio", "Último precio", "Cambio %", "Tendencia"}, []int{4, 2, 2, 2, 2}))
	for _, it := range report.PriceTrends {
		m.AddRows(tableRow([]string{
			it.ItemName, money(it.FirstPrice), money(it.LastPrice),
			it.ChangePct.StringFixed(1), it.Trend,
		}, []int{4, 2, 2, 2, 2}, it.Alert))
		if it.Recommendation != "" {
			m.AddRows(note(it.Recommendation))
		}
	}

	m.AddRows(sectionTitle("INGENIERÍA DE MENÚ"))
	for _, grp := range report.Menu.Groups {
		m.AddRows(keyValue(fmt.Sprintf("%s (%d)", grp.Class, grp.Count), grp.Advice))
		for _, it := range grp.Items {
			m.AddRows(tableRow([]string{
				it.ItemName, it.QuantitySold.StringFixed(0), money(it.Revenue), it.ProfitMarginPct.StringFixed(1) + "%",
			}, []int{6, 2, 2, 2}, false))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, report *dto.FullReportDTO) core.Row {
	period := "Sin datos"
	if report.Summary.DateFrom != "" {
		period = report.Summary.DateFrom + " a " + report.Summary.DateTo
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Período: "+period, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("REPORTE DE OPERACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 10, Color: colorGray}),
		),
	)
}

func summaryRows(s dto.SummaryDTO) []core.Row {
	return []core.Row{
		sectionTitle("RESUMEN"),
		keyValue("Ingresos", money(s.TotalRevenue)),
		keyValue("Utilidad", money(s.TotalProfit)),
		keyValue("Compras", money(s.TotalPurchaseAmount)),
		keyValue("Unidades vendidas", s.TotalItemsSold.StringFixed(0)),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 4}),
	))
}

func keyValue(k, v string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(k+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(8).Add(text.New(v, props.Text{Size: 8, Top: 1})),
	)
}

func note(s string) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 7, Color: colorGray, Left: 4}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 1,
		}))
	}
	return row.New(7).Add(cols...)
}

func tableRow(values []string, sizes []int, highlight bool) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		p := props.Text{Size: 8, Top: 1, Left: 1}
		if highlight {
			p.Color = colorAlert
		}
		cols[i] = col.New(sizes[i]).Add(text.New(v, p))
	}
	return row.New(6).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func money(d decimal.Decimal) string {
	return "Rs. " + formatMoney(d.StringFixed(2))
}

func qty(d decimal.Decimal, unit string) string {
	return d.StringFixed(2) + " " + unit
}

// formatMoney inserta comas de miles en la parte entera.
// Ej: "25000.50" → "25,000.50"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	for i := range s {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	n := len(intPart)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

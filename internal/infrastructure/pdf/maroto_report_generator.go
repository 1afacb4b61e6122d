// Package pdf implementa los reportes PDF de la API con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte      │  período / fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN: título + tabla (cabecera con fondo de color)      │
//	│  TOTAL de la sección alineado a la derecha                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GENERAL                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorGreen   = &props.Color{Red: 0, Green: 128, Blue: 0}
	colorRed     = &props.Color{Red: 190, Green: 0, Blue: 0}
)

// column describe una columna de tabla: ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa finance.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author se graba en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

var _ finance.ReportGenerator = (*MarotoReportGenerator)(nil)

func (g *MarotoReportGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// AccountingReport genera el reporte contable: nómina por producción y gastos operativos.
func (g *MarotoReportGenerator) AccountingReport(_ context.Context, r *finance.AccountingReport) ([]byte, error) {
	m := g.newDocument("Reporte Contable")

	m.AddRows(headerRow(g.author+" - Reporte Contable", fmt.Sprintf("Período: %d/%d", r.Month, r.Year)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// 1. Nómina
	m.AddRows(sectionRow(fmt.Sprintf("1. Nómina / Producción (%d Empleados)", len(r.Production))))
	if len(r.Production) == 0 {
		m.AddRows(noteRow("Sin actividad registrada."))
	} else {
		cols := []column{
			{"Empleado", 6, align.Left},
			{"Producción", 3, align.Right},
			{"A Pagar", 3, align.Right},
		}
		m.AddRows(tableHeaderRow(cols))
		for _, p := range r.Production {
			m.AddRows(tableRow(cols, p.EmployeeName, money.Quantity(p.Meters)+"m", money.Format(p.Earned)))
		}
		m.AddRows(totalRow("Total Nómina:", money.Format(r.TotalPayroll), nil))
	}
	m.AddRows(line.NewRow(4))

	// 2. Gastos
	title := fmt.Sprintf("2. Gastos Operativos (%d)", len(r.Expenses))
	if r.ReceiptCount > 0 {
		title = fmt.Sprintf("2. Gastos Operativos (%d, %d con comprobante)", len(r.Expenses), r.ReceiptCount)
	}
	m.AddRows(sectionRow(title))
	if len(r.Expenses) == 0 {
		m.AddRows(noteRow("Sin gastos registrados."))
	} else {
		cols := []column{
			{"Fecha", 2, align.Left},
			{"Descripción", 7, align.Left},
			{"Monto", 3, align.Right},
		}
		m.AddRows(tableHeaderRow(cols))
		for _, t := range r.Expenses {
			m.AddRows(tableRow(cols, t.Date.Format("02/01/2006"), truncate(t.Description, 40), money.Format(t.Amount)))
		}
		m.AddRows(totalRow("Total Gastos:", money.Format(r.TotalExpenses), nil))
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(grandTotalRow("TOTAL GENERAL DEL PERÍODO:", money.Format(r.Total)))

	return generate(m)
}

// MonthlyReport genera el resumen de caja del mes con el detalle de movimientos.
func (g *MarotoReportGenerator) MonthlyReport(_ context.Context, r *finance.MonthlyReport) ([]byte, error) {
	m := g.newDocument("Reporte Mensual")

	m.AddRows(headerRow("Reporte Mensual: "+r.Label, "Emitido: "+time.Now().Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("Resumen Financiero"))
	summary := []column{{"Concepto", 8, align.Left}, {"Monto", 4, align.Right}}
	m.AddRows(tableHeaderRow(summary))
	m.AddRows(tableRow(summary, "Total Ingresos", money.Format(r.Income)))
	m.AddRows(tableRow(summary, "Total Gastos", money.Format(r.Expenses)))
	balanceColor := colorGreen
	if r.Balance.IsNegative() {
		balanceColor = colorRed
	}
	m.AddRows(totalRow("Balance Final:", money.Format(r.Balance), balanceColor))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRow("Detalle de Movimientos"))
	cols := []column{
		{"Fecha", 2, align.Left},
		{"Tipo", 1, align.Left},
		{"Categoría", 3, align.Left},
		{"Descripción", 4, align.Left},
		{"Monto", 2, align.Right},
	}
	m.AddRows(tableHeaderRow(cols))
	for _, t := range r.Transactions {
		kind, color := "Gasto", colorRed
		if t.Type == entity.TxTypeIncome {
			kind, color = "Ingreso", colorGreen
		}
		m.AddRows(row.New(6).Add(
			cell(cols[0], t.Date.Format("02/01/2006"), nil),
			cell(cols[1], kind, nil),
			cell(cols[2], nonEmpty(t.CategoryName, "-"), nil),
			cell(cols[3], nonEmpty(truncate(t.Description, 30), "-"), nil),
			cell(cols[4], money.Format(t.Amount), color),
		))
	}

	return generate(m)
}

// TripSheet genera la hoja de una salida: datos, cuadrilla con producción y materiales.
func (g *MarotoReportGenerator) TripSheet(_ context.Context, s *finance.TripSheet) ([]byte, error) {
	m := g.newDocument("Hoja de Salida")
	t := s.Trip

	status := "ABIERTA"
	if t.IsClosed() {
		status = "CERRADA"
	}
	m.AddRows(headerRow("Hoja de Salida", "Fecha: "+t.Date.Format("02/01/2006")+"  |  "+status))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New(t.Description, props.Text{Style: fontstyle.Bold, Size: 11, Top: 1}),
		text.New("Vehículo: "+nonEmpty(s.VehicleName, "-")+destination(t), props.Text{
			Size: 8, Top: 7, Color: colorGray,
		}),
	)))

	m.AddRows(sectionRow(fmt.Sprintf("Cuadrilla (%d)", len(s.Crew))))
	crew := []column{
		{"Empleado", 4, align.Left},
		{"Presente", 2, align.Center},
		{"Metros", 2, align.Right},
		{"Precio", 2, align.Right},
		{"Ganado", 2, align.Right},
	}
	m.AddRows(tableHeaderRow(crew))
	for _, l := range s.Crew {
		present := "No"
		if l.IsPresent {
			present = "Sí"
		}
		earned := money.Format(l.Earned)
		if !l.Settled {
			earned += " (est.)"
		}
		m.AddRows(tableRow(crew, l.EmployeeName, present, money.Quantity(l.Meters), money.Format(l.Price), earned))
	}
	m.AddRows(totalRow("Total: "+money.Quantity(s.TotalMeters)+"m", money.Format(s.TotalEarned), nil))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRow(fmt.Sprintf("Materiales (%d)", len(s.Materials))))
	if len(s.Materials) == 0 {
		m.AddRows(noteRow("Sin materiales asignados."))
	} else {
		mats := []column{
			{"Material", 6, align.Left},
			{"Llevado", 2, align.Right},
			{"Devuelto", 2, align.Right},
			{"Usado", 2, align.Right},
		}
		m.AddRows(tableHeaderRow(mats))
		for _, mt := range s.Materials {
			m.AddRows(tableRow(mats, mt.Name, money.Quantity(mt.Out), money.Quantity(mt.Returned), money.Quantity(mt.Used)))
		}
	}

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y subtítulo (der).
func headerRow(title, subtitle string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(subtitle, props.Text{
			Size: 8, Align: align.Right, Top: 4, Color: colorGray,
		})),
	)
}

func sectionRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
	})))
}

func noteRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Top: 1, Color: colorGray})))
}

// tableHeaderRow: cabecera de tabla con fondo primario.
func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(cols []column, values ...string) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		cs = append(cs, cell(c, values[i], nil))
	}
	return row.New(6).Add(cs...)
}

func cell(c column, value string, color *props.Color) core.Col {
	return col.New(c.size).Add(text.New(value, props.Text{
		Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

// totalRow: etiqueta y valor en negrita alineados a la derecha.
func totalRow(label, value string, color *props.Color) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1, Color: color,
		})),
	)
}

func grandTotalRow(label, value string) core.Row {
	return row.New(12).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(4).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncate corta s a n runas.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func destination(t *entity.WorkTrip) string {
	if t.DestinationLat == nil || t.DestinationLng == nil {
		return ""
	}
	return fmt.Sprintf("   |   Destino: %.5f, %.5f", *t.DestinationLat, *t.DestinationLng)
}

// Package pdf genera los impresos del almacén con Maroto v2: el formulario de cada documento
// y los libros Jinshi Khata y Sahayak Jinshi Khata.
//
// Layout del formulario (A4 vertical):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Oficina + título del formulario  │  N°, año fiscal, fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Campos de cabecera (proveedor, receptor, motivo...)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Bien | Cant | Unidad | Tarifa | Total | ...     │
//	│  Fila de totales                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Firmas: quién preparó, verificó y aprobó                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ reports.PDFGenerator = (*MarotoPDFGenerator)(nil)

func newDocument(title, author string, o orientation.Type) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(o).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// DocumentPDF genera el formulario impreso de un documento.
func (g *MarotoPDFGenerator) DocumentPDF(_ context.Context, v reports.DocumentView) ([]byte, error) {
	m := newDocument(v.Title, v.Office, orientation.Vertical)

	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range fieldRows(v.Fields) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	cols := lineColumns(v.Spec)
	m.AddRows(tableHeaderRow(cols))
	for i, l := range v.Lines {
		m.AddRows(lineRow(cols, i+1, l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(cols, v.Totals))

	m.AddRows(line.NewRow(10))
	if len(v.Signatures) > 0 {
		m.AddRows(signatureRow(v.Signatures))
	}
	return render(m)
}

// ── Secciones del formulario ──────────────────────────────────────────────────

// headerRow: oficina + título (izq) y número, año fiscal, fecha y estado (der).
func headerRow(v reports.DocumentView) core.Row {
	h := v.Header
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(v.Office, "Health Office"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(v.Title, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("No. %d", h.Number), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fiscal year: "+h.FiscalYear, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Date: "+h.Date, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Status: "+h.Status, props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// fieldRows: campos de cabecera de dos en dos.
func fieldRows(fields []reports.Field) []core.Row {
	cell := func(f reports.Field) core.Col {
		return col.New(6).Add(
			text.New(f.Label+": ", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New(f.Value, props.Text{Size: 8, Top: 1, Left: 28}),
		)
	}
	rows := make([]core.Row, 0, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		r := row.New(6)
		if i+1 < len(fields) {
			r.Add(cell(fields[i]), cell(fields[i+1]))
		} else {
			r.Add(cell(fields[i]), col.New(6))
		}
		rows = append(rows, r)
	}
	return rows
}

// column columna de la tabla de líneas: ancho en la grilla de 12 y cómo sacar el valor.
type column struct {
	label string
	size  int
	align align.Type
	value func(n int, l entity.LineItem) string
	total func(t inventory.Totals) string
}

// lineColumns columnas del formulario según sus columnas calculadas. El ancho que no usan
// IVA ni otros gastos se le da al nombre del bien.
func lineColumns(spec inventory.FormSpec) []column {
	name := column{label: "Particulars", size: 3, align: align.Left,
		value: func(_ int, l entity.LineItem) string { return describe(l) }}
	cols := []column{
		{label: "S.N.", size: 1, align: align.Center,
			value: func(n int, _ entity.LineItem) string { return fmt.Sprintf("%d", n) }},
		name,
		{label: "Qty", size: 1, align: align.Right,
			value: func(_ int, l entity.LineItem) string { return l.Quantity.String() },
			total: func(t inventory.Totals) string { return t.Quantity.String() }},
		{label: "Unit", size: 1, align: align.Center,
			value: func(_ int, l entity.LineItem) string { return l.Unit }},
		{label: "Rate", size: 1, align: align.Right,
			value: func(_ int, l entity.LineItem) string { return formatMoney(l.Rate) }},
		{label: "Total", size: 1, align: align.Right,
			value: func(_ int, l entity.LineItem) string { return formatMoney(l.TotalAmount) },
			total: func(t inventory.Totals) string { return formatMoney(t.TotalAmount) }},
	}
	switch spec.VAT {
	case inventory.VATAbsolute:
		cols = append(cols, column{label: "VAT", size: 1, align: align.Right,
			value: func(_ int, l entity.LineItem) string { return formatMoney(l.VATAmount) },
			total: func(t inventory.Totals) string { return formatMoney(t.VATAmount) }})
	case inventory.VATPercent:
		cols = append(cols, column{label: "VAT %", size: 1, align: align.Right,
			value: func(_ int, l entity.LineItem) string { return l.TaxPercent.String() }})
	}
	if spec.VAT != inventory.VATNone {
		cols = append(cols, column{label: "Grand total", size: 1, align: align.Right,
			value: func(_ int, l entity.LineItem) string { return formatMoney(l.GrandTotal) },
			total: func(t inventory.Totals) string { return formatMoney(t.GrandTotal) }})
	}
	if spec.OtherExpenses {
		cols = append(cols,
			column{label: "Other exp.", size: 1, align: align.Right,
				value: func(_ int, l entity.LineItem) string { return formatMoney(l.OtherExpenses) },
				total: func(t inventory.Totals) string { return formatMoney(t.OtherExpenses) }},
			column{label: "Final total", size: 1, align: align.Right,
				value: func(_ int, l entity.LineItem) string { return formatMoney(l.FinalTotal) },
				total: func(t inventory.Totals) string { return formatMoney(t.FinalTotal) }},
		)
	}
	cols = append(cols, column{label: "Remarks", size: 1, align: align.Left,
		value: func(_ int, l entity.LineItem) string { return l.Remarks }})

	used := 0
	for _, c := range cols {
		used += c.size
	}
	if used < 12 {
		cols[1].size += 12 - used
	}
	return cols
}

func describe(l entity.LineItem) string {
	parts := []string{l.Name}
	if code := l.MatchCode(); code != "" {
		parts = append(parts, "["+code+"]")
	}
	if l.Specification != "" {
		parts = append(parts, l.Specification)
	}
	if l.ExpiryDate != "" {
		parts = append(parts, "exp "+l.ExpiryDate)
	}
	return strings.Join(parts, " ")
}

// tableHeaderRow: cabecera de la tabla de líneas con fondo azul.
func tableHeaderRow(cols []column) core.Row {
	r := row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func lineRow(cols []column, n int, l entity.LineItem) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.value(n, l), props.Text{
			Size: 7, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

// totalsRow: fila de totales bajo las columnas que suman.
func totalsRow(cols []column, t inventory.Totals) core.Row {
	r := row.New(8)
	for i, c := range cols {
		s := ""
		switch {
		case c.total != nil:
			s = c.total(t)
		case i == 1:
			s = "Total"
		}
		r.Add(col.New(c.size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

// signatureRow: una columna por firma, hasta cuatro.
func signatureRow(sigs []reports.Signature) core.Row {
	if len(sigs) > 4 {
		sigs = sigs[len(sigs)-4:]
	}
	size := 12 / len(sigs)
	r := row.New(18)
	for _, s := range sigs {
		r.Add(col.New(size).Add(
			text.New("........................", props.Text{Size: 8, Align: align.Center}),
			text.New(s.Role, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 5}),
			text.New(nonEmpty(s.Name, "-"), props.Text{Size: 8, Align: align.Center, Top: 9}),
			text.New(s.Date, props.Text{Size: 7, Align: align.Center, Top: 13, Color: colorGray}),
		))
	}
	return r
}

// ── Libros ────────────────────────────────────────────────────────────────────

// JinshiPDF genera el Jinshi Khata de un bien (A4 horizontal).
func (g *MarotoPDFGenerator) JinshiPDF(_ context.Context, office string, l *dto.JinshiLedgerResponse) ([]byte, error) {
	m := newDocument("Jinshi Khata", office, orientation.Horizontal)

	subtitle := fmt.Sprintf("Item: %s   |   Code: %s   |   Unit: %s   |   Fiscal year: %s",
		l.Item, nonEmpty(l.Code, "-"), nonEmpty(l.Unit, "-"), l.FiscalYear)
	m.AddRows(titleRow(office, "Jinshi Khata", subtitle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := []int{1, 1, 1, 2, 1, 1, 1, 1, 1, 2}
	m.AddRows(headerCells(sizes, "Date", "Type", "Doc no.", "Party", "Qty", "Rate", "Amount",
		"Bal. qty", "Bal. rate", "Bal. total"))
	for _, r := range l.Rows {
		m.AddRows(cells(sizes, false,
			r.Date, string(r.Kind), fmt.Sprintf("%d", r.DocNumber), r.Party,
			r.Quantity.String(), formatMoney(r.Rate), formatMoney(r.Amount),
			r.BalQty.String(), formatMoney(r.BalRate), formatMoney(r.BalTotal)))
	}

	s := l.Summary
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow("Opening", s.OpeningQty, s.OpeningValue))
	m.AddRows(summaryRow("Income", s.IncomeQty, s.IncomeValue))
	m.AddRows(summaryRow("Expense", s.ExpenseQty, s.ExpenseValue))
	m.AddRows(summaryRow("Closing", s.ClosingQty, s.ClosingValue))
	return render(m)
}

// CustodyPDF genera el Sahayak Jinshi Khata de una persona.
func (g *MarotoPDFGenerator) CustodyPDF(_ context.Context, office string, l *dto.CustodyLedgerResponse) ([]byte, error) {
	m := newDocument("Sahayak Jinshi Khata", office, orientation.Horizontal)

	state := "Outstanding items"
	if l.Cleared {
		state = "Cleared"
	}
	m.AddRows(titleRow(office, "Sahayak Jinshi Khata", "Person: "+l.Person+"   |   "+state))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := []int{1, 1, 3, 1, 1, 1, 1, 1, 1, 1}
	m.AddRows(headerCells(sizes, "Date", "FY", "Item", "Code", "Unit", "Rate", "Issued", "Returned",
		"Outstanding", "Returns"))
	for _, r := range l.Rows {
		m.AddRows(cells(sizes, false,
			r.Date, r.FiscalYear, r.Name, r.Code, r.Unit, formatMoney(r.Rate),
			r.IssuedQty.String(), r.ReturnedQty.String(), r.Outstanding.String(),
			fmt.Sprintf("%d", len(r.ReturnRefs))))
	}
	return render(m)
}

func titleRow(office, title, subtitle string) core.Row {
	return row.New(18).Add(col.New(12).Add(
		text.New(nonEmpty(office, "Health Office"), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 1,
		}),
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 7}),
		text.New(subtitle, props.Text{Size: 8, Align: align.Center, Top: 13, Color: colorGray}),
	))
}

func headerCells(sizes []int, labels ...string) core.Row {
	r := row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for i, s := range labels {
		r.Add(col.New(sizes[i]).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

func cells(sizes []int, bold bool, values ...string) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	r := row.New(6)
	for i, s := range values {
		r.Add(col.New(sizes[i]).Add(text.New(s, props.Text{Style: style, Size: 7, Top: 1, Left: 1, Right: 1})))
	}
	return r
}

func summaryRow(label string, qty, value decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(8),
		col.New(2).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2})),
		col.New(1).Add(text.New(qty.String(), props.Text{Size: 8, Align: align.Right})),
		col.New(1).Add(text.New(formatMoney(value), props.Text{Size: 8, Align: align.Right})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con comas de miles.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
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

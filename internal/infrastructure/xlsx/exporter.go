// Package xlsx exporta los libros del almacén a hojas de cálculo e importa saldos iniciales con excelize.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
)

// Exporter implementa reports.SpreadsheetExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

var _ reports.SpreadsheetExporter = (*Exporter)(nil)

// sheet ayuda a escribir una hoja fila por fila.
type sheet struct {
	f      *excelize.File
	name   string
	next   int
	header int
	bold   int
	money  int
}

func newSheet(name string) (*sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, err
	}
	// formato 4: #,##0.00
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}
	return &sheet{f: f, name: name, next: 1, header: header, bold: bold, money: money}, nil
}

func (s *sheet) row(values ...any) (int, error) {
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		return 0, err
	}
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		return 0, err
	}
	s.next++
	return s.next - 1, nil
}

func (s *sheet) title(text string) error {
	n, err := s.row(text)
	if err != nil {
		return err
	}
	cell, _ := excelize.CoordinatesToCellName(1, n)
	return s.f.SetCellStyle(s.name, cell, cell, s.bold)
}

func (s *sheet) headers(labels ...string) error {
	values := make([]any, len(labels))
	for i, l := range labels {
		values[i] = l
	}
	n, err := s.row(values...)
	if err != nil {
		return err
	}
	from, _ := excelize.CoordinatesToCellName(1, n)
	to, _ := excelize.CoordinatesToCellName(len(labels), n)
	if err := s.f.SetCellStyle(s.name, from, to, s.header); err != nil {
		return err
	}
	return s.f.SetPanes(s.name, &excelize.Panes{Freeze: true, YSplit: n, TopLeftCell: fmt.Sprintf("A%d", n+1), ActivePane: "bottomLeft"})
}

// moneyCols aplica formato de moneda a las columnas indicadas (base 1) desde la fila first.
func (s *sheet) moneyCols(first int, cols ...int) error {
	last := s.next - 1
	if last < first {
		return nil
	}
	for _, c := range cols {
		from, _ := excelize.CoordinatesToCellName(c, first)
		to, _ := excelize.CoordinatesToCellName(c, last)
		if err := s.f.SetCellStyle(s.name, from, to, s.money); err != nil {
			return err
		}
	}
	return nil
}

func (s *sheet) bytes() ([]byte, error) {
	defer s.f.Close()
	buf, err := s.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// num valor numérico de la celda; excelize escribe float64 como número.
func num(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// JinshiXLSX exporta el Jinshi Khata de un bien.
func (e *Exporter) JinshiXLSX(office string, l *dto.JinshiLedgerResponse) ([]byte, error) {
	s, err := newSheet("Jinshi Khata")
	if err != nil {
		return nil, err
	}
	if err := s.title(office); err != nil {
		return nil, err
	}
	if err := s.title("Jinshi Khata: " + l.Item); err != nil {
		return nil, err
	}
	if _, err := s.row("Fiscal year", l.FiscalYear, "Code", l.Code, "Unit", l.Unit); err != nil {
		return nil, err
	}
	if _, err := s.row(); err != nil {
		return nil, err
	}
	if err := s.headers("Date", "Type", "Document", "Doc no.", "Party", "Code", "Unit",
		"Qty", "Rate", "Amount", "Bal. qty", "Bal. rate", "Bal. total"); err != nil {
		return nil, err
	}
	first := s.next
	for _, r := range l.Rows {
		if _, err := s.row(r.Date, string(r.Kind), string(r.DocKind), r.DocNumber, r.Party, r.Code, r.Unit,
			num(r.Quantity), num(r.Rate), num(r.Amount), num(r.BalQty), num(r.BalRate), num(r.BalTotal)); err != nil {
			return nil, fmt.Errorf("xlsx: jinshi: %w", err)
		}
	}
	if err := s.moneyCols(first, 9, 10, 12, 13); err != nil {
		return nil, err
	}

	sum := l.Summary
	if _, err := s.row(); err != nil {
		return nil, err
	}
	for _, r := range [][]any{
		{"Opening", num(sum.OpeningQty), num(sum.OpeningValue)},
		{"Income", num(sum.IncomeQty), num(sum.IncomeValue)},
		{"Expense", num(sum.ExpenseQty), num(sum.ExpenseValue)},
		{"Closing", num(sum.ClosingQty), num(sum.ClosingValue)},
	} {
		if _, err := s.row(r...); err != nil {
			return nil, err
		}
	}
	_ = s.f.SetColWidth(s.name, "A", "A", 12)
	_ = s.f.SetColWidth(s.name, "E", "E", 24)
	return s.bytes()
}

// CustodyXLSX exporta el Sahayak Jinshi Khata de una persona.
func (e *Exporter) CustodyXLSX(office string, l *dto.CustodyLedgerResponse) ([]byte, error) {
	s, err := newSheet("Sahayak Jinshi Khata")
	if err != nil {
		return nil, err
	}
	if err := s.title(office); err != nil {
		return nil, err
	}
	if err := s.title("Sahayak Jinshi Khata: " + l.Person); err != nil {
		return nil, err
	}
	state := "Outstanding items"
	if l.Cleared {
		state = "Cleared"
	}
	if _, err := s.row("Status", state); err != nil {
		return nil, err
	}
	if _, err := s.row(); err != nil {
		return nil, err
	}
	if err := s.headers("Date", "Fiscal year", "Issue no.", "Item", "Code", "Unit", "Rate",
		"Issued", "Returned", "Outstanding", "Return refs"); err != nil {
		return nil, err
	}
	first := s.next
	for _, r := range l.Rows {
		if _, err := s.row(r.Date, r.FiscalYear, r.IssueNumber, r.Name, r.Code, r.Unit, num(r.Rate),
			num(r.IssuedQty), num(r.ReturnedQty), num(r.Outstanding), strings.Join(r.ReturnRefs, ", ")); err != nil {
			return nil, fmt.Errorf("xlsx: custodia: %w", err)
		}
	}
	if err := s.moneyCols(first, 7); err != nil {
		return nil, err
	}
	_ = s.f.SetColWidth(s.name, "D", "D", 28)
	return s.bytes()
}

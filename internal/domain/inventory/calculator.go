// Package inventory contiene la aritmética de los formularios (líneas, IVA, totales de pie)
// y la tarifa promedio ponderada del almacén.
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// VATMode cómo expresa el formulario el impuesto de cada línea.
type VATMode int

const (
	// VATNone el formulario no tiene columna de impuesto: grandTotal = total.
	VATNone VATMode = iota
	// VATAbsolute columna con monto de IVA: grandTotal = total + vatAmount.
	VATAbsolute
	// VATPercent columna con porcentaje: grandTotal = total * (1 + tax/100).
	VATPercent
)

// FormSpec columnas con cálculo que tiene cada formulario impreso.
type FormSpec struct {
	VAT           VATMode
	OtherExpenses bool // columna "anya kharcha": finalTotal = grandTotal + otherExpenses
}

// formSpecs se mantiene igual que los formularios en papel de cada tipo de documento.
var formSpecs = map[entity.DocKind]FormSpec{
	entity.KindDemandForm:    {VAT: VATNone},
	entity.KindPurchaseOrder: {VAT: VATPercent},
	entity.KindIssueReport:   {VAT: VATNone},
	entity.KindStockEntry:    {VAT: VATAbsolute, OtherExpenses: true},
	entity.KindDakhila:       {VAT: VATAbsolute, OtherExpenses: true},
	entity.KindReturn:        {VAT: VATNone},
	entity.KindMaintenance:   {VAT: VATPercent},
	entity.KindDisposal:      {VAT: VATNone},
}

// SpecFor devuelve las columnas calculadas del formulario; tipos desconocidos no tienen impuesto.
func SpecFor(kind entity.DocKind) FormSpec {
	return formSpecs[kind]
}

var hundred = decimal.NewFromInt(100)

// ComputeLine recalcula los totales derivados de una línea.
func ComputeLine(l entity.LineItem, spec FormSpec) entity.LineItem {
	l.TotalAmount = l.Quantity.Mul(l.Rate)
	switch spec.VAT {
	case VATAbsolute:
		l.GrandTotal = l.TotalAmount.Add(l.VATAmount)
	case VATPercent:
		l.GrandTotal = l.TotalAmount.Mul(decimal.NewFromInt(1).Add(l.TaxPercent.Div(hundred)))
	default:
		l.GrandTotal = l.TotalAmount
	}
	l.FinalTotal = l.GrandTotal
	if spec.OtherExpenses {
		l.FinalTotal = l.GrandTotal.Add(l.OtherExpenses)
	}
	return l
}

// ComputeLines aplica ComputeLine a todas las líneas y devuelve una copia.
func ComputeLines(lines []entity.LineItem, spec FormSpec) []entity.LineItem {
	out := make([]entity.LineItem, len(lines))
	for i, l := range lines {
		out[i] = ComputeLine(l, spec)
	}
	return out
}

// Totals fila de totales al pie del formulario (suma por columna).
type Totals struct {
	Quantity      decimal.Decimal `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	FinalTotal    decimal.Decimal `json:"final_total"`
}

// Footer suma columna por columna las líneas ya calculadas.
func Footer(lines []entity.LineItem) Totals {
	var t Totals
	for _, l := range lines {
		t.Quantity = t.Quantity.Add(l.Quantity)
		t.TotalAmount = t.TotalAmount.Add(l.TotalAmount)
		t.VATAmount = t.VATAmount.Add(l.VATAmount)
		t.OtherExpenses = t.OtherExpenses.Add(l.OtherExpenses)
		t.GrandTotal = t.GrandTotal.Add(l.GrandTotal)
		t.FinalTotal = t.FinalTotal.Add(l.FinalTotal)
	}
	return t
}

// ParseAmount lee un número escrito en un campo del formulario. Texto no numérico vale cero.
// Acepta separadores de miles con coma y dígitos devanagari.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format2 formatea a dos decimales para impresión.
func Format2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

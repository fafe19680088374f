// Package ledger reconstruye los libros del almacén a partir de los documentos:
// el Jinshi Khata (movimientos y saldo de un bien en el año fiscal) y el Sahayak Jinshi Khata
// (bienes durables en custodia de una persona). Son funciones puras sobre copias de los registros.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/pkg/nepdate"
)

// TxKind clasificación de un movimiento del libro.
type TxKind string

const (
	TxOpening TxKind = "Opening"
	TxIncome  TxKind = "Income"
	TxExpense TxKind = "Expense"
)

// Row un movimiento con el saldo acumulado después de aplicarlo.
type Row struct {
	Date      string          `json:"date"`
	Kind      TxKind          `json:"kind"`
	DocKind   entity.DocKind  `json:"doc_kind"`
	DocID     string          `json:"doc_id"`
	DocNumber int             `json:"doc_number"`
	Party     string          `json:"party,omitempty"`
	Code      string          `json:"code,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	BalQty    decimal.Decimal `json:"bal_qty"`
	BalRate   decimal.Decimal `json:"bal_rate"`
	BalTotal  decimal.Decimal `json:"bal_total"`
}

type tx struct {
	row  Row
	date nepdate.Date
	ok   bool
}

// BuildLedger arma el Jinshi Khata de itemName para el año fiscal.
//
// Los dakhila aportan entradas (u Opening si la línea o el informe son saldo inicial), las
// devoluciones verificadas o aprobadas aportan entradas y los informes de salida con estado
// Issued aportan salidas. Los movimientos se ordenan de forma estable por fecha; las fechas
// ilegibles van al final. Cantidad y valor acumulados nunca bajan de cero.
func BuildLedger(
	itemName, fiscalYear string,
	dakhila []entity.DakhilaPratibedan,
	issues []entity.IssueReport,
	returns []entity.ReturnEntry,
) []Row {
	key := NameKey(itemName)
	if key == "" {
		return []Row{}
	}
	fy := nepdate.NormalizeFiscalYear(fiscalYear)
	var txs []tx

	add := func(h entity.Header, kind entity.DocKind, party string, l entity.LineItem, k TxKind) {
		d, err := nepdate.Parse(h.Date)
		txs = append(txs, tx{
			date: d,
			ok:   err == nil,
			row: Row{
				Date:      nepdate.Normalize(h.Date),
				Kind:      k,
				DocKind:   kind,
				DocID:     h.ID,
				DocNumber: h.Number,
				Party:     party,
				Code:      l.MatchCode(),
				Unit:      l.Unit,
				Quantity:  l.Quantity,
				Rate:      l.Rate,
				Amount:    l.Quantity.Mul(l.Rate),
			},
		})
	}

	// El orden de inserción decide los empates de fecha: entradas antes que salidas.
	for _, d := range dakhila {
		if nepdate.NormalizeFiscalYear(d.FiscalYear) != fy {
			continue
		}
		for _, l := range d.Items {
			if NameKey(l.Name) != key {
				continue
			}
			k := TxIncome
			if l.Source == entity.SourceOpening || d.Source == entity.SourceOpening {
				k = TxOpening
			}
			add(d.Header, entity.KindDakhila, d.VendorName, l, k)
		}
	}
	for _, r := range returns {
		if nepdate.NormalizeFiscalYear(r.FiscalYear) != fy || !r.CountsAsReceived() {
			continue
		}
		for _, l := range r.Items {
			if NameKey(l.Name) != key {
				continue
			}
			k := TxIncome
			if l.Source == entity.SourceOpening {
				k = TxOpening
			}
			add(r.Header, entity.KindReturn, r.ReturnedBy, l, k)
		}
	}
	for _, is := range issues {
		if nepdate.NormalizeFiscalYear(is.FiscalYear) != fy || !is.IsIssued() {
			continue
		}
		for _, l := range is.Items {
			if NameKey(l.Name) != key {
				continue
			}
			add(is.Header, entity.KindIssueReport, is.Recipient, l, TxExpense)
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.date.Before(b.date)
	})

	rows := make([]Row, 0, len(txs))
	var qty, value decimal.Decimal
	for _, t := range txs {
		r := t.row
		if r.Kind == TxExpense {
			qty = qty.Sub(r.Quantity)
			value = value.Sub(r.Amount)
		} else {
			qty = qty.Add(r.Quantity)
			value = value.Add(r.Amount)
		}
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		if value.IsNegative() {
			value = decimal.Zero
		}
		r.BalQty = qty
		r.BalTotal = value
		r.BalRate = decimal.Zero
		if !qty.IsZero() {
			r.BalRate = value.DivRound(qty, 4)
		}
		rows = append(rows, r)
	}
	return rows
}

// Summary totales del libro para el pie del impreso.
type Summary struct {
	OpeningQty   decimal.Decimal `json:"opening_qty"`
	OpeningValue decimal.Decimal `json:"opening_value"`
	IncomeQty    decimal.Decimal `json:"income_qty"`
	IncomeValue  decimal.Decimal `json:"income_value"`
	ExpenseQty   decimal.Decimal `json:"expense_qty"`
	ExpenseValue decimal.Decimal `json:"expense_value"`
	ClosingQty   decimal.Decimal `json:"closing_qty"`
	ClosingRate  decimal.Decimal `json:"closing_rate"`
	ClosingValue decimal.Decimal `json:"closing_value"`
	Transactions int             `json:"transactions"`
}

// Summarize suma los movimientos por clase y toma el saldo de la última fila.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r.Kind {
		case TxOpening:
			s.OpeningQty = s.OpeningQty.Add(r.Quantity)
			s.OpeningValue = s.OpeningValue.Add(r.Amount)
		case TxIncome:
			s.IncomeQty = s.IncomeQty.Add(r.Quantity)
			s.IncomeValue = s.IncomeValue.Add(r.Amount)
		case TxExpense:
			s.ExpenseQty = s.ExpenseQty.Add(r.Quantity)
			s.ExpenseValue = s.ExpenseValue.Add(r.Amount)
		}
	}
	s.Transactions = len(rows)
	if n := len(rows); n > 0 {
		last := rows[n-1]
		s.ClosingQty, s.ClosingRate, s.ClosingValue = last.BalQty, last.BalRate, last.BalTotal
	}
	return s
}

package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/pkg/nepdate"
)

// CustodyRow una línea de salida de un bien durable y lo que la persona ya devolvió de ella.
type CustodyRow struct {
	IssueID     string          `json:"issue_id"`
	IssueNumber int             `json:"issue_number"`
	FiscalYear  string          `json:"fiscal_year"`
	Date        string          `json:"date"`
	Name        string          `json:"name"`
	Code        string          `json:"code,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Rate        decimal.Decimal `json:"rate"`
	IssuedQty   decimal.Decimal `json:"issued_qty"`
	ReturnedQty decimal.Decimal `json:"returned_qty"`
	Outstanding decimal.Decimal `json:"outstanding"`
	ReturnRefs  []string        `json:"return_refs,omitempty"`
}

// Cleared la línea está cubierta por completo.
func (r CustodyRow) Cleared() bool { return r.ReturnedQty.Equal(r.IssuedQty) }

type poolEntry struct {
	returnID  string
	name      string
	code      string
	remaining decimal.Decimal
}

type dated struct {
	date nepdate.Date
	ok   bool
}

func parseDated(s string) dated {
	d, err := nepdate.Parse(s)
	return dated{d, err == nil}
}

func (a dated) before(b dated) bool {
	if a.ok != b.ok {
		return a.ok
	}
	return a.ok && a.date.Before(b.date)
}

// BuildCustodyLedger arma el Sahayak Jinshi Khata de personName.
//
// Toma las líneas no consumibles de los informes de salida ya emitidos (Issued) a la persona (de la más
// antigua a la más reciente) y las cubre con las líneas de sus devoluciones aprobadas. Cada
// salida consume primero devoluciones con el mismo código y nombre, y después cualquier
// devolución del mismo nombre en orden de llegada. La asignación es voraz: una devolución
// consumida por una salida anterior ya no está disponible para las siguientes.
//
// cleared es verdadero cuando todas las filas quedan cubiertas (o no hay filas).
func BuildCustodyLedger(
	personName string,
	issues []entity.IssueReport,
	returns []entity.ReturnEntry,
	items []entity.InventoryItem,
) ([]CustodyRow, bool) {
	person := NameKey(personName)
	if person == "" {
		return []CustodyRow{}, true
	}
	types := newTypeResolver(items)

	mine := make([]entity.IssueReport, 0, len(issues))
	for _, is := range issues {
		if !is.IsIssued() || NameKey(is.Recipient) != person {
			continue
		}
		mine = append(mine, is)
	}
	sortByDate(mine, func(i int) string { return mine[i].Date })

	approved := make([]entity.ReturnEntry, 0, len(returns))
	for _, r := range returns {
		if r.IsApproved() && NameKey(r.ReturnedBy) == person {
			approved = append(approved, r)
		}
	}
	sortByDate(approved, func(i int) string { return approved[i].Date })

	var pool []*poolEntry
	for _, r := range approved {
		for _, l := range r.Items {
			if !l.Quantity.IsPositive() {
				continue
			}
			pool = append(pool, &poolEntry{
				returnID:  r.ID,
				name:      NameKey(l.Name),
				code:      l.MatchCode(),
				remaining: l.Quantity,
			})
		}
	}

	rows := make([]CustodyRow, 0)
	for _, is := range mine {
		for _, l := range is.Items {
			if types.typeOf(l) != entity.ItemNonExpendable {
				continue
			}
			row := CustodyRow{
				IssueID:     is.ID,
				IssueNumber: is.Number,
				FiscalYear:  is.FiscalYear,
				Date:        nepdate.Normalize(is.Date),
				Name:        l.Name,
				Code:        l.MatchCode(),
				Unit:        l.Unit,
				Rate:        l.Rate,
				IssuedQty:   l.Quantity,
				ReturnedQty: decimal.Zero,
			}
			name := NameKey(l.Name)
			// Pasada exacta: mismo código y nombre.
			if row.Code != "" {
				consume(&row, pool, func(p *poolEntry) bool { return p.code == row.Code && p.name == name })
			}
			// Pasada por nombre, en orden de llegada.
			consume(&row, pool, func(p *poolEntry) bool { return p.name == name })
			row.Outstanding = row.IssuedQty.Sub(row.ReturnedQty)
			rows = append(rows, row)
		}
	}

	cleared := true
	for _, r := range rows {
		if !r.Cleared() {
			cleared = false
			break
		}
	}
	return rows, cleared
}

func consume(row *CustodyRow, pool []*poolEntry, match func(*poolEntry) bool) {
	for _, p := range pool {
		need := row.IssuedQty.Sub(row.ReturnedQty)
		if !need.IsPositive() {
			return
		}
		if !p.remaining.IsPositive() || !match(p) {
			continue
		}
		take := decimal.Min(need, p.remaining)
		p.remaining = p.remaining.Sub(take)
		row.ReturnedQty = row.ReturnedQty.Add(take)
		row.ReturnRefs = appendUnique(row.ReturnRefs, p.returnID)
	}
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func sortByDate[T any](s []T, date func(i int) string) {
	keys := make([]dated, len(s))
	for i := range s {
		keys[i] = parseDated(date(i))
	}
	idx := make([]int, len(s))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]].before(keys[idx[b]]) })
	out := make([]T, len(s))
	for i, j := range idx {
		out[i] = s[j]
	}
	copy(s, out)
}

// typeResolver resuelve el tipo de bien de una línea que no lo trae: catálogo por código y luego por nombre.
type typeResolver struct {
	byCode map[string]string
	byName map[string]string
}

func newTypeResolver(items []entity.InventoryItem) typeResolver {
	r := typeResolver{byCode: map[string]string{}, byName: map[string]string{}}
	for _, it := range items {
		if it.AssetCode != "" {
			r.byCode[it.AssetCode] = it.Type
		}
		if it.Code != "" {
			if _, ok := r.byCode[it.Code]; !ok {
				r.byCode[it.Code] = it.Type
			}
		}
		if k := NameKey(it.Name); k != "" {
			if _, ok := r.byName[k]; !ok {
				r.byName[k] = it.Type
			}
		}
	}
	return r
}

func (r typeResolver) typeOf(l entity.LineItem) string {
	if l.ItemType != "" {
		return l.ItemType
	}
	if t, ok := r.byCode[l.AssetCode]; ok && l.AssetCode != "" {
		return t
	}
	if t, ok := r.byCode[l.Code]; ok && l.Code != "" {
		return t
	}
	return r.byName[NameKey(l.Name)]
}

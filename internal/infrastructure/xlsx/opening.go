package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
)

// openingColumns encabezados aceptados por campo (en minúsculas).
var openingColumns = map[string][]string{
	"name":       {"name", "item", "item name", "particulars"},
	"code":       {"code", "item code"},
	"asset_code": {"asset code", "asset_code"},
	"type":       {"type", "item type"},
	"unit":       {"unit"},
	"qty":        {"qty", "quantity"},
	"rate":       {"rate"},
	"expiry":     {"expiry", "expiry date", "expiry_date"},
	"batch":      {"batch", "batch no", "batch_no"},
	"spec":       {"specification", "spec"},
}

// ReadOpening lee los saldos iniciales de la primera hoja del libro. La primera fila son los
// encabezados; "name" y "qty" son obligatorios. Las filas sin nombre se saltan.
func ReadOpening(r io.Reader) ([]entity.LineItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: hoja %q vacía", sheets[0])
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, names := range openingColumns {
			for _, n := range names {
				if h == n {
					idx[field] = i
				}
			}
		}
	}
	for _, req := range []string{"name", "qty"} {
		if _, ok := idx[req]; !ok {
			return nil, fmt.Errorf("xlsx: falta la columna %q", req)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []entity.LineItem
	for n, row := range rows[1:] {
		name := cell(row, "name")
		if name == "" {
			continue
		}
		l := entity.LineItem{
			Name:          name,
			Code:          cell(row, "code"),
			AssetCode:     cell(row, "asset_code"),
			ItemType:      normalizeType(cell(row, "type")),
			Unit:          cell(row, "unit"),
			Specification: cell(row, "spec"),
			Quantity:      inventory.ParseAmount(cell(row, "qty")),
			Rate:          inventory.ParseAmount(cell(row, "rate")),
			ExpiryDate:    cell(row, "expiry"),
			BatchNo:       cell(row, "batch"),
			Source:        entity.SourceOpening,
		}
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("xlsx: fila %d (%s): cantidad inválida", n+2, name)
		}
		out = append(out, l)
	}
	return out, nil
}

func normalizeType(s string) string {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "expendable", "kharcha", "kharcha hune":
		return entity.ItemExpendable
	case "nonexpendable", "non expendable", "durable", "kharcha nahune":
		return entity.ItemNonExpendable
	}
	return ""
}

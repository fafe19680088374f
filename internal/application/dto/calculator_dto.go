package dto

import (
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
)

// CalculatorLine línea tal como llega de un formulario: los números vienen como texto.
type CalculatorLine struct {
	Name          string `json:"name"`
	Quantity      string `json:"quantity"`
	Rate          string `json:"rate"`
	VATAmount     string `json:"vat_amount"`
	TaxPercent    string `json:"tax_percent"`
	OtherExpenses string `json:"other_expenses"`
}

// CalculatorRequest vista previa de los totales de un formulario.
type CalculatorRequest struct {
	Kind  string           `json:"kind" validate:"required"`
	Lines []CalculatorLine `json:"lines"`
}

// CalculatorResponse líneas recalculadas y pie del formulario.
type CalculatorResponse struct {
	Kind   string            `json:"kind"`
	Lines  []entity.LineItem `json:"lines"`
	Totals inventory.Totals  `json:"totals"`
}

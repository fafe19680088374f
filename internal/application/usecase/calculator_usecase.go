package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
)

// CalculatorUseCase vista previa de las columnas calculadas de un formulario mientras se llena.
type CalculatorUseCase struct{}

// NewCalculatorUseCase construye el caso de uso.
func NewCalculatorUseCase() *CalculatorUseCase { return &CalculatorUseCase{} }

// Compute convierte los campos de texto (vacío o ilegible = 0) y recalcula líneas y pie
// con las columnas del formulario de kind.
func (uc *CalculatorUseCase) Compute(in dto.CalculatorRequest) (*dto.CalculatorResponse, error) {
	kind := entity.DocKind(strings.TrimSpace(in.Kind))
	if !knownKind(kind) {
		return nil, fmt.Errorf("%w: formulario %q", domain.ErrInvalidInput, in.Kind)
	}
	lines := make([]entity.LineItem, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.LineItem{
			Name:          strings.TrimSpace(l.Name),
			Quantity:      inventory.ParseAmount(l.Quantity),
			Rate:          inventory.ParseAmount(l.Rate),
			VATAmount:     inventory.ParseAmount(l.VATAmount),
			TaxPercent:    inventory.ParseAmount(l.TaxPercent),
			OtherExpenses: inventory.ParseAmount(l.OtherExpenses),
		})
	}
	lines = inventory.ComputeLines(lines, inventory.SpecFor(kind))
	return &dto.CalculatorResponse{
		Kind:   string(kind),
		Lines:  lines,
		Totals: inventory.Footer(lines),
	}, nil
}

func knownKind(k entity.DocKind) bool {
	for _, x := range entity.Kinds {
		if x == k {
			return true
		}
	}
	return false
}

package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
	"github.com/jhoicas/Swasthya-api/internal/domain"
)

func TestCalculator_Compute(t *testing.T) {
	uc := usecase.NewCalculatorUseCase()

	out, err := uc.Compute(dto.CalculatorRequest{
		Kind: "stock_entry",
		Lines: []dto.CalculatorLine{
			{Name: "Gloves", Quantity: "1,000", Rate: "2.5", VATAmount: "325", OtherExpenses: "75"},
			{Name: "Mask", Quantity: "abc", Rate: "10"},
			{Name: "Cotton", Quantity: "१०", Rate: "३"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 3)
	assert.Equal(t, "2500.00", out.Lines[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "2825.00", out.Lines[0].GrandTotal.StringFixed(2))
	assert.Equal(t, "2900.00", out.Lines[0].FinalTotal.StringFixed(2))
	assert.True(t, out.Lines[1].TotalAmount.IsZero(), "texto no numérico vale cero")
	assert.Equal(t, "30.00", out.Lines[2].TotalAmount.StringFixed(2))
	assert.Equal(t, "2930.00", out.Totals.FinalTotal.StringFixed(2))
}

func TestCalculator_PorcentajeDeImpuesto(t *testing.T) {
	out, err := usecase.NewCalculatorUseCase().Compute(dto.CalculatorRequest{
		Kind:  "purchase_order",
		Lines: []dto.CalculatorLine{{Quantity: "10", Rate: "100", TaxPercent: "13", VATAmount: "999"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1130.00", out.Totals.GrandTotal.StringFixed(2))
}

func TestCalculator_FormularioDesconocido(t *testing.T) {
	_, err := usecase.NewCalculatorUseCase().Compute(dto.CalculatorRequest{Kind: "invoice"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

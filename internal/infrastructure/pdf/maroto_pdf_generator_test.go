package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
	"github.com/jhoicas/Swasthya-api/internal/domain/ledger"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0.00",
		"999.5":   "999.50",
		"25000":   "25,000.00",
		"1000000": "1,000,000.00",
		"-1234.5": "-1,234.50",
		"12.345":  "12.35",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestLineColumns_OcupanLaGrilla(t *testing.T) {
	for _, kind := range []entity.DocKind{entity.KindDemandForm, entity.KindPurchaseOrder, entity.KindDakhila} {
		sum := 0
		for _, c := range lineColumns(inventory.SpecFor(kind)) {
			sum += c.size
		}
		assert.Equal(t, 12, sum, kind)
	}
}

func TestDocumentPDF(t *testing.T) {
	doc := &entity.StockEntryRequest{
		Header:     entity.Header{ID: "s1", FiscalYear: "2081/082", Number: 3, Date: "2081/05/01", Status: entity.StatusApproved},
		VendorName: "Nepal Pharma",
		Items: inventory.ComputeLines([]entity.LineItem{
			{Name: "Oximeter", Unit: "pcs", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(150), VATAmount: decimal.NewFromInt(39)},
		}, inventory.SpecFor(entity.KindStockEntry)),
	}
	b, err := NewMarotoPDFGenerator().DocumentPDF(context.Background(), reports.ViewOf("Health Office", doc))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestLedgerPDFs(t *testing.T) {
	g := NewMarotoPDFGenerator()
	one := decimal.NewFromInt(1)

	b, err := g.JinshiPDF(context.Background(), "Health Office", &dto.JinshiLedgerResponse{
		Item: "Mask", FiscalYear: "2081/082",
		Rows: []ledger.Row{{Date: "2081/04/01", Kind: ledger.TxIncome, DocNumber: 1, Quantity: one, Rate: one, Amount: one, BalQty: one, BalRate: one, BalTotal: one}},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))

	b, err = g.CustodyPDF(context.Background(), "Health Office", &dto.CustodyLedgerResponse{
		Person: "Ram", Rows: []ledger.CustodyRow{{Date: "2081/04/01", Name: "Chair", IssuedQty: one, Outstanding: one}},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}

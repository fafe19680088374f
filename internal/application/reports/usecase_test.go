package reports_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

type memDocs struct {
	recs []*repository.DocumentRecord
}

func (m *memDocs) add(t *testing.T, doc entity.Document) {
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	h := doc.Head()
	m.recs = append(m.recs, &repository.DocumentRecord{
		ID: h.ID, Kind: doc.Kind(), FiscalYear: h.FiscalYear, Number: h.Number, Date: h.Date,
		Status: h.Status, Party: doc.Party(), Version: 1, Payload: b,
	})
}

func (m *memDocs) NextNumber(context.Context, entity.DocKind, string) (int, error) { return 0, nil }
func (m *memDocs) Insert(context.Context, *repository.DocumentRecord) error        { return nil }
func (m *memDocs) Get(context.Context, entity.DocKind, string) (*repository.DocumentRecord, error) {
	return nil, nil
}
func (m *memDocs) GetForUpdate(context.Context, entity.DocKind, string) (*repository.DocumentRecord, error) {
	return nil, nil
}
func (m *memDocs) Update(context.Context, *repository.DocumentRecord, int) error { return nil }
func (m *memDocs) List(_ context.Context, f repository.DocumentFilter) ([]*repository.DocumentRecord, error) {
	var out []*repository.DocumentRecord
	for _, r := range m.recs {
		if r.Kind != f.Kind || (f.FiscalYear != "" && r.FiscalYear != f.FiscalYear) || (f.Status != "" && r.Status != f.Status) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type memItems struct {
	repository.ItemRepository
	items []*entity.InventoryItem
}

func (m memItems) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (m memItems) List(context.Context, repository.ItemFilter) ([]*entity.InventoryItem, error) {
	return m.items, nil
}

type fakeOut struct {
	jinshi  *dto.JinshiLedgerResponse
	custody *dto.CustodyLedgerResponse
	view    reports.DocumentView
}

func (f *fakeOut) DocumentPDF(_ context.Context, v reports.DocumentView) ([]byte, error) {
	f.view = v
	return []byte("%PDF"), nil
}
func (f *fakeOut) JinshiPDF(_ context.Context, _ string, l *dto.JinshiLedgerResponse) ([]byte, error) {
	f.jinshi = l
	return []byte("%PDF"), nil
}
func (f *fakeOut) CustodyPDF(_ context.Context, _ string, l *dto.CustodyLedgerResponse) ([]byte, error) {
	f.custody = l
	return []byte("%PDF"), nil
}
func (f *fakeOut) JinshiXLSX(_ string, l *dto.JinshiLedgerResponse) ([]byte, error) {
	f.jinshi = l
	return []byte("PK"), nil
}
func (f *fakeOut) CustodyXLSX(_ string, l *dto.CustodyLedgerResponse) ([]byte, error) {
	f.custody = l
	return []byte("PK"), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seed(t *testing.T) (*memDocs, memItems) {
	docs := &memDocs{}
	docs.add(t, &entity.DakhilaPratibedan{
		Header: entity.Header{ID: "d1", FiscalYear: "2081/082", Number: 1, Date: "2081/05/01", Status: entity.StatusGenerated},
		Source: entity.SourcePurchase, VendorName: "Nepal Pharma",
		Items: []entity.LineItem{
			{Name: "Paracetamol", Unit: "strip", Quantity: dec("100"), Rate: dec("2.5")},
			{Name: "Chair", AssetCode: "CH-1", ItemType: entity.ItemNonExpendable, Quantity: dec("2"), Rate: dec("1500")},
		},
	})
	docs.add(t, &entity.IssueReport{
		Header:    entity.Header{ID: "i1", FiscalYear: "2081/082", Number: 1, Date: "2081/06/01", Status: entity.StatusIssued},
		Recipient: "Ram",
		Items: []entity.LineItem{
			{Name: "Paracetamol", Quantity: dec("40"), Rate: dec("2.5")},
			{Name: "Chair", AssetCode: "CH-1", Quantity: dec("2"), Rate: dec("1500")},
		},
	})
	docs.add(t, &entity.ReturnEntry{
		Header:     entity.Header{ID: "r1", FiscalYear: "2081/082", Number: 1, Date: "2081/07/01", Status: entity.StatusApproved},
		ReturnedBy: "ram",
		Items:      []entity.LineItem{{Name: "Chair", AssetCode: "CH-1", Quantity: dec("1"), Rate: dec("1500")}},
	})
	items := memItems{items: []*entity.InventoryItem{
		{ID: "p", Name: "Paracetamol", Code: "MED-01", Unit: "strip", Type: entity.ItemExpendable},
		{ID: "c", Name: "Chair", AssetCode: "CH-1", Type: entity.ItemNonExpendable},
	}}
	return docs, items
}

func TestJinshi(t *testing.T) {
	docs, items := seed(t)
	out := &fakeOut{}
	uc := reports.NewUseCase(docs, items, out, out, "Health Office", "2081/82")
	ctx := context.Background()

	l, err := uc.Jinshi(ctx, reports.JinshiQuery{ItemID: "p"})
	require.NoError(t, err)
	assert.Equal(t, "2081/082", l.FiscalYear)
	assert.Equal(t, "strip", l.Unit)
	assert.Equal(t, "MED-01", l.Code)
	require.Len(t, l.Rows, 2)
	assert.True(t, l.Summary.ClosingQty.Equal(dec("60")))
	assert.Equal(t, "150.00", l.Summary.ClosingValue.StringFixed(2))

	_, err = uc.Jinshi(ctx, reports.JinshiQuery{Item: "paracetamol", FiscalYear: "2080/081"})
	require.NoError(t, err)

	_, err = uc.Jinshi(ctx, reports.JinshiQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Jinshi(ctx, reports.JinshiQuery{Item: "x", FiscalYear: "2081/090"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Jinshi(ctx, reports.JinshiQuery{ItemID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	b, name, err := uc.JinshiXLSX(ctx, reports.JinshiQuery{Item: "Paracetamol"})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), b)
	assert.Equal(t, "jinshi_khata_paracetamol_2081-082.xlsx", name)
	assert.Len(t, out.jinshi.Rows, 2)
}

// Dos entradas del mismo día salen en el orden de su numeración aunque el almacén las liste al revés.
func TestJinshi_MismaFechaPorNumero(t *testing.T) {
	docs := &memDocs{}
	for _, n := range []int{2, 1} {
		docs.add(t, &entity.DakhilaPratibedan{
			Header: entity.Header{ID: fmt.Sprintf("d%d", n), FiscalYear: "2081/082", Number: n, Date: "2081/05/01", Status: entity.StatusGenerated},
			Source: entity.SourcePurchase,
			Items:  []entity.LineItem{{Name: "Gauze", Quantity: dec(fmt.Sprint(n * 10)), Rate: dec("1")}},
		})
	}
	out := &fakeOut{}
	uc := reports.NewUseCase(docs, memItems{}, out, out, "Health Office", "2081/082")

	l, err := uc.Jinshi(context.Background(), reports.JinshiQuery{Item: "Gauze"})
	require.NoError(t, err)
	require.Len(t, l.Rows, 2)
	assert.Equal(t, 1, l.Rows[0].DocNumber)
	assert.Equal(t, 2, l.Rows[1].DocNumber)
	assert.True(t, l.Rows[0].BalQty.Equal(dec("10")))
}

func TestCustody(t *testing.T) {
	docs, items := seed(t)
	out := &fakeOut{}
	uc := reports.NewUseCase(docs, items, out, out, "Health Office", "2081/082")

	l, err := uc.Custody(context.Background(), " Ram ")
	require.NoError(t, err)
	require.Len(t, l.Rows, 1, "solo los bienes durables")
	assert.True(t, l.Rows[0].Outstanding.Equal(dec("1")))
	assert.False(t, l.Cleared)

	_, name, err := uc.CustodyPDF(context.Background(), "Ram")
	require.NoError(t, err)
	assert.Equal(t, "sahayak_jinshi_khata_ram.pdf", name)

	_, err = uc.Custody(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentPDF_Vista(t *testing.T) {
	out := &fakeOut{}
	uc := reports.NewUseCase(&memDocs{}, memItems{}, out, out, "Health Office", "2081/082")

	doc := &entity.IssueReport{
		Header: entity.Header{ID: "i1", FiscalYear: "2081/082", Number: 7, Date: "2081/06/01", Status: entity.StatusIssued,
			History: []entity.StatusChange{{From: "Pending", To: "Issued", Action: "issue", ByName: "Hari"}}},
		Recipient: "Ram",
		Items:     []entity.LineItem{{Name: "Mask", Quantity: dec("2"), Rate: dec("5"), TotalAmount: dec("10"), GrandTotal: dec("10"), FinalTotal: dec("10")}},
	}
	_, name, err := uc.DocumentPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "issue_report_7_2081-082.pdf", name)
	assert.Equal(t, "Nikasha Pratibedan", out.view.Title)
	assert.Equal(t, "Health Office", out.view.Office)
	assert.Contains(t, out.view.Fields, reports.Field{Label: "Recipient", Value: "Ram"})
	require.Len(t, out.view.Signatures, 1)
	assert.Equal(t, "Hari", out.view.Signatures[0].Name)
	assert.Equal(t, "10.00", out.view.Totals.GrandTotal.StringFixed(2))
}

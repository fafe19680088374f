package documents_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/internal/domain/workflow"
)

const fy = "2081/082"

var (
	keeper   = documents.Actor{UserID: "u-keeper", Name: "Hari", Role: entity.RoleStorekeeper}
	approver = documents.Actor{UserID: "u-chief", Name: "Sita", Role: entity.RoleApproval}
	account  = documents.Actor{UserID: "u-acc", Name: "Gita", Role: entity.RoleAccount}
	staff    = documents.Actor{UserID: "u-staff", Name: "Ram", Role: entity.RoleStaff}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(name, qty, rate string) entity.LineItem {
	return entity.LineItem{Name: name, Quantity: dec(qty), Rate: dec(rate)}
}

func setup() (*memStore, *documents.Registry) {
	s := newMemStore()
	return s, documents.NewRegistry(memDocs{s}, s, fy, nil)
}

func TestCreate_NumeraPorTipoYAnio(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	d1, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2081-05-01"}, RequestedBy: " Ram ", Items: []entity.LineItem{line("Mask", "2", "0")},
	})
	require.NoError(t, err)
	d2, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/02"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, d1.Number)
	assert.Equal(t, 2, d2.Number)
	assert.Equal(t, fy, d1.FiscalYear)
	assert.Equal(t, "2081/05/01", d1.Date)
	assert.Equal(t, "Ram", d1.RequestedBy)
	assert.Equal(t, entity.StatusPending, d1.Status)
	assert.Equal(t, 1, d1.Version)
	assert.NotEmpty(t, d1.ID)
}

func TestCreate_Validaciones(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	_, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/01"}, RequestedBy: "Ram",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/01"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "0", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "ayer"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha ilegible")

	_, err = reg.IssueReports.Create(ctx, staff, &entity.IssueReport{
		Header: entity.Header{Date: "2081/05/01"}, Recipient: "Ram", Items: []entity.LineItem{line("Mask", "1", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo el almacén emite salidas")

	_, err = reg.Disposals.Create(ctx, keeper, &entity.Disposal{
		Header: entity.Header{Date: "2081/05/01"}, Method: "regalar", Items: []entity.LineItem{line("Chair", "1", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FechaFueraDelAnioFiscal(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	_, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2082/04/01"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrOutsideFiscalYear)

	// Ashadh de 2082 aún pertenece a 2081/082.
	d, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2082/03/30"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, fy, d.FiscalYear)

	// El año explícito del documento manda sobre el de la oficina.
	d, err = reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2080/10/01", FiscalYear: "2080/81"}, RequestedBy: "Ram",
		Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "2080/081", d.FiscalYear)
	assert.Equal(t, 1, d.Number)
}

func TestTransition_OrdenDeCompraCompleta(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	po, err := reg.PurchaseOrders.Create(ctx, keeper, &entity.PurchaseOrder{
		Header: entity.Header{Date: "2081/06/01"}, VendorName: "Nepal Pharma",
		Items: []entity.LineItem{{Name: "Gloves", Quantity: dec("10"), Rate: dec("100"), TaxPercent: dec("13")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1130.00", reg.PurchaseOrders.Totals(po).GrandTotal.StringFixed(2))
	assert.Equal(t, []string{"reject", "submit"}, reg.PurchaseOrders.AllowedActions(po, entity.RoleStorekeeper))

	po, err = reg.PurchaseOrders.Transition(ctx, keeper, po.ID, workflow.ActionSubmit, 1, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingAccount, po.Status)

	_, err = reg.PurchaseOrders.Transition(ctx, approver, po.ID, workflow.ActionApprove, 2, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se salta la verificación de cuentas")

	_, err = reg.PurchaseOrders.Transition(ctx, keeper, po.ID, workflow.ActionVerify, 2, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	po, err = reg.PurchaseOrders.Transition(ctx, account, po.ID, workflow.ActionVerify, 2, "bien")
	require.NoError(t, err)
	po, err = reg.PurchaseOrders.Transition(ctx, approver, po.ID, workflow.ActionApprove, 3, "")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusGenerated, po.Status)
	assert.Equal(t, 4, po.Version)
	require.Len(t, po.History, 3)
	assert.Equal(t, "bien", po.History[1].Remarks)
	assert.Equal(t, "Gita", po.History[1].ByName)

	got, err := reg.PurchaseOrders.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusGenerated, got.Status)
	assert.Len(t, got.History, 3)
}

func TestTransition_VersionVieja(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	d, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/01"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	require.NoError(t, err)

	_, err = reg.DemandForms.Transition(ctx, keeper, d.ID, workflow.ActionVerify, 1, "")
	require.NoError(t, err)
	_, err = reg.DemandForms.Transition(ctx, keeper, d.ID, workflow.ActionReject, 1, "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = reg.DemandForms.Transition(ctx, keeper, "no-existe", workflow.ActionVerify, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_AprobarEntradaGeneraDakhila(t *testing.T) {
	s, reg := setup()
	ctx := context.Background()
	s.addItem(entity.InventoryItem{ID: "it-1", Name: "Paracetamol", Type: entity.ItemExpendable,
		Quantity: dec("100"), Rate: dec("2"), FiscalYear: fy})

	se, err := reg.StockEntries.Create(ctx, keeper, &entity.StockEntryRequest{
		Header: entity.Header{Date: "2081/05/10"}, VendorName: "Nepal Pharma", InvoiceNo: "F-9",
		Items: []entity.LineItem{
			{Name: "paracetamol", Quantity: dec("100"), Rate: dec("3"), VATAmount: dec("39")},
			{Name: "Oxímetro", AssetCode: "OX-1", Quantity: dec("1"), Rate: dec("2500")},
		},
	})
	require.NoError(t, err)

	se, err = reg.StockEntries.Transition(ctx, approver, se.ID, workflow.ActionApprove, 1, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, se.Status)
	require.NotEmpty(t, se.DakhilaRef)

	para := s.items["it-1"]
	assert.True(t, para.Quantity.Equal(dec("200")))
	assert.True(t, para.Rate.Equal(dec("2.5")))

	// el oxímetro no existía: se da de alta como durable
	require.Len(t, s.items, 2)
	var ox entity.InventoryItem
	for id, it := range s.items {
		if id != "it-1" {
			ox = it
		}
	}
	assert.Equal(t, entity.ItemNonExpendable, ox.Type)
	assert.True(t, ox.Quantity.Equal(dec("1")))
	assert.Equal(t, ox.ID, se.Items[1].ItemID)

	dk, err := reg.Dakhila.Get(ctx, se.DakhilaRef)
	require.NoError(t, err)
	assert.Equal(t, entity.SourcePurchase, dk.Source)
	assert.Equal(t, se.ID, dk.RequestRef)
	assert.Equal(t, entity.StatusGenerated, dk.Status)
	assert.Equal(t, 1, dk.Number)
	assert.Equal(t, "339.00", dk.Items[0].FinalTotal.StringFixed(2))

	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.MovementTypeIN, s.movements[0].Type)
	assert.Equal(t, se.ID, s.movements[0].DocumentID)

	// la segunda aprobación con la versión vieja no vuelve a sumar
	_, err = reg.StockEntries.Transition(ctx, approver, se.ID, workflow.ActionApprove, 1, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, s.items["it-1"].Quantity.Equal(dec("200")))
}

func TestTransition_SalidaSinStockNoCambiaNada(t *testing.T) {
	s, reg := setup()
	ctx := context.Background()
	s.addItem(entity.InventoryItem{ID: "m", Name: "Mask", Type: entity.ItemExpendable, Quantity: dec("10"), Rate: dec("5")})
	s.addItem(entity.InventoryItem{ID: "g", Name: "Gloves", Type: entity.ItemExpendable, Quantity: dec("1"), Rate: dec("20")})

	is, err := reg.IssueReports.Create(ctx, keeper, &entity.IssueReport{
		Header: entity.Header{Date: "2081/05/10"}, Recipient: "Ram",
		Items:  []entity.LineItem{line("Mask", "4", "0"), line("Gloves", "2", "0")},
	})
	require.NoError(t, err)

	_, err = reg.IssueReports.Transition(ctx, keeper, is.ID, workflow.ActionIssue, 1, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.items["m"].Quantity.Equal(dec("10")), "rollback de la primera línea")
	assert.Empty(t, s.movements)

	got, err := reg.IssueReports.Get(ctx, is.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Equal(t, 1, got.Version)
}

func TestTransition_SalidaYDevolucion(t *testing.T) {
	s, reg := setup()
	ctx := context.Background()
	s.addItem(entity.InventoryItem{ID: "c", Name: "Chair", AssetCode: "CH-1", Type: entity.ItemNonExpendable,
		Quantity: dec("3"), Rate: dec("1500")})

	is, err := reg.IssueReports.Create(ctx, keeper, &entity.IssueReport{
		Header: entity.Header{Date: "2081/05/10"}, Recipient: "Ram",
		Items:  []entity.LineItem{{Name: "Chair", AssetCode: "CH-1", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	is, err = reg.IssueReports.Transition(ctx, keeper, is.ID, workflow.ActionIssue, 1, "")
	require.NoError(t, err)

	assert.True(t, s.items["c"].Quantity.Equal(dec("1")))
	assert.True(t, is.Items[0].Rate.Equal(dec("1500")), "la salida toma la tarifa del bien")
	assert.Equal(t, "3000.00", is.Items[0].TotalAmount.StringFixed(2))
	assert.Equal(t, entity.ItemNonExpendable, is.Items[0].ItemType)

	r, err := reg.Returns.Create(ctx, staff, &entity.ReturnEntry{
		Header: entity.Header{Date: "2081/06/01"}, ReturnedBy: "Ram",
		Items:  []entity.LineItem{{Name: "chair", AssetCode: "CH-1", Quantity: dec("2"), Rate: dec("1500")}},
	})
	require.NoError(t, err)
	r, err = reg.Returns.Transition(ctx, keeper, r.ID, workflow.ActionVerify, 1, "")
	require.NoError(t, err)
	assert.True(t, s.items["c"].Quantity.Equal(dec("1")), "verificar no mueve existencias")

	_, err = reg.Returns.Transition(ctx, approver, r.ID, workflow.ActionApprove, 2, "")
	require.NoError(t, err)
	assert.True(t, s.items["c"].Quantity.Equal(dec("3")))
}

func TestTransition_DevolucionDeBienDesconocido(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	r, err := reg.Returns.Create(ctx, staff, &entity.ReturnEntry{
		Header: entity.Header{Date: "2081/06/01"}, ReturnedBy: "Ram", Items: []entity.LineItem{line("Desk", "1", "1")},
	})
	require.NoError(t, err)
	_, err = reg.Returns.Transition(ctx, keeper, r.ID, workflow.ActionVerify, 1, "")
	require.NoError(t, err)
	_, err = reg.Returns.Transition(ctx, approver, r.ID, workflow.ActionApprove, 2, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_BajaDescuenta(t *testing.T) {
	s, reg := setup()
	ctx := context.Background()
	s.addItem(entity.InventoryItem{ID: "b", Name: "Bed", Type: entity.ItemNonExpendable, Quantity: dec("2"), Rate: dec("8000")})

	d, err := reg.Disposals.Create(ctx, keeper, &entity.Disposal{
		Header: entity.Header{Date: "2081/09/01"}, Method: " Auction ", Items: []entity.LineItem{line("Bed", "1", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DisposalAuction, d.Method)

	_, err = reg.Disposals.Transition(ctx, approver, d.ID, workflow.ActionApprove, 1, "")
	require.NoError(t, err)
	assert.True(t, s.items["b"].Quantity.Equal(dec("1")))
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, s.movements[0].Type)
	assert.True(t, s.movements[0].BalanceAfter.Equal(dec("1")))
}

func TestDakhila_SaldoInicial(t *testing.T) {
	s, reg := setup()
	ctx := context.Background()

	d, err := reg.Dakhila.Create(ctx, keeper, &entity.DakhilaPratibedan{
		Header: entity.Header{Date: "2081/04/01"}, Items: []entity.LineItem{line("Gloves", "30", "12.75")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceOpening, d.Source)
	assert.Equal(t, entity.StatusGenerated, d.Status)
	assert.Equal(t, entity.SourceOpening, d.Items[0].Source)
	require.Len(t, s.items, 1)
	for _, it := range s.items {
		assert.True(t, it.Quantity.Equal(dec("30")))
		assert.True(t, it.Rate.Equal(dec("12.75")))
	}

	_, err = reg.Dakhila.Create(ctx, keeper, &entity.DakhilaPratibedan{
		Header: entity.Header{Date: "2081/04/01"}, Source: entity.SourcePurchase,
		Items:  []entity.LineItem{line("Gloves", "1", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = reg.Dakhila.Transition(ctx, approver, d.ID, workflow.ActionApprove, 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_SoloPendiente(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	d, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/01"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	require.NoError(t, err)

	edited, err := reg.DemandForms.Update(ctx, staff, d.ID, 1, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/03", Number: 99}, RequestedBy: "Ram", Purpose: "OPD",
		Items: []entity.LineItem{line("Mask", "5", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, edited.Version)
	assert.Equal(t, d.Number, edited.Number)
	assert.Equal(t, "OPD", edited.Purpose)

	_, err = reg.DemandForms.Update(ctx, staff, d.ID, 1, edited)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = reg.DemandForms.Transition(ctx, keeper, d.ID, workflow.ActionVerify, 2, "")
	require.NoError(t, err)
	_, err = reg.DemandForms.Update(ctx, staff, d.ID, 3, edited)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Un pendiente de un año fiscal anterior se edita dentro de su propio año, no del vigente.
func TestUpdate_DocumentoDeAnioAnterior(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()

	d, err := reg.DemandForms.Create(ctx, staff, &entity.DemandForm{
		Header: entity.Header{FiscalYear: "2080/081", Date: "2080/05/01"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "1", "0")},
	})
	require.NoError(t, err)

	edited, err := reg.DemandForms.Update(ctx, staff, d.ID, 1, &entity.DemandForm{
		Header: entity.Header{Date: "2080/05/03"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "2", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "2080/081", edited.FiscalYear)
	assert.Equal(t, "2080/05/03", edited.Date)

	// la fecha sigue atada al año del documento
	_, err = reg.DemandForms.Update(ctx, staff, d.ID, 2, &entity.DemandForm{
		Header: entity.Header{Date: "2081/05/03"}, RequestedBy: "Ram", Items: []entity.LineItem{line("Mask", "2", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrOutsideFiscalYear)
}

func TestList_FiltraPorEstado(t *testing.T) {
	_, reg := setup()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := reg.Returns.Create(ctx, staff, &entity.ReturnEntry{
			Header: entity.Header{Date: "2081/06/01"}, ReturnedBy: "Ram", Items: []entity.LineItem{line("Desk", "1", "1")},
		})
		require.NoError(t, err)
	}
	all, err := reg.Returns.List(ctx, repository.DocumentFilter{FiscalYear: "2081/82"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].Number)

	_, err = reg.Returns.Transition(ctx, keeper, all[0].ID, workflow.ActionReject, 1, "")
	require.NoError(t, err)
	rejected, err := reg.Returns.List(ctx, repository.DocumentFilter{Status: entity.StatusRejected})
	require.NoError(t, err)
	assert.Len(t, rejected, 1)
}

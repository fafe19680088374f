package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/internal/domain/workflow"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
)

var storeRoles = []string{entity.RoleStorekeeper, entity.RoleAdmin, entity.RoleSuperAdmin}

// Registry casos de uso de cada tipo de documento.
type Registry struct {
	DemandForms    *UseCase[*entity.DemandForm]
	PurchaseOrders *UseCase[*entity.PurchaseOrder]
	IssueReports   *UseCase[*entity.IssueReport]
	StockEntries   *UseCase[*entity.StockEntryRequest]
	Dakhila        *UseCase[*entity.DakhilaPratibedan]
	Returns        *UseCase[*entity.ReturnEntry]
	Maintenance    *UseCase[*entity.MaintenanceOrder]
	Disposals      *UseCase[*entity.Disposal]
}

// NewRegistry arma los casos de uso con sus reglas y efectos.
func NewRegistry(docs repository.DocumentStore, tx TxRunner, fiscalYear string, log *logger.Logger) *Registry {
	return &Registry{
		DemandForms: NewUseCase(Config[*entity.DemandForm]{
			Kind:     entity.KindDemandForm,
			New:      func() *entity.DemandForm { return &entity.DemandForm{} },
			Editable: true,
			Validate: func(d *entity.DemandForm) error {
				return required(&d.RequestedBy, "requested_by")
			},
		}, docs, tx, fiscalYear, log),

		PurchaseOrders: NewUseCase(Config[*entity.PurchaseOrder]{
			Kind:        entity.KindPurchaseOrder,
			New:         func() *entity.PurchaseOrder { return &entity.PurchaseOrder{} },
			CreateRoles: storeRoles,
			Editable:    true,
			Validate: func(p *entity.PurchaseOrder) error {
				return required(&p.VendorName, "vendor_name")
			},
		}, docs, tx, fiscalYear, log),

		IssueReports: NewUseCase(Config[*entity.IssueReport]{
			Kind:        entity.KindIssueReport,
			New:         func() *entity.IssueReport { return &entity.IssueReport{} },
			CreateRoles: storeRoles,
			Editable:    true,
			Validate: func(r *entity.IssueReport) error {
				return required(&r.Recipient, "recipient")
			},
			OnTransition: map[workflow.Action]Hook[*entity.IssueReport]{
				workflow.ActionIssue: func(ctx context.Context, tx *Tx, r *entity.IssueReport) error {
					return release(ctx, tx, r)
				},
			},
		}, docs, tx, fiscalYear, log),

		StockEntries: NewUseCase(Config[*entity.StockEntryRequest]{
			Kind:        entity.KindStockEntry,
			New:         func() *entity.StockEntryRequest { return &entity.StockEntryRequest{} },
			CreateRoles: storeRoles,
			Editable:    true,
			Validate: func(s *entity.StockEntryRequest) error {
				return required(&s.VendorName, "vendor_name")
			},
			OnTransition: map[workflow.Action]Hook[*entity.StockEntryRequest]{
				workflow.ActionApprove: approveStockEntry,
			},
		}, docs, tx, fiscalYear, log),

		Dakhila: NewUseCase(Config[*entity.DakhilaPratibedan]{
			Kind:        entity.KindDakhila,
			New:         func() *entity.DakhilaPratibedan { return &entity.DakhilaPratibedan{} },
			CreateRoles: storeRoles,
			// Por API solo se cargan saldos iniciales; el resto los genera la aprobación de entradas.
			Validate: func(d *entity.DakhilaPratibedan) error {
				if d.Source != "" && d.Source != entity.SourceOpening {
					return fmt.Errorf("%w: solo se crean dakhila de saldo inicial", domain.ErrInvalidInput)
				}
				d.Source = entity.SourceOpening
				d.RequestRef = ""
				lines := d.Items
				for i := range lines {
					lines[i].Source = entity.SourceOpening
				}
				return nil
			},
			OnCreate: func(ctx context.Context, tx *Tx, d *entity.DakhilaPratibedan) error {
				return receive(ctx, tx, d, d.StoreID, true)
			},
		}, docs, tx, fiscalYear, log),

		Returns: NewUseCase(Config[*entity.ReturnEntry]{
			Kind:     entity.KindReturn,
			New:      func() *entity.ReturnEntry { return &entity.ReturnEntry{} },
			Editable: true,
			Validate: func(r *entity.ReturnEntry) error {
				return required(&r.ReturnedBy, "returned_by")
			},
			OnTransition: map[workflow.Action]Hook[*entity.ReturnEntry]{
				workflow.ActionApprove: func(ctx context.Context, tx *Tx, r *entity.ReturnEntry) error {
					return receive(ctx, tx, r, "", false)
				},
			},
		}, docs, tx, fiscalYear, log),

		Maintenance: NewUseCase(Config[*entity.MaintenanceOrder]{
			Kind:         entity.KindMaintenance,
			New:          func() *entity.MaintenanceOrder { return &entity.MaintenanceOrder{} },
			AllowNoLines: true,
			Editable:     true,
			Validate: func(m *entity.MaintenanceOrder) error {
				if m.EstimatedCost.IsNegative() {
					return fmt.Errorf("%w: estimated_cost negativo", domain.ErrInvalidInput)
				}
				return required(&m.AssetName, "asset_name")
			},
		}, docs, tx, fiscalYear, log),

		Disposals: NewUseCase(Config[*entity.Disposal]{
			Kind:        entity.KindDisposal,
			New:         func() *entity.Disposal { return &entity.Disposal{} },
			CreateRoles: storeRoles,
			Editable:    true,
			Validate: func(d *entity.Disposal) error {
				d.Method = strings.ToLower(strings.TrimSpace(d.Method))
				switch d.Method {
				case entity.DisposalAuction, entity.DisposalDestroy, entity.DisposalTransfer:
					return nil
				}
				return fmt.Errorf("%w: método de baja %q", domain.ErrInvalidInput, d.Method)
			},
			OnTransition: map[workflow.Action]Hook[*entity.Disposal]{
				workflow.ActionApprove: func(ctx context.Context, tx *Tx, d *entity.Disposal) error {
					return release(ctx, tx, d)
				},
			},
		}, docs, tx, fiscalYear, log),
	}
}

// approveStockEntry ingresa los bienes y genera el dakhila finalizado que alimenta el Jinshi Khata.
func approveStockEntry(ctx context.Context, tx *Tx, s *entity.StockEntryRequest) error {
	if err := receive(ctx, tx, s, s.StoreID, true); err != nil {
		return err
	}
	lines := make([]entity.LineItem, len(s.Items))
	copy(lines, s.Items)
	for i := range lines {
		lines[i].Source = entity.SourcePurchase
	}
	d := &entity.DakhilaPratibedan{
		Header: entity.Header{
			ID:         uuid.New().String(),
			FiscalYear: s.FiscalYear,
			Date:       s.Date,
			Status:     workflow.InitialStatus(entity.KindDakhila),
			Version:    1,
			Remarks:    s.Remarks,
			CreatedBy:  tx.Actor.UserID,
			CreatedAt:  tx.Now,
			UpdatedAt:  tx.Now,
		},
		Source:     entity.SourcePurchase,
		VendorName: s.VendorName,
		InvoiceNo:  s.InvoiceNo,
		RequestRef: s.ID,
		StoreID:    s.StoreID,
		Items:      inventory.ComputeLines(lines, inventory.SpecFor(entity.KindDakhila)),
	}
	if err := insert(ctx, tx.Docs, d); err != nil {
		return err
	}
	s.DakhilaRef = d.ID
	return nil
}

func required(field *string, name string) error {
	*field = strings.TrimSpace(*field)
	if *field == "" {
		return fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, name)
	}
	return nil
}

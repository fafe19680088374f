package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
)

// receive suma al almacén las líneas del documento con su tarifa ponderada. Si create es
// verdadero, los bienes que no existen se dan de alta; si no, una línea sin bien es un error.
// Completa ItemID e ItemType de cada línea.
func receive(ctx context.Context, tx *Tx, doc entity.Document, storeID string, create bool) error {
	h := doc.Head()
	lines := doc.Lines()
	for i := range lines {
		l := &lines[i]
		item, err := lockLineItem(ctx, tx, *l)
		if err != nil {
			return err
		}
		if item == nil {
			if !create {
				return fmt.Errorf("%w: el bien %q no está en el inventario", domain.ErrInvalidInput, l.Name)
			}
			item = newItemFromLine(*l, storeID, h.FiscalYear, tx)
			if err := tx.Items.Create(ctx, item); err != nil {
				return err
			}
		}
		rate := inventory.WeightedRate(item.Quantity, item.Rate, l.Quantity, l.Rate)
		qty := item.Quantity.Add(l.Quantity)
		if err := tx.Items.SetStock(ctx, item.ID, qty, rate); err != nil {
			return err
		}
		if err := tx.Movements.Create(ctx, movement(tx, doc, item, entity.MovementTypeIN, l.Quantity, l.Rate, qty)); err != nil {
			return err
		}
		l.ItemID = item.ID
		if l.ItemType == "" {
			l.ItemType = item.Type
		}
	}
	doc.SetLines(lines)
	return nil
}

// release descuenta del almacén las líneas del documento. Cualquier faltante anula toda la
// operación con domain.ErrInsufficientStock. Las líneas sin tarifa toman la del bien.
func release(ctx context.Context, tx *Tx, doc entity.Document) error {
	lines := doc.Lines()
	for i := range lines {
		l := &lines[i]
		item, err := lockLineItem(ctx, tx, *l)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: el bien %q no está en el inventario", domain.ErrInsufficientStock, l.Name)
		}
		if item.Quantity.LessThan(l.Quantity) {
			return fmt.Errorf("%w: %s disponible %s, solicitado %s",
				domain.ErrInsufficientStock, item.Name, item.Quantity.String(), l.Quantity.String())
		}
		if l.Rate.IsZero() {
			*l = inventory.ComputeLine(withRate(*l, item.Rate), inventory.SpecFor(doc.Kind()))
		}
		qty := item.Quantity.Sub(l.Quantity)
		if err := tx.Items.SetStock(ctx, item.ID, qty, item.Rate); err != nil {
			return err
		}
		if err := tx.Movements.Create(ctx, movement(tx, doc, item, entity.MovementTypeOUT, l.Quantity, l.Rate, qty)); err != nil {
			return err
		}
		l.ItemID = item.ID
		if l.ItemType == "" {
			l.ItemType = item.Type
		}
		if l.Unit == "" {
			l.Unit = item.Unit
		}
	}
	doc.SetLines(lines)
	return nil
}

// lockLineItem bloquea el bien de la línea: por ItemID si viene, si no por código y nombre.
func lockLineItem(ctx context.Context, tx *Tx, l entity.LineItem) (*entity.InventoryItem, error) {
	if l.ItemID != "" {
		item, err := tx.Items.GetForUpdate(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
	}
	return tx.Items.FindForUpdate(ctx, l.Name, l.MatchCode())
}

func newItemFromLine(l entity.LineItem, storeID, fiscalYear string, tx *Tx) *entity.InventoryItem {
	typ := l.ItemType
	if typ == "" {
		typ = entity.ItemExpendable
		if l.AssetCode != "" {
			typ = entity.ItemNonExpendable
		}
	}
	return &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(l.Name),
		Code:          l.Code,
		AssetCode:     l.AssetCode,
		Type:          typ,
		Unit:          l.Unit,
		Specification: l.Specification,
		Rate:          decimal.Zero,
		Quantity:      decimal.Zero,
		StoreID:       storeID,
		FiscalYear:    fiscalYear,
		ExpiryDate:    l.ExpiryDate,
		BatchNo:       l.BatchNo,
		CreatedAt:     tx.Now,
		UpdatedAt:     tx.Now,
	}
}

func movement(tx *Tx, doc entity.Document, item *entity.InventoryItem, typ string, qty, rate, balance decimal.Decimal) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		StoreID:      item.StoreID,
		DocumentKind: doc.Kind(),
		DocumentID:   doc.Head().ID,
		Type:         typ,
		Quantity:     qty,
		Rate:         rate,
		Total:        qty.Mul(rate),
		BalanceAfter: balance,
		Date:         tx.Now,
		CreatedBy:    tx.Actor.UserID,
	}
}

func withRate(l entity.LineItem, rate decimal.Decimal) entity.LineItem {
	l.Rate = rate
	return l
}

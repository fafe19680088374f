package repository

import (
	"context"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de existencias.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByDocument(ctx context.Context, documentID string) ([]*entity.InventoryMovement, error)
}

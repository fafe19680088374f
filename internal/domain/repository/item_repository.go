package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// ItemFilter filtros del listado de bienes. Campos vacíos no filtran; Limit 0 lista todo.
type ItemFilter struct {
	FiscalYear string
	Type       string
	StoreID    string
	Search     string
	Limit      int
	Offset     int
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, error)
	// GetForUpdate obtiene el bien y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// FindForUpdate busca por código de activo o clasificación y, si no hay, por nombre
	// (sin distinguir mayúsculas), bloqueando la fila encontrada. nil si no existe.
	FindForUpdate(ctx context.Context, name, code string) (*entity.InventoryItem, error)
	// SetStock fija cantidad y tarifa de una fila previamente bloqueada.
	SetStock(ctx context.Context, id string, quantity, rate decimal.Decimal) error
}

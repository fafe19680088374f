// Package documents implementa el ciclo de vida de los documentos del back-office: alta,
// edición mientras están pendientes, consulta y transiciones del flujo de aprobación con sus
// efectos sobre el inventario, todo dentro de una transacción.
package documents

import (
	"context"
	"time"

	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docs repository.DocumentStore,
		items repository.ItemRepository,
		movements repository.InventoryMovementRepository,
	) error) error
}

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// Tx repositorios y datos de la operación en curso; lo reciben los efectos de cada tipo.
type Tx struct {
	Docs      repository.DocumentStore
	Items     repository.ItemRepository
	Movements repository.InventoryMovementRepository
	Actor     Actor
	Now       time.Time
}

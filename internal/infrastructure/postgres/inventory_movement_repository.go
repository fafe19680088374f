package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, item_id, store_id, document_kind, document_id, type, quantity, rate, total,
	balance_after, date, created_by`

// Create persiste un movimiento de existencias.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, nullable(m.StoreID), string(m.DocumentKind), m.DocumentID, m.Type,
		m.Quantity, m.Rate, m.Total, m.BalanceAfter, m.Date, nullable(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un bien, del más reciente al más antiguo.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	w := whereBuilder{}
	w.add("item_id = $%d", itemID)
	query := `SELECT ` + movementColumns + ` FROM inventory_movements` + w.sql() + ` ORDER BY date DESC` + w.page(limit, offset)
	return r.list(ctx, query, w.args)
}

// ListByDocument lista los movimientos que generó un documento.
func (r *InventoryMovementRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE document_id = $1 ORDER BY date`
	return r.list(ctx, query, []any{documentID})
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args []any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var storeID, createdBy *string
	var kind string
	if err := row.Scan(
		&m.ID, &m.ItemID, &storeID, &kind, &m.DocumentID, &m.Type, &m.Quantity, &m.Rate, &m.Total,
		&m.BalanceAfter, &m.Date, &createdBy,
	); err != nil {
		return nil, err
	}
	m.DocumentKind = entity.DocKind(kind)
	m.StoreID, m.CreatedBy = deref(storeID), deref(createdBy)
	return &m, nil
}

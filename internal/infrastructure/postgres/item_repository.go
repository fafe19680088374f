package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para bienes. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, code, asset_code, type, unit, specification, rate, quantity,
	store_id, fiscal_year, expiry_date, batch_no, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var code, assetCode, unit, spec, storeID, fy, expiry, batch *string
	err := row.Scan(
		&it.ID, &it.Name, &code, &assetCode, &it.Type, &unit, &spec, &it.Rate, &it.Quantity,
		&storeID, &fy, &expiry, &batch, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Code, it.AssetCode, it.Unit, it.Specification = deref(code), deref(assetCode), deref(unit), deref(spec)
	it.StoreID, it.FiscalYear, it.ExpiryDate, it.BatchNo = deref(storeID), deref(fy), deref(expiry), deref(batch)
	return &it, nil
}

// Create persiste un nuevo bien.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullable(item.Code), nullable(item.AssetCode), item.Type,
		nullable(item.Unit), nullable(item.Specification), item.Rate, item.Quantity,
		nullable(item.StoreID), nullable(item.FiscalYear), nullable(item.ExpiryDate), nullable(item.BatchNo),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un bien por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el bien y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// FindForUpdate busca por código (activo o clasificación) y luego por nombre, y bloquea la fila.
func (r *ItemRepo) FindForUpdate(ctx context.Context, name, code string) (*entity.InventoryItem, error) {
	if code != "" {
		it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items
			WHERE asset_code = $1 OR code = $1
			ORDER BY (asset_code = $1) DESC NULLS LAST, created_at
			LIMIT 1 FOR UPDATE`, code))
		if err == nil {
			return it, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("find item by code: %w", err)
		}
	}
	if name == "" {
		return nil, nil
	}
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items
		WHERE lower(btrim(name)) = lower(btrim($1))
		ORDER BY created_at
		LIMIT 1 FOR UPDATE`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find item by name: %w", err)
	}
	return it, nil
}

// Update actualiza los datos descriptivos del bien. Cantidad y tarifa solo cambian con SetStock.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, code = $3, asset_code = $4, type = $5, unit = $6,
			specification = $7, store_id = $8, fiscal_year = $9, expiry_date = $10, batch_no = $11,
			updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullable(item.Code), nullable(item.AssetCode), item.Type, nullable(item.Unit),
		nullable(item.Specification), nullable(item.StoreID), nullable(item.FiscalYear),
		nullable(item.ExpiryDate), nullable(item.BatchNo), item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStock fija cantidad y tarifa promedio.
func (r *ItemRepo) SetStock(ctx context.Context, id string, quantity, rate decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, rate = $3, updated_at = now() WHERE id = $1`,
		id, quantity, rate)
	if err != nil {
		return fmt.Errorf("set item stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bienes con filtros opcionales ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var w whereBuilder
	if f.FiscalYear != "" {
		w.add("fiscal_year = $%d", f.FiscalYear)
	}
	if f.Type != "" {
		w.add("type = $%d", f.Type)
	}
	if f.StoreID != "" {
		w.add("store_id = $%d", f.StoreID)
	}
	if f.Search != "" {
		w.add("(name ILIKE '%%' || $%[1]d || '%%' OR code = $%[1]d OR asset_code = $%[1]d)", f.Search)
	}
	query := `SELECT ` + itemColumns + ` FROM inventory_items` + w.sql() + ` ORDER BY name, created_at` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

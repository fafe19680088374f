package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentRepo)(nil)

// DocumentRepo guarda todos los tipos de documento en la tabla documents: cabecera en
// columnas (para filtrar y numerar) y el documento completo en JSONB.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, kind, fiscal_year, number, date, status, party, version, created_by, payload,
	created_at, updated_at`

// NextNumber incrementa el contador del tipo y año fiscal. El UPSERT bloquea la fila del
// contador hasta el fin de la transacción, así dos altas simultáneas no repiten número.
func (r *DocumentRepo) NextNumber(ctx context.Context, kind entity.DocKind, fiscalYear string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_counters (kind, fiscal_year, last_number) VALUES ($1, $2, 1)
		ON CONFLICT (kind, fiscal_year)
		DO UPDATE SET last_number = document_counters.last_number + 1
		RETURNING last_number`, string(kind), fiscalYear).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return n, nil
}

// Insert persiste un documento nuevo.
func (r *DocumentRepo) Insert(ctx context.Context, rec *repository.DocumentRecord) error {
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, string(rec.Kind), rec.FiscalYear, rec.Number, rec.Date, rec.Status, nullable(rec.Party),
		rec.Version, nullable(rec.CreatedBy), rec.Payload, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Get obtiene un documento por tipo e ID.
func (r *DocumentRepo) Get(ctx context.Context, kind entity.DocKind, id string) (*repository.DocumentRecord, error) {
	rec, err := scanDocument(r.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE kind = $1 AND id = $2`, string(kind), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el documento y bloquea la fila (SELECT FOR UPDATE).
func (r *DocumentRepo) GetForUpdate(ctx context.Context, kind entity.DocKind, id string) (*repository.DocumentRecord, error) {
	rec, err := scanDocument(r.q.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE kind = $1 AND id = $2 FOR UPDATE`, string(kind), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document for update: %w", err)
	}
	return rec, nil
}

// List lista documentos por fecha de alta (los más recientes primero).
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*repository.DocumentRecord, error) {
	var w whereBuilder
	if f.Kind != "" {
		w.add("kind = $%d", string(f.Kind))
	}
	if f.FiscalYear != "" {
		w.add("fiscal_year = $%d", f.FiscalYear)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.Party != "" {
		w.add("lower(btrim(party)) = lower(btrim($%d))", f.Party)
	}
	query := `SELECT ` + documentColumns + ` FROM documents` + w.sql() +
		` ORDER BY fiscal_year DESC, number DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*repository.DocumentRecord
	for rows.Next() {
		rec, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Update reescribe el documento con control de concurrencia optimista: la fila solo cambia
// si version sigue siendo expectedVersion. rec.Version debe traer la versión nueva.
func (r *DocumentRepo) Update(ctx context.Context, rec *repository.DocumentRecord, expectedVersion int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE documents SET date = $3, status = $4, party = $5, version = $6, payload = $7, updated_at = $8
		WHERE id = $1 AND kind = $2 AND version = $9`,
		rec.ID, string(rec.Kind), rec.Date, rec.Status, nullable(rec.Party), rec.Version, rec.Payload,
		rec.UpdatedAt, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func scanDocument(row pgx.Row) (*repository.DocumentRecord, error) {
	var rec repository.DocumentRecord
	var kind string
	var party, createdBy *string
	if err := row.Scan(
		&rec.ID, &kind, &rec.FiscalYear, &rec.Number, &rec.Date, &rec.Status, &party, &rec.Version,
		&createdBy, &rec.Payload, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.Kind = entity.DocKind(kind)
	rec.Party, rec.CreatedBy = deref(party), deref(createdBy)
	return &rec, nil
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// DocumentRecord fila del almacén de documentos: columnas de cabecera indexables más el
// documento completo serializado en Payload.
type DocumentRecord struct {
	ID         string
	Kind       entity.DocKind
	FiscalYear string
	Number     int
	Date       string
	Status     string
	Party      string
	Version    int
	CreatedBy  string
	Payload    []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentFilter filtros del listado. Campos vacíos no filtran; Limit 0 lista todo.
type DocumentFilter struct {
	Kind       entity.DocKind
	FiscalYear string
	Status     string
	Party      string
	Limit      int
	Offset     int
}

// DocumentStore define el puerto de persistencia de todos los documentos del back-office.
type DocumentStore interface {
	// NextNumber reserva el siguiente número correlativo para el tipo y año fiscal.
	NextNumber(ctx context.Context, kind entity.DocKind, fiscalYear string) (int, error)
	Insert(ctx context.Context, rec *DocumentRecord) error
	// Get devuelve nil, nil si no existe.
	Get(ctx context.Context, kind entity.DocKind, id string) (*DocumentRecord, error)
	// GetForUpdate como Get pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, kind entity.DocKind, id string) (*DocumentRecord, error)
	List(ctx context.Context, filter DocumentFilter) ([]*DocumentRecord, error)
	// Update reescribe el documento solo si su versión sigue siendo expectedVersion y la
	// incrementa. Devuelve domain.ErrConflict si otra escritura ganó.
	Update(ctx context.Context, rec *DocumentRecord, expectedVersion int) error
}

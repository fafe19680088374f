package documents

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

// encode arma la fila del almacén a partir del documento.
func encode(doc entity.Document) (*repository.DocumentRecord, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", doc.Kind(), err)
	}
	h := doc.Head()
	return &repository.DocumentRecord{
		ID:         h.ID,
		Kind:       doc.Kind(),
		FiscalYear: h.FiscalYear,
		Number:     h.Number,
		Date:       h.Date,
		Status:     h.Status,
		Party:      doc.Party(),
		Version:    h.Version,
		CreatedBy:  h.CreatedBy,
		Payload:    payload,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}, nil
}

// Decode reconstruye el documento desde su fila. Las columnas de cabecera mandan sobre el JSON.
func Decode[T entity.Document](rec *repository.DocumentRecord, newDoc func() T) (T, error) {
	doc := newDoc()
	if err := json.Unmarshal(rec.Payload, doc); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s %s: %w", rec.Kind, rec.ID, err)
	}
	h := doc.Head()
	h.ID = rec.ID
	h.FiscalYear = rec.FiscalYear
	h.Number = rec.Number
	h.Date = rec.Date
	h.Status = rec.Status
	h.Version = rec.Version
	h.CreatedBy = rec.CreatedBy
	h.CreatedAt = rec.CreatedAt
	h.UpdatedAt = rec.UpdatedAt
	return doc, nil
}

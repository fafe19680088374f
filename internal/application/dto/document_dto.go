package dto

import "github.com/jhoicas/Swasthya-api/internal/domain/inventory"

// TransitionRequest acción de flujo de aprobación sobre un documento. Version es la versión
// que el cliente leyó; si otro usuario la cambió la transición se rechaza con 409.
type TransitionRequest struct {
	Action  string `json:"action" validate:"required,oneof=submit verify approve issue complete reject"`
	Version int    `json:"version" validate:"required,min=1"`
	Remarks string `json:"remarks"`
}

// DocumentResponse documento con sus totales de pie y las acciones que puede ejecutar quien consulta.
type DocumentResponse[T any] struct {
	Document       T                `json:"document"`
	Totals         inventory.Totals `json:"totals"`
	AllowedActions []string         `json:"allowed_actions"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

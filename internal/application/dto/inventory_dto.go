package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementResponse un movimiento de existencias de un bien.
type MovementResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	StoreID      string          `json:"store_id,omitempty"`
	DocumentKind string          `json:"document_kind"`
	DocumentID   string          `json:"document_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	Total        decimal.Decimal `json:"total"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Date         time.Time       `json:"date"`
	CreatedBy    string          `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

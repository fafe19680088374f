package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para dar de alta un bien. La cantidad inicial siempre es cero:
// las existencias entran por dakhila (saldo inicial o compra).
type CreateItemRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Code          string          `json:"code"`
	AssetCode     string          `json:"asset_code"`
	Type          string          `json:"type" validate:"required,oneof=Expendable Non-Expendable"`
	Unit          string          `json:"unit"`
	Specification string          `json:"specification"`
	Rate          decimal.Decimal `json:"rate"`
	StoreID       string          `json:"store_id"`
	FiscalYear    string          `json:"fiscal_year"`
	ExpiryDate    string          `json:"expiry_date"`
	BatchNo       string          `json:"batch_no"`
}

// UpdateItemRequest entrada para actualizar datos descriptivos (sin cantidad ni tarifa).
type UpdateItemRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Code          *string `json:"code"`
	AssetCode     *string `json:"asset_code"`
	Type          *string `json:"type" validate:"omitempty,oneof=Expendable Non-Expendable"`
	Unit          *string `json:"unit"`
	Specification *string `json:"specification"`
	StoreID       *string `json:"store_id"`
	ExpiryDate    *string `json:"expiry_date"`
	BatchNo       *string `json:"batch_no"`
}

// ItemResponse salida de un bien.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code,omitempty"`
	AssetCode     string          `json:"asset_code,omitempty"`
	Type          string          `json:"type"`
	Unit          string          `json:"unit,omitempty"`
	Specification string          `json:"specification,omitempty"`
	Rate          decimal.Decimal `json:"rate"`
	Quantity      decimal.Decimal `json:"quantity"`
	Value         decimal.Decimal `json:"value"`
	StoreID       string          `json:"store_id,omitempty"`
	FiscalYear    string          `json:"fiscal_year,omitempty"`
	ExpiryDate    string          `json:"expiry_date,omitempty"`
	BatchNo       string          `json:"batch_no,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de bienes.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

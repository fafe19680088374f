package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de existencias.
const (
	MovementTypeIN  = "IN"  // entrada (dakhila, devolución)
	MovementTypeOUT = "OUT" // salida (nikasha, baja)
)

// InventoryMovement rastro de auditoría de cada ajuste de cantidad hecho por una transición
// de documento. DocumentID identifica el documento que lo originó.
type InventoryMovement struct {
	ID           string
	ItemID       string
	StoreID      string
	DocumentKind DocKind
	DocumentID   string
	Type         string
	Quantity     decimal.Decimal // siempre positivo; Type da el sentido
	Rate         decimal.Decimal
	Total        decimal.Decimal
	BalanceAfter decimal.Decimal
	Date         time.Time
	CreatedBy    string
}

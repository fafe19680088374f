package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de bien.
const (
	ItemExpendable    = "Expendable"     // consumible (kharcha hune)
	ItemNonExpendable = "Non-Expendable" // bien durable con código de activo (kharcha nahune)
)

// ValidItemType indica si t es un tipo de bien conocido.
func ValidItemType(t string) bool {
	return t == ItemExpendable || t == ItemNonExpendable
}

// InventoryItem representa un bien del inventario. Nunca se borra: solo se ajusta su cantidad
// por aprobación de entradas, salidas, devoluciones y bajas.
type InventoryItem struct {
	ID            string
	Name          string
	Code          string // código de clasificación (sanket number)
	AssetCode     string // código único del activo (solo no consumibles)
	Type          string // Expendable | Non-Expendable
	Unit          string
	Specification string
	Rate          decimal.Decimal // tarifa promedio ponderada
	Quantity      decimal.Decimal
	StoreID       string
	FiscalYear    string
	ExpiryDate    string // fecha BS, consumibles
	BatchNo       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsExpendable indica si el bien es consumible.
func (i InventoryItem) IsExpendable() bool { return i.Type == ItemExpendable }

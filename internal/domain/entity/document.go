package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocKind tipo de documento (colección del almacén de registros).
type DocKind string

// Tipos de documento del back-office.
const (
	KindDemandForm    DocKind = "demand_form"    // Mag Faram
	KindPurchaseOrder DocKind = "purchase_order" // Kharid Adesh
	KindIssueReport   DocKind = "issue_report"   // Nikasha Pratibedan
	KindStockEntry    DocKind = "stock_entry"    // solicitud de entrada a almacén
	KindDakhila       DocKind = "dakhila"        // Dakhila Pratibedan (entrada finalizada)
	KindReturn        DocKind = "return"         // Jinshi Firta
	KindMaintenance   DocKind = "maintenance"    // Marmat Adesh
	KindDisposal      DocKind = "disposal"       // Dhuliyauna / lilam
)

// Kinds lista ordenada de todos los tipos.
var Kinds = []DocKind{
	KindDemandForm, KindPurchaseOrder, KindIssueReport, KindStockEntry,
	KindDakhila, KindReturn, KindMaintenance, KindDisposal,
}

// Estados de documento. Se persisten como texto tal cual.
const (
	StatusPending         = "Pending"
	StatusPendingAccount  = "Pending Account"
	StatusAccountVerified = "Account Verified"
	StatusGenerated       = "Generated"
	StatusVerified        = "Verified"
	StatusApproved        = "Approved"
	StatusIssued          = "Issued"
	StatusCompleted       = "Completed"
	StatusRejected        = "Rejected"
)

// Orígenes de una línea o de un dakhila.
const (
	SourceOpening  = "Opening"  // saldo inicial del año fiscal
	SourcePurchase = "Purchase" // compra / entrada aprobada
)

// StatusChange registro de una transición (sirve para los bloques de firma del impreso).
type StatusChange struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Action  string    `json:"action"`
	By      string    `json:"by"`
	ByName  string    `json:"by_name"`
	Remarks string    `json:"remarks,omitempty"`
	At      time.Time `json:"at"`
}

// Header cabecera común de todos los documentos.
type Header struct {
	ID         string         `json:"id"`
	FiscalYear string         `json:"fiscal_year"`
	Number     int            `json:"number"`
	Date       string         `json:"date"` // fecha BS "2081/01/05"
	Status     string         `json:"status"`
	Version    int            `json:"version"`
	Remarks    string         `json:"remarks,omitempty"`
	CreatedBy  string         `json:"created_by"`
	History    []StatusChange `json:"history,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// LineItem línea de cualquier formulario. Los totales derivados los calcula inventory.ComputeLine.
type LineItem struct {
	ItemID        string          `json:"item_id,omitempty"`
	Name          string          `json:"name"`
	Code          string          `json:"code,omitempty"`
	AssetCode     string          `json:"asset_code,omitempty"`
	ItemType      string          `json:"item_type,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Specification string          `json:"specification,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	FinalTotal    decimal.Decimal `json:"final_total"`
	Source        string          `json:"source,omitempty"`
	ExpiryDate    string          `json:"expiry_date,omitempty"`
	BatchNo       string          `json:"batch_no,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
}

// MatchCode código con el que se identifica el bien físico: código de activo si existe, si no el de clasificación.
func (l LineItem) MatchCode() string {
	if l.AssetCode != "" {
		return l.AssetCode
	}
	return l.Code
}

// Document contrato común de los documentos del back-office. Lo implementan los punteros
// a los tipos concretos (*IssueReport, *PurchaseOrder, ...).
type Document interface {
	Kind() DocKind
	Head() *Header
	Lines() []LineItem
	SetLines([]LineItem)
	// Party contraparte que se imprime y se indexa: destinatario, proveedor, solicitante...
	Party() string
}

package dto

import "github.com/jhoicas/Swasthya-api/internal/domain/ledger"

// JinshiLedgerResponse Jinshi Khata de un bien en un año fiscal.
type JinshiLedgerResponse struct {
	Item       string         `json:"item"`
	FiscalYear string         `json:"fiscal_year"`
	Unit       string         `json:"unit,omitempty"`
	Code       string         `json:"code,omitempty"`
	Rows       []ledger.Row   `json:"rows"`
	Summary    ledger.Summary `json:"summary"`
}

// CustodyLedgerResponse Sahayak Jinshi Khata de una persona.
type CustodyLedgerResponse struct {
	Person  string              `json:"person"`
	Rows    []ledger.CustodyRow `json:"rows"`
	Cleared bool                `json:"cleared"`
}

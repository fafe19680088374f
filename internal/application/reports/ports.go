// Package reports arma los libros del almacén (Jinshi Khata y Sahayak Jinshi Khata) desde los
// documentos guardados y los entrega como JSON, hoja de cálculo o PDF, junto con el impreso de
// cada documento.
package reports

import (
	"context"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
)

// PDFGenerator genera los impresos en PDF.
type PDFGenerator interface {
	DocumentPDF(ctx context.Context, v DocumentView) ([]byte, error)
	JinshiPDF(ctx context.Context, office string, l *dto.JinshiLedgerResponse) ([]byte, error)
	CustodyPDF(ctx context.Context, office string, l *dto.CustodyLedgerResponse) ([]byte, error)
}

// SpreadsheetExporter exporta los libros a XLSX.
type SpreadsheetExporter interface {
	JinshiXLSX(office string, l *dto.JinshiLedgerResponse) ([]byte, error)
	CustodyXLSX(office string, l *dto.CustodyLedgerResponse) ([]byte, error)
}

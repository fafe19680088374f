package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/ledger"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/pkg/nepdate"
)

// UseCase libros del almacén e impresos.
type UseCase struct {
	docs       repository.DocumentStore
	items      repository.ItemRepository
	pdf        PDFGenerator
	xlsx       SpreadsheetExporter
	office     string
	fiscalYear string
}

// NewUseCase construye el caso de uso. fiscalYear es el año fiscal por defecto de los libros.
func NewUseCase(
	docs repository.DocumentStore,
	items repository.ItemRepository,
	pdf PDFGenerator,
	xlsx SpreadsheetExporter,
	office, fiscalYear string,
) *UseCase {
	return &UseCase{
		docs:       docs,
		items:      items,
		pdf:        pdf,
		xlsx:       xlsx,
		office:     office,
		fiscalYear: nepdate.NormalizeFiscalYear(fiscalYear),
	}
}

// JinshiQuery identifica el bien por nombre o por ID del inventario.
type JinshiQuery struct {
	Item       string
	ItemID     string
	FiscalYear string
}

// Jinshi arma el Jinshi Khata del bien para el año fiscal pedido (o el de la oficina).
func (uc *UseCase) Jinshi(ctx context.Context, q JinshiQuery) (*dto.JinshiLedgerResponse, error) {
	name := strings.TrimSpace(q.Item)
	var item *entity.InventoryItem
	if q.ItemID != "" {
		it, err := uc.items.GetByID(ctx, q.ItemID)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, domain.ErrNotFound
		}
		item, name = it, it.Name
	}
	if name == "" {
		return nil, fmt.Errorf("%w: indique el bien", domain.ErrInvalidInput)
	}
	fy := uc.fiscalYear
	if strings.TrimSpace(q.FiscalYear) != "" {
		parsed, err := nepdate.ParseFiscalYear(q.FiscalYear)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		fy = parsed.String()
	}
	if fy == "" {
		return nil, fmt.Errorf("%w: indique el año fiscal", domain.ErrInvalidInput)
	}

	filter := repository.DocumentFilter{FiscalYear: fy}
	dakhila, err := load(ctx, uc.docs, entity.KindDakhila, filter, func() *entity.DakhilaPratibedan { return &entity.DakhilaPratibedan{} })
	if err != nil {
		return nil, err
	}
	issues, err := load(ctx, uc.docs, entity.KindIssueReport, filter, func() *entity.IssueReport { return &entity.IssueReport{} })
	if err != nil {
		return nil, err
	}
	returns, err := load(ctx, uc.docs, entity.KindReturn, filter, func() *entity.ReturnEntry { return &entity.ReturnEntry{} })
	if err != nil {
		return nil, err
	}

	rows := ledger.BuildLedger(name, fy, deref(dakhila), deref(issues), deref(returns))
	out := &dto.JinshiLedgerResponse{
		Item:       name,
		FiscalYear: fy,
		Rows:       rows,
		Summary:    ledger.Summarize(rows),
	}
	for _, r := range rows {
		if out.Unit == "" {
			out.Unit = r.Unit
		}
		if out.Code == "" {
			out.Code = r.Code
		}
	}
	if item != nil {
		if out.Unit == "" {
			out.Unit = item.Unit
		}
		if out.Code == "" {
			out.Code = item.Code
		}
	}
	return out, nil
}

// Custody arma el Sahayak Jinshi Khata de la persona con todos los años fiscales.
func (uc *UseCase) Custody(ctx context.Context, person string) (*dto.CustodyLedgerResponse, error) {
	person = strings.TrimSpace(person)
	if person == "" {
		return nil, fmt.Errorf("%w: indique la persona", domain.ErrInvalidInput)
	}
	issues, err := load(ctx, uc.docs, entity.KindIssueReport, repository.DocumentFilter{}, func() *entity.IssueReport { return &entity.IssueReport{} })
	if err != nil {
		return nil, err
	}
	returns, err := load(ctx, uc.docs, entity.KindReturn, repository.DocumentFilter{Status: entity.StatusApproved}, func() *entity.ReturnEntry { return &entity.ReturnEntry{} })
	if err != nil {
		return nil, err
	}
	catalogue, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	items := make([]entity.InventoryItem, 0, len(catalogue))
	for _, it := range catalogue {
		items = append(items, *it)
	}

	rows, cleared := ledger.BuildCustodyLedger(person, deref(issues), deref(returns), items)
	return &dto.CustodyLedgerResponse{Person: person, Rows: rows, Cleared: cleared}, nil
}

// JinshiXLSX libro del bien como hoja de cálculo; devuelve el contenido y el nombre de archivo.
func (uc *UseCase) JinshiXLSX(ctx context.Context, q JinshiQuery) ([]byte, string, error) {
	l, err := uc.Jinshi(ctx, q)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.JinshiXLSX(uc.office, l)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return b, fileName("jinshi_khata", l.Item, l.FiscalYear, "xlsx"), nil
}

// JinshiPDF libro del bien impreso.
func (uc *UseCase) JinshiPDF(ctx context.Context, q JinshiQuery) ([]byte, string, error) {
	l, err := uc.Jinshi(ctx, q)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.JinshiPDF(ctx, uc.office, l)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return b, fileName("jinshi_khata", l.Item, l.FiscalYear, "pdf"), nil
}

// CustodyXLSX libro de custodia como hoja de cálculo.
func (uc *UseCase) CustodyXLSX(ctx context.Context, person string) ([]byte, string, error) {
	l, err := uc.Custody(ctx, person)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.CustodyXLSX(uc.office, l)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	return b, fileName("sahayak_jinshi_khata", l.Person, "", "xlsx"), nil
}

// CustodyPDF libro de custodia impreso.
func (uc *UseCase) CustodyPDF(ctx context.Context, person string) ([]byte, string, error) {
	l, err := uc.Custody(ctx, person)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.CustodyPDF(ctx, uc.office, l)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return b, fileName("sahayak_jinshi_khata", l.Person, "", "pdf"), nil
}

// DocumentPDF impreso del documento.
func (uc *UseCase) DocumentPDF(ctx context.Context, doc entity.Document) ([]byte, string, error) {
	b, err := uc.pdf.DocumentPDF(ctx, ViewOf(uc.office, doc))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	h := doc.Head()
	return b, fileName(string(doc.Kind()), fmt.Sprintf("%d", h.Number), h.FiscalYear, "pdf"), nil
}

func load[T entity.Document](ctx context.Context, docs repository.DocumentStore, kind entity.DocKind, filter repository.DocumentFilter, newDoc func() T) ([]T, error) {
	filter.Kind = kind
	recs, err := docs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	// El almacén lista del más reciente al más antiguo; los libros desempatan las fechas
	// iguales por orden de entrada, así que van en orden de numeración.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].FiscalYear != recs[j].FiscalYear {
			return recs[i].FiscalYear < recs[j].FiscalYear
		}
		return recs[i].Number < recs[j].Number
	})
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		doc, err := documents.Decode(rec, newDoc)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func deref[T any](ps []*T) []T {
	out := make([]T, len(ps))
	for i, p := range ps {
		out[i] = *p
	}
	return out
}

// fileName nombre de archivo sin separadores ni espacios: "jinshi_khata_mask_2081-082.pdf".
func fileName(prefix, subject, fiscalYear, ext string) string {
	parts := []string{prefix}
	if s := slug(subject); s != "" {
		parts = append(parts, s)
	}
	if fiscalYear != "" {
		parts = append(parts, strings.ReplaceAll(fiscalYear, "/", "-"))
	}
	return strings.Join(parts, "_") + "." + ext
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == ' ' || r == '/' || r == '\\':
			b.WriteRune('-')
		case r == '"' || r == ';':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

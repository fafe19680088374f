package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/pkg/nepdate"
)

// ItemUseCase catálogo de bienes. Cantidad y tarifa no se editan aquí: cambian solo con las
// transiciones de documentos (entradas, salidas, devoluciones, bajas).
type ItemUseCase struct {
	repo       repository.ItemRepository
	stores     repository.StoreRepository
	movements  repository.InventoryMovementRepository
	fiscalYear string
}

// NewItemUseCase construye el caso de uso. fiscalYear es el año activo por defecto de las altas.
func NewItemUseCase(
	repo repository.ItemRepository,
	stores repository.StoreRepository,
	movements repository.InventoryMovementRepository,
	fiscalYear string,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, stores: stores, movements: movements, fiscalYear: fiscalYear}
}

// Create da de alta un bien con existencias en cero.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidItemType(in.Type) || in.Rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkStore(ctx, in.StoreID); err != nil {
		return nil, err
	}
	fy := nepdate.NormalizeFiscalYear(in.FiscalYear)
	if fy == "" {
		fy = uc.fiscalYear
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          name,
		Code:          strings.TrimSpace(in.Code),
		AssetCode:     strings.TrimSpace(in.AssetCode),
		Type:          in.Type,
		Unit:          in.Unit,
		Specification: in.Specification,
		Rate:          in.Rate,
		Quantity:      decimal.Zero,
		StoreID:       in.StoreID,
		FiscalYear:    fy,
		ExpiryDate:    nepdate.Normalize(in.ExpiryDate),
		BatchNo:       in.BatchNo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetByID obtiene un bien por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return ToItemResponse(item), nil
}

// Update actualiza datos descriptivos del bien.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		if !entity.ValidItemType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		item.Type = *in.Type
	}
	if in.StoreID != nil {
		if err := uc.checkStore(ctx, *in.StoreID); err != nil {
			return nil, err
		}
		item.StoreID = *in.StoreID
	}
	if in.Code != nil {
		item.Code = strings.TrimSpace(*in.Code)
	}
	if in.AssetCode != nil {
		item.AssetCode = strings.TrimSpace(*in.AssetCode)
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Specification != nil {
		item.Specification = *in.Specification
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = nepdate.Normalize(*in.ExpiryDate)
	}
	if in.BatchNo != nil {
		item.BatchNo = *in.BatchNo
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List lista bienes con filtros.
func (uc *ItemUseCase) List(ctx context.Context, f repository.ItemFilter) (*dto.ItemListResponse, error) {
	if f.FiscalYear != "" {
		f.FiscalYear = nepdate.NormalizeFiscalYear(f.FiscalYear)
	}
	if f.Type != "" && !entity.ValidItemType(f.Type) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Movements historial de movimientos de existencias de un bien.
func (uc *ItemUseCase) Movements(ctx context.Context, itemID string, limit, offset int) (*dto.MovementListResponse, error) {
	item, err := uc.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movements.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:           m.ID,
			ItemID:       m.ItemID,
			StoreID:      m.StoreID,
			DocumentKind: string(m.DocumentKind),
			DocumentID:   m.DocumentID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			Rate:         m.Rate,
			Total:        m.Total,
			BalanceAfter: m.BalanceAfter,
			Date:         m.Date,
			CreatedBy:    m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{Items: out, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Expiring consumibles con existencias cuya fecha de vencimiento (BS) es anterior a before.
// Los bienes con fecha de vencimiento ilegible también se listan para que se corrijan.
func (uc *ItemUseCase) Expiring(ctx context.Context, before string) (*dto.ItemListResponse, error) {
	limit, err := nepdate.Parse(before)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, before)
	}
	list, err := uc.repo.List(ctx, repository.ItemFilter{Type: entity.ItemExpendable})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0)
	for _, it := range list {
		if it.ExpiryDate == "" || !it.Quantity.IsPositive() {
			continue
		}
		exp, err := nepdate.Parse(it.ExpiryDate)
		if err == nil && !exp.Before(limit) {
			continue
		}
		items = append(items, *ToItemResponse(it))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return nepdate.Normalize(items[i].ExpiryDate) < nepdate.Normalize(items[j].ExpiryDate)
	})
	return &dto.ItemListResponse{Items: items, Page: dto.PageResponse{Limit: len(items), Total: len(items)}}, nil
}

func (uc *ItemUseCase) checkStore(ctx context.Context, storeID string) error {
	if storeID == "" {
		return nil
	}
	s, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ToItemResponse convierte la entidad en su salida.
func ToItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Code:          it.Code,
		AssetCode:     it.AssetCode,
		Type:          it.Type,
		Unit:          it.Unit,
		Specification: it.Specification,
		Rate:          it.Rate,
		Quantity:      it.Quantity,
		Value:         it.Quantity.Mul(it.Rate).Round(2),
		StoreID:       it.StoreID,
		FiscalYear:    it.FiscalYear,
		ExpiryDate:    it.ExpiryDate,
		BatchNo:       it.BatchNo,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

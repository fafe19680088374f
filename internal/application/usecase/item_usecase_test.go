package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

type memItemRepo struct {
	repository.ItemRepository
	items map[string]*entity.InventoryItem
}

func newMemItemRepo() *memItemRepo { return &memItemRepo{items: map[string]*entity.InventoryItem{}} }

func (m *memItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	m.items[it.ID] = it
	return nil
}
func (m *memItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return m.items[id], nil
}
func (m *memItemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	m.items[it.ID] = it
	return nil
}
func (m *memItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range m.items {
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

type memStoreRepo struct {
	stores map[string]*entity.Store
}

func (m *memStoreRepo) Create(_ context.Context, s *entity.Store) error {
	m.stores[s.ID] = s
	return nil
}
func (m *memStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return m.stores[id], nil
}
func (m *memStoreRepo) Update(_ context.Context, s *entity.Store) error {
	m.stores[s.ID] = s
	return nil
}
func (m *memStoreRepo) List(context.Context, int, int) ([]*entity.Store, error) { return nil, nil }

type noMovements struct{ repository.InventoryMovementRepository }

func newItemUC() (*usecase.ItemUseCase, *memItemRepo) {
	items := newMemItemRepo()
	stores := &memStoreRepo{stores: map[string]*entity.Store{"main": {ID: "main", Name: "Main"}}}
	return usecase.NewItemUseCase(items, stores, noMovements{}, "2081/082"), items
}

func TestItem_CreateEmpiezaEnCero(t *testing.T) {
	uc, _ := newItemUC()
	out, err := uc.Create(context.Background(), dto.CreateItemRequest{
		Name: " Paracetamol ", Type: entity.ItemExpendable, Rate: decimal.NewFromInt(2), StoreID: "main",
		ExpiryDate: "2082-1-5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", out.Name)
	assert.True(t, out.Quantity.IsZero())
	assert.Equal(t, "2081/082", out.FiscalYear)
	assert.Equal(t, "2082/01/05", out.ExpiryDate)

	_, err = uc.Create(context.Background(), dto.CreateItemRequest{Name: "X", Type: "Otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CreateItemRequest{Name: "X", Type: entity.ItemExpendable, StoreID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_Expiring(t *testing.T) {
	uc, repo := newItemUC()
	add := func(id, exp, qty string) {
		repo.items[id] = &entity.InventoryItem{ID: id, Name: id, Type: entity.ItemExpendable, ExpiryDate: exp,
			Quantity: decimal.RequireFromString(qty)}
	}
	add("vence", "2081/09/30", "10")
	add("antes", "2081/08/01", "1")
	add("luego", "2081/10/01", "10")
	add("agotado", "2081/08/01", "0")
	add("ilegible", "pronto", "3")
	repo.items["durable"] = &entity.InventoryItem{ID: "durable", Type: entity.ItemNonExpendable, ExpiryDate: "2081/01/01",
		Quantity: decimal.NewFromInt(1)}

	out, err := uc.Expiring(context.Background(), "2081/10/01")
	require.NoError(t, err)
	ids := make([]string, 0, len(out.Items))
	for _, it := range out.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"antes", "vence", "ilegible"}, ids)

	_, err = uc.Expiring(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

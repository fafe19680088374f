package documents_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

// memStore base en memoria con las tres tablas que tocan los documentos. Run copia el estado y
// lo restaura si la función falla, igual que un rollback.
type memStore struct {
	docs      map[string]repository.DocumentRecord
	counters  map[string]int
	items     map[string]entity.InventoryItem
	movements []entity.InventoryMovement
}

func newMemStore() *memStore {
	return &memStore{
		docs:     map[string]repository.DocumentRecord{},
		counters: map[string]int{},
		items:    map[string]entity.InventoryItem{},
	}
}

func (m *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range m.docs {
		c.docs[k] = v
	}
	for k, v := range m.counters {
		c.counters[k] = v
	}
	for k, v := range m.items {
		c.items[k] = v
	}
	c.movements = append(c.movements, m.movements...)
	return c
}

func (m *memStore) Run(_ context.Context, fn func(repository.DocumentStore, repository.ItemRepository, repository.InventoryMovementRepository) error) error {
	saved := m.snapshot()
	if err := fn(memDocs{m}, memItems{m}, memMovements{m}); err != nil {
		*m = *saved
		return err
	}
	return nil
}

func (m *memStore) addItem(it entity.InventoryItem) {
	m.items[it.ID] = it
}

type memDocs struct{ s *memStore }

func (d memDocs) NextNumber(_ context.Context, kind entity.DocKind, fy string) (int, error) {
	k := string(kind) + "|" + fy
	d.s.counters[k]++
	return d.s.counters[k], nil
}

func (d memDocs) Insert(_ context.Context, rec *repository.DocumentRecord) error {
	if _, ok := d.s.docs[rec.ID]; ok {
		return domain.ErrDuplicate
	}
	d.s.docs[rec.ID] = *rec
	return nil
}

func (d memDocs) Get(_ context.Context, kind entity.DocKind, id string) (*repository.DocumentRecord, error) {
	rec, ok := d.s.docs[id]
	if !ok || rec.Kind != kind {
		return nil, nil
	}
	return &rec, nil
}

func (d memDocs) GetForUpdate(ctx context.Context, kind entity.DocKind, id string) (*repository.DocumentRecord, error) {
	return d.Get(ctx, kind, id)
}

func (d memDocs) List(_ context.Context, f repository.DocumentFilter) ([]*repository.DocumentRecord, error) {
	var out []*repository.DocumentRecord
	for _, rec := range d.s.docs {
		if f.Kind != "" && rec.Kind != f.Kind {
			continue
		}
		if f.FiscalYear != "" && rec.FiscalYear != f.FiscalYear {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		r := rec
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (d memDocs) Update(_ context.Context, rec *repository.DocumentRecord, expected int) error {
	cur, ok := d.s.docs[rec.ID]
	if !ok || cur.Version != expected {
		return domain.ErrConflict
	}
	d.s.docs[rec.ID] = *rec
	return nil
}

type memItems struct{ s *memStore }

func (r memItems) Create(_ context.Context, it *entity.InventoryItem) error {
	r.s.items[it.ID] = *it
	return nil
}

func (r memItems) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r memItems) Update(_ context.Context, it *entity.InventoryItem) error {
	r.s.items[it.ID] = *it
	return nil
}

func (r memItems) List(context.Context, repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		i := it
		out = append(out, &i)
	}
	return out, nil
}

func (r memItems) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r memItems) FindForUpdate(_ context.Context, name, code string) (*entity.InventoryItem, error) {
	if code != "" {
		for _, it := range r.s.items {
			if it.AssetCode == code || it.Code == code {
				i := it
				return &i, nil
			}
		}
	}
	for _, it := range r.s.items {
		if strings.EqualFold(strings.TrimSpace(it.Name), strings.TrimSpace(name)) {
			i := it
			return &i, nil
		}
	}
	return nil, nil
}

func (r memItems) SetStock(_ context.Context, id string, qty, rate decimal.Decimal) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity, it.Rate = qty, rate
	r.s.items[id] = it
	return nil
}

type memMovements struct{ s *memStore }

func (m memMovements) Create(_ context.Context, mv *entity.InventoryMovement) error {
	m.s.movements = append(m.s.movements, *mv)
	return nil
}

func (m memMovements) ListByItem(_ context.Context, itemID string, _, _ int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mv := range m.s.movements {
		if mv.ItemID == itemID {
			x := mv
			out = append(out, &x)
		}
	}
	return out, nil
}

func (m memMovements) ListByDocument(_ context.Context, docID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mv := range m.s.movements {
		if mv.DocumentID == docID {
			x := mv
			out = append(out, &x)
		}
	}
	return out, nil
}

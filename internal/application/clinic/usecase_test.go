package clinic

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

type memRabies struct {
	byID     map[string]entity.RabiesPatient
	counters map[string]int
}

func newMemRabies() *memRabies {
	return &memRabies{byID: map[string]entity.RabiesPatient{}, counters: map[string]int{}}
}

func (m *memRabies) Create(_ context.Context, p *entity.RabiesPatient) error {
	m.byID[p.ID] = clone(*p)
	return nil
}

func (m *memRabies) GetByID(_ context.Context, id string) (*entity.RabiesPatient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	c := clone(p)
	return &c, nil
}

func (m *memRabies) Update(_ context.Context, p *entity.RabiesPatient, prev time.Time) error {
	cur, ok := m.byID[p.ID]
	if !ok || !cur.UpdatedAt.Equal(prev) {
		return domain.ErrConflict
	}
	m.byID[p.ID] = clone(*p)
	return nil
}

func (m *memRabies) List(_ context.Context, f repository.RabiesFilter) ([]*entity.RabiesPatient, error) {
	var out []*entity.RabiesPatient
	for _, p := range m.byID {
		if f.From != nil && p.BiteDate.Before(*f.From) {
			continue
		}
		if f.To != nil && !p.BiteDate.Before(*f.To) {
			continue
		}
		c := clone(p)
		out = append(out, &c)
	}
	return out, nil
}

func (m *memRabies) ListWithDosesDue(_ context.Context, before time.Time) ([]*entity.RabiesPatient, error) {
	var out []*entity.RabiesPatient
	for _, p := range m.byID {
		for _, d := range p.Doses {
			if !d.Given() && d.DueDate.Before(before) {
				c := clone(p)
				out = append(out, &c)
				break
			}
		}
	}
	return out, nil
}

func (m *memRabies) NextRegistrationNo(_ context.Context, fy string) (int, error) {
	m.counters[fy]++
	return m.counters[fy], nil
}

func clone(p entity.RabiesPatient) entity.RabiesPatient {
	p.Doses = append([]entity.Dose(nil), p.Doses...)
	return p
}

type fakeSMS struct{ sent []string }

func (f *fakeSMS) Send(_ context.Context, phone, _ string) error {
	f.sent = append(f.sent, phone)
	return nil
}

func newTestUC(today string) (*UseCase, *memRabies, *fakeSMS) {
	repo := newMemRabies()
	sms := &fakeSMS{}
	uc := NewUseCase(repo, sms, "Health Office", "2081/082", nil)
	now, _ := time.Parse(dateLayout, today)
	uc.now = func() time.Time { return now.Add(9 * time.Hour) }
	return uc, repo, sms
}

func TestSchedule(t *testing.T) {
	bite := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	im := Schedule(bite, entity.ExposureCategoryII, entity.RegimenEssenIM)
	require.Len(t, im, 5)
	assert.Equal(t, 28, im[4].Day)
	assert.Equal(t, time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC), im[4].DueDate)

	id := Schedule(bite, entity.ExposureCategoryIII, entity.RegimenUpdateID)
	assert.Len(t, id, 4)

	assert.Empty(t, Schedule(bite, entity.ExposureCategoryI, entity.RegimenEssenIM))
}

func TestRegister(t *testing.T) {
	uc, _, _ := newTestUC("2024-05-10")
	ctx := context.Background()

	p, err := uc.Register(ctx, "u1", dto.RegisterPatientRequest{
		Name: " Ram ", Age: 12, Sex: "m", BiteDate: "2024-05-10", Animal: "dog", ExposureCategory: "III",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.RegistrationNo)
	assert.Equal(t, "2081/082", p.FiscalYear)
	assert.Equal(t, entity.RegimenEssenIM, p.Regimen)
	assert.Equal(t, "M", p.Sex)
	assert.Len(t, p.Doses, 5)

	p2, err := uc.Register(ctx, "u1", dto.RegisterPatientRequest{
		Name: "Sita", BiteDate: "2024-05-01", BiteDateBS: "2081/01/19", Animal: "cat", ExposureCategory: "I",
	})
	require.NoError(t, err)
	assert.Equal(t, "2080/081", p2.FiscalYear)
	assert.Equal(t, 1, p2.RegistrationNo, "la numeración es por año fiscal")
	assert.Empty(t, p2.Doses)
	assert.True(t, p2.Completed())

	bad := []dto.RegisterPatientRequest{
		{Name: "X", BiteDate: "2024-05-11", Animal: "dog", ExposureCategory: "II"},
		{Name: "X", BiteDate: "10/05/2024", Animal: "dog", ExposureCategory: "II"},
		{Name: "X", BiteDate: "2024-05-01", Animal: "dog", ExposureCategory: "IV"},
		{Name: "X", BiteDate: "2024-05-01", Animal: "dog", ExposureCategory: "II", Regimen: "oral"},
		{Name: "", BiteDate: "2024-05-01", Animal: "dog", ExposureCategory: "II"},
	}
	for _, in := range bad {
		_, err := uc.Register(ctx, "u1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestRecordDose(t *testing.T) {
	uc, _, _ := newTestUC("2024-05-10")
	ctx := context.Background()
	p, err := uc.Register(ctx, "u1", dto.RegisterPatientRequest{
		Name: "Ram", BiteDate: "2024-05-01", Animal: "dog", ExposureCategory: "II", Regimen: "id",
	})
	require.NoError(t, err)

	_, err = uc.RecordDose(ctx, "nurse", p.ID, dto.RecordDoseRequest{Day: 3, GivenDate: "2024-05-04"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta la del día 0")

	p, err = uc.RecordDose(ctx, "nurse", p.ID, dto.RecordDoseRequest{Day: 0, GivenDate: "2024-05-01", BatchNo: " B-1 "})
	require.NoError(t, err)
	assert.True(t, p.Doses[0].Given())
	assert.Equal(t, "B-1", p.Doses[0].BatchNo)
	assert.Equal(t, "nurse", p.Doses[0].GivenBy)

	_, err = uc.RecordDose(ctx, "nurse", p.ID, dto.RecordDoseRequest{Day: 0})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.RecordDose(ctx, "nurse", p.ID, dto.RecordDoseRequest{Day: 14})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el esquema ID no tiene día 14")
	_, err = uc.RecordDose(ctx, "nurse", p.ID, dto.RecordDoseRequest{Day: 3, GivenDate: "2024-04-30"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordDose(ctx, "nurse", "nope", dto.RecordDoseRequest{Day: 0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDueListYRecordatorios(t *testing.T) {
	uc, _, sms := newTestUC("2024-05-08")
	ctx := context.Background()

	// día 7 vence hoy; el día 3 quedó sin aplicar para el segundo
	a, err := uc.Register(ctx, "u1", dto.RegisterPatientRequest{
		Name: "Ram", Phone: "9800000001", BiteDate: "2024-05-01", Animal: "dog", ExposureCategory: "II",
	})
	require.NoError(t, err)
	for _, day := range []int{0, 3} {
		_, err = uc.RecordDose(ctx, "n", a.ID, dto.RecordDoseRequest{Day: day, GivenDate: "2024-05-01"})
		require.NoError(t, err)
	}
	b, err := uc.Register(ctx, "u1", dto.RegisterPatientRequest{
		Name: "Sita", Phone: "9800000002", BiteDate: "2024-05-03", Animal: "dog", ExposureCategory: "II",
	})
	require.NoError(t, err)
	_, err = uc.RecordDose(ctx, "n", b.ID, dto.RecordDoseRequest{Day: 0, GivenDate: "2024-05-03"})
	require.NoError(t, err)
	// sin dosis pendientes hasta mañana
	_, err = uc.Register(ctx, "u1", dto.RegisterPatientRequest{
		Name: "Hari", BiteDate: "2024-05-08", Animal: "dog", ExposureCategory: "I",
	})
	require.NoError(t, err)

	due, err := uc.DueList(ctx, time.Date(2024, 5, 8, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due.Items, 2)
	byName := map[string]dto.DueDose{}
	for _, d := range due.Items {
		byName[d.Name] = d
	}
	assert.Equal(t, 7, byName["Ram"].Day)
	assert.False(t, byName["Ram"].Overdue)
	assert.Equal(t, 3, byName["Sita"].Day)
	assert.True(t, byName["Sita"].Overdue)

	sent, err := uc.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"9800000001", "9800000002"}, sms.sent)
}

func TestList_PorMes(t *testing.T) {
	uc, _, _ := newTestUC("2024-06-10")
	ctx := context.Background()
	for _, d := range []string{"2024-05-01", "2024-05-31", "2024-06-01"} {
		_, err := uc.Register(ctx, "u1", dto.RegisterPatientRequest{Name: d, BiteDate: d, Animal: "dog", ExposureCategory: "I"})
		require.NoError(t, err)
	}
	out, err := uc.List(ctx, "2024-05", "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)

	_, err = uc.List(ctx, "mayo", "", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

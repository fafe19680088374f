// Package clinic lleva el registro de la clínica antirrábica: alta de pacientes con su esquema
// de vacunación, registro de dosis, lista de dosis pendientes y recordatorios por SMS.
package clinic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
	"github.com/jhoicas/Swasthya-api/pkg/nepdate"
)

const dateLayout = "2006-01-02"

// SMSSender envía un mensaje de texto a un teléfono.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// UseCase casos de uso de la clínica antirrábica.
type UseCase struct {
	repo       repository.RabiesRepository
	sms        SMSSender
	office     string
	fiscalYear string
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. sms puede ser nil (sin recordatorios).
func NewUseCase(repo repository.RabiesRepository, sms SMSSender, office, fiscalYear string, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:       repo,
		sms:        sms,
		office:     office,
		fiscalYear: nepdate.NormalizeFiscalYear(fiscalYear),
		log:        log.Component("clinic"),
		now:        time.Now,
	}
}

// Schedule dosis del esquema contadas desde la fecha de mordedura. La categoría I no se vacuna.
func Schedule(biteDate time.Time, category, regimen string) []entity.Dose {
	if category == entity.ExposureCategoryI {
		return []entity.Dose{}
	}
	days := entity.RegimenDays[regimen]
	out := make([]entity.Dose, 0, len(days))
	for _, d := range days {
		out = append(out, entity.Dose{Day: d, DueDate: biteDate.AddDate(0, 0, d)})
	}
	return out
}

// Register da de alta al paciente, le asigna número de registro del año fiscal y programa sus dosis.
func (uc *UseCase) Register(ctx context.Context, userID string, in dto.RegisterPatientRequest) (*entity.RabiesPatient, error) {
	name := strings.TrimSpace(in.Name)
	animal := strings.TrimSpace(in.Animal)
	if name == "" || animal == "" {
		return nil, fmt.Errorf("%w: nombre y animal son obligatorios", domain.ErrInvalidInput)
	}
	if in.Age < 0 || in.Age > 130 {
		return nil, fmt.Errorf("%w: edad %d", domain.ErrInvalidInput, in.Age)
	}
	switch in.ExposureCategory {
	case entity.ExposureCategoryI, entity.ExposureCategoryII, entity.ExposureCategoryIII:
	default:
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.ExposureCategory)
	}
	regimen := strings.ToUpper(strings.TrimSpace(in.Regimen))
	if regimen == "" {
		regimen = entity.RegimenEssenIM
	}
	if _, ok := entity.RegimenDays[regimen]; !ok {
		return nil, fmt.Errorf("%w: esquema %q", domain.ErrInvalidInput, in.Regimen)
	}
	bite, err := time.Parse(dateLayout, strings.TrimSpace(in.BiteDate))
	if err != nil {
		return nil, fmt.Errorf("%w: bite_date %q", domain.ErrInvalidInput, in.BiteDate)
	}
	now := uc.now()
	if bite.After(truncateDay(now)) {
		return nil, fmt.Errorf("%w: la mordedura no puede ser futura", domain.ErrInvalidInput)
	}

	fy := uc.fiscalYear
	bs := ""
	if strings.TrimSpace(in.BiteDateBS) != "" {
		d, err := nepdate.Parse(in.BiteDateBS)
		if err != nil {
			return nil, fmt.Errorf("%w: bite_date_bs %q", domain.ErrInvalidInput, in.BiteDateBS)
		}
		bs = d.String()
		fy = nepdate.FiscalYearOf(d).String()
	}
	if fy == "" {
		return nil, fmt.Errorf("%w: sin año fiscal para el registro", domain.ErrInvalidInput)
	}

	no, err := uc.repo.NextRegistrationNo(ctx, fy)
	if err != nil {
		return nil, err
	}
	p := &entity.RabiesPatient{
		ID:               uuid.New().String(),
		RegistrationNo:   no,
		FiscalYear:       fy,
		Name:             name,
		Age:              in.Age,
		Sex:              strings.ToUpper(strings.TrimSpace(in.Sex)),
		Address:          strings.TrimSpace(in.Address),
		Phone:            strings.TrimSpace(in.Phone),
		BiteDate:         bite,
		BiteDateBS:       bs,
		Animal:           animal,
		BiteSite:         strings.TrimSpace(in.BiteSite),
		ExposureCategory: in.ExposureCategory,
		Regimen:          regimen,
		RIGGiven:         in.RIGGiven,
		Doses:            Schedule(bite, in.ExposureCategory, regimen),
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if p.ExposureCategory == entity.ExposureCategoryIII && !p.RIGGiven {
		uc.log.Warn().Str("patient", p.ID).Int("registration_no", no).Msg("categoría III sin inmunoglobulina")
	}
	return p, nil
}

// Get obtiene un paciente.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.RabiesPatient, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// RecordDose marca como aplicada la dosis del día indicado del esquema.
func (uc *UseCase) RecordDose(ctx context.Context, userID, id string, in dto.RecordDoseRequest) (*entity.RabiesPatient, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	given := uc.now()
	if strings.TrimSpace(in.GivenDate) != "" {
		if given, err = time.Parse(dateLayout, strings.TrimSpace(in.GivenDate)); err != nil {
			return nil, fmt.Errorf("%w: given_date %q", domain.ErrInvalidInput, in.GivenDate)
		}
	}
	if truncateDay(given).Before(truncateDay(p.BiteDate)) {
		return nil, fmt.Errorf("%w: la dosis no puede ser anterior a la mordedura", domain.ErrInvalidInput)
	}

	idx := -1
	for i, d := range p.Doses {
		if d.Day == in.Day {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: el esquema no tiene dosis del día %d", domain.ErrInvalidInput, in.Day)
	}
	if p.Doses[idx].Given() {
		return nil, fmt.Errorf("%w: la dosis del día %d ya fue aplicada", domain.ErrConflict, in.Day)
	}
	// Las dosis se aplican en orden.
	for _, d := range p.Doses[:idx] {
		if !d.Given() {
			return nil, fmt.Errorf("%w: falta la dosis del día %d", domain.ErrInvalidInput, d.Day)
		}
	}

	prev := p.UpdatedAt
	p.Doses[idx].GivenDate = &given
	p.Doses[idx].BatchNo = strings.TrimSpace(in.BatchNo)
	p.Doses[idx].GivenBy = userID
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p, prev); err != nil {
		return nil, err
	}
	return p, nil
}

// List registro del mes ("2024-05") o del año fiscal, con búsqueda por nombre o teléfono.
func (uc *UseCase) List(ctx context.Context, month, fiscalYear, search string, page dto.PageRequest) (*dto.PatientListResponse, error) {
	page.DefaultPage()
	f := repository.RabiesFilter{
		Search: strings.TrimSpace(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if fiscalYear != "" {
		f.FiscalYear = nepdate.NormalizeFiscalYear(fiscalYear)
	}
	if month != "" {
		start, err := time.Parse("2006-01", strings.TrimSpace(month))
		if err != nil {
			return nil, fmt.Errorf("%w: mes %q", domain.ErrInvalidInput, month)
		}
		end := start.AddDate(0, 1, 0)
		f.From, f.To = &start, &end
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]entity.RabiesPatient, 0, len(list))
	for _, p := range list {
		items = append(items, *p)
	}
	return &dto.PatientListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// DueList dosis pendientes con vencimiento hasta date (incluido); las de días anteriores quedan
// marcadas como atrasadas.
func (uc *UseCase) DueList(ctx context.Context, date time.Time) (*dto.DueListResponse, error) {
	day := truncateDay(date)
	patients, err := uc.repo.ListWithDosesDue(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := &dto.DueListResponse{Date: day, Items: []dto.DueDose{}}
	for _, p := range patients {
		for _, d := range p.Doses {
			due := truncateDay(d.DueDate)
			if d.Given() || due.After(day) {
				continue
			}
			out.Items = append(out.Items, dto.DueDose{
				PatientID:      p.ID,
				RegistrationNo: p.RegistrationNo,
				Name:           p.Name,
				Phone:          p.Phone,
				Day:            d.Day,
				DueDate:        d.DueDate,
				Overdue:        due.Before(day),
			})
			// solo la próxima dosis pendiente de cada paciente
			break
		}
	}
	return out, nil
}

// SendReminders avisa por SMS a los pacientes con dosis para hoy. Devuelve cuántos mensajes se enviaron.
func (uc *UseCase) SendReminders(ctx context.Context) (int, error) {
	if uc.sms == nil {
		return 0, nil
	}
	due, err := uc.DueList(ctx, uc.now())
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, d := range due.Items {
		if d.Phone == "" {
			continue
		}
		msg := fmt.Sprintf("%s: %s, your anti-rabies dose (day %d) is due on %s. Reg no %d.",
			uc.office, d.Name, d.Day, d.DueDate.Format(dateLayout), d.RegistrationNo)
		if err := uc.sms.Send(ctx, d.Phone, msg); err != nil {
			uc.log.Warn().Err(err).Str("patient", d.PatientID).Msg("recordatorio no enviado")
			continue
		}
		sent++
	}
	uc.log.Info().Int("due", len(due.Items)).Int("sent", sent).Msg("recordatorios de dosis")
	return sent, nil
}

// truncateDay fecha de calendario de t como medianoche UTC, para comparar días sin importar la zona.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

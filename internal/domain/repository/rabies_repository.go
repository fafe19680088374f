package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// RabiesFilter filtros del registro de la clínica antirrábica.
type RabiesFilter struct {
	FiscalYear string
	From       *time.Time // fecha de mordedura desde (incluida)
	To         *time.Time // hasta (excluida)
	Search     string
	Limit      int
	Offset     int
}

// RabiesRepository define el puerto de persistencia del registro antirrábico.
type RabiesRepository interface {
	Create(ctx context.Context, p *entity.RabiesPatient) error
	GetByID(ctx context.Context, id string) (*entity.RabiesPatient, error)
	// Update reemplaza el paciente si su UpdatedAt sigue siendo prevUpdatedAt; si no, domain.ErrConflict.
	Update(ctx context.Context, p *entity.RabiesPatient, prevUpdatedAt time.Time) error
	List(ctx context.Context, filter RabiesFilter) ([]*entity.RabiesPatient, error)
	// ListWithDosesDue pacientes con al menos una dosis pendiente cuya fecha es anterior a before.
	ListWithDosesDue(ctx context.Context, before time.Time) ([]*entity.RabiesPatient, error)
	NextRegistrationNo(ctx context.Context, fiscalYear string) (int, error)
}

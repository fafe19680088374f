package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/internal/domain/workflow"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
	"github.com/jhoicas/Swasthya-api/pkg/nepdate"
)

// Hook efecto de un tipo de documento que corre dentro de la transacción.
// Puede modificar doc; los cambios se guardan junto con la transición.
type Hook[T entity.Document] func(ctx context.Context, tx *Tx, doc T) error

// Config comportamiento de un tipo de documento.
type Config[T entity.Document] struct {
	Kind entity.DocKind
	New  func() T
	// CreateRoles roles que pueden crear el documento; vacío = cualquier usuario autenticado.
	CreateRoles []string
	// AllowNoLines permite documentos sin líneas (p. ej. una reparación sin repuestos).
	AllowNoLines bool
	// Validate reglas propias del tipo; se llama con las líneas ya normalizadas.
	Validate func(doc T) error
	// OnCreate efecto al crear (solo los dakhila de saldo inicial lo usan).
	OnCreate Hook[T]
	// OnTransition efectos por acción.
	OnTransition map[workflow.Action]Hook[T]
	// Editable indica si se puede editar mientras sigue en su estado inicial.
	Editable bool
}

// UseCase casos de uso de un tipo de documento.
type UseCase[T entity.Document] struct {
	cfg        Config[T]
	docs       repository.DocumentStore
	tx         TxRunner
	fiscalYear string
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. fiscalYear es el año fiscal activo de la oficina
// (vacío = se deduce de la fecha de cada documento).
func NewUseCase[T entity.Document](
	cfg Config[T],
	docs repository.DocumentStore,
	tx TxRunner,
	fiscalYear string,
	log *logger.Logger,
) *UseCase[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase[T]{
		cfg:        cfg,
		docs:       docs,
		tx:         tx,
		fiscalYear: nepdate.NormalizeFiscalYear(fiscalYear),
		log:        log.Component("documents").With("kind", string(cfg.Kind)),
		now:        time.Now,
	}
}

// Kind tipo de documento que maneja el caso de uso.
func (uc *UseCase[T]) Kind() entity.DocKind { return uc.cfg.Kind }

// New documento vacío del tipo.
func (uc *UseCase[T]) New() T { return uc.cfg.New() }

// Create valida, numera y guarda un documento nuevo en su estado inicial.
func (uc *UseCase[T]) Create(ctx context.Context, actor Actor, doc T) (T, error) {
	var zero T
	if !allowed(uc.cfg.CreateRoles, actor.Role) {
		return zero, domain.ErrForbidden
	}
	if err := uc.prepare(doc); err != nil {
		return zero, err
	}
	now := uc.now()
	h := doc.Head()
	h.ID = uuid.New().String()
	h.Status = workflow.InitialStatus(uc.cfg.Kind)
	h.Version = 1
	h.CreatedBy = actor.UserID
	h.History = nil
	h.CreatedAt = now
	h.UpdatedAt = now

	err := uc.tx.Run(ctx, func(docs repository.DocumentStore, items repository.ItemRepository, movs repository.InventoryMovementRepository) error {
		t := &Tx{Docs: docs, Items: items, Movements: movs, Actor: actor, Now: now}
		if uc.cfg.OnCreate != nil {
			if err := uc.cfg.OnCreate(ctx, t, doc); err != nil {
				return err
			}
		}
		return insert(ctx, docs, doc)
	})
	if err != nil {
		return zero, err
	}
	uc.log.Info().Str("id", h.ID).Int("number", h.Number).Str("fiscal_year", h.FiscalYear).
		Str("by", actor.UserID).Msg("documento creado")
	return doc, nil
}

// Update reemplaza el contenido de un documento que sigue en su estado inicial. La versión
// debe coincidir con la que leyó el cliente.
func (uc *UseCase[T]) Update(ctx context.Context, actor Actor, id string, version int, doc T) (T, error) {
	var zero T
	if !uc.cfg.Editable {
		return zero, fmt.Errorf("%w: %s no se puede editar", domain.ErrInvalidTransition, uc.cfg.Kind)
	}
	var out T
	err := uc.tx.Run(ctx, func(docs repository.DocumentStore, _ repository.ItemRepository, _ repository.InventoryMovementRepository) error {
		rec, err := docs.GetForUpdate(ctx, uc.cfg.Kind, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Version != version {
			return domain.ErrConflict
		}
		if rec.Status != workflow.InitialStatus(uc.cfg.Kind) {
			return fmt.Errorf("%w: solo se edita en estado %s", domain.ErrInvalidTransition, workflow.InitialStatus(uc.cfg.Kind))
		}
		if rec.CreatedBy != actor.UserID && !allowed(uc.cfg.CreateRoles, actor.Role) {
			return domain.ErrForbidden
		}
		current, err := Decode(rec, uc.cfg.New)
		if err != nil {
			return err
		}
		ch := current.Head()
		h := doc.Head()
		// El año fiscal es el del documento guardado, no el vigente de la oficina.
		h.FiscalYear = ch.FiscalYear
		if err := uc.prepare(doc); err != nil {
			return err
		}
		// La identidad, el número y la historia no se editan.
		h.ID, h.Number, h.FiscalYear = ch.ID, ch.Number, ch.FiscalYear
		h.Status, h.CreatedBy, h.CreatedAt, h.History = ch.Status, ch.CreatedBy, ch.CreatedAt, ch.History
		h.Version = rec.Version + 1
		h.UpdatedAt = uc.now()
		next, err := encode(doc)
		if err != nil {
			return err
		}
		if err := docs.Update(ctx, next, version); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

// Get obtiene un documento por ID.
func (uc *UseCase[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	rec, err := uc.docs.Get(ctx, uc.cfg.Kind, id)
	if err != nil {
		return zero, err
	}
	if rec == nil {
		return zero, domain.ErrNotFound
	}
	return Decode(rec, uc.cfg.New)
}

// List lista documentos del tipo. filter.Kind se ignora.
func (uc *UseCase[T]) List(ctx context.Context, filter repository.DocumentFilter) ([]T, error) {
	filter.Kind = uc.cfg.Kind
	if filter.FiscalYear != "" {
		filter.FiscalYear = nepdate.NormalizeFiscalYear(filter.FiscalYear)
	}
	recs, err := uc.docs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		doc, err := Decode(rec, uc.cfg.New)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// Transition aplica una acción del flujo de aprobación en una sola transacción: bloquea el
// documento, comprueba versión, estado y rol, ejecuta los efectos sobre el inventario y
// guarda el nuevo estado con la versión incrementada.
func (uc *UseCase[T]) Transition(ctx context.Context, actor Actor, id string, action workflow.Action, version int, remarks string) (T, error) {
	var zero, out T
	err := uc.tx.Run(ctx, func(docs repository.DocumentStore, items repository.ItemRepository, movs repository.InventoryMovementRepository) error {
		rec, err := docs.GetForUpdate(ctx, uc.cfg.Kind, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Version != version {
			return domain.ErrConflict
		}
		next, err := workflow.Next(uc.cfg.Kind, rec.Status, actor.Role, action)
		if err != nil {
			return err
		}
		doc, err := Decode(rec, uc.cfg.New)
		if err != nil {
			return err
		}
		now := uc.now()
		if hook := uc.cfg.OnTransition[action]; hook != nil {
			t := &Tx{Docs: docs, Items: items, Movements: movs, Actor: actor, Now: now}
			if err := hook(ctx, t, doc); err != nil {
				return err
			}
		}
		h := doc.Head()
		h.History = append(h.History, entity.StatusChange{
			From:    rec.Status,
			To:      next,
			Action:  string(action),
			By:      actor.UserID,
			ByName:  actor.Name,
			Remarks: strings.TrimSpace(remarks),
			At:      now,
		})
		h.Status = next
		h.Version = rec.Version + 1
		h.UpdatedAt = now
		updated, err := encode(doc)
		if err != nil {
			return err
		}
		if err := docs.Update(ctx, updated, version); err != nil {
			return err
		}
		out = doc
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("id", id).Str("action", string(action)).Str("by", actor.UserID).
			Msg("transición rechazada")
		return zero, err
	}
	h := out.Head()
	uc.log.Info().Str("id", id).Str("action", string(action)).Str("status", h.Status).
		Int("version", h.Version).Str("by", actor.UserID).Msg("transición aplicada")
	return out, nil
}

// AllowedActions acciones que el rol puede ejecutar sobre el documento.
func (uc *UseCase[T]) AllowedActions(doc T, role string) []string {
	actions := workflow.Allowed(uc.cfg.Kind, doc.Head().Status, role)
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}

// Totals pie del formulario.
func (uc *UseCase[T]) Totals(doc T) inventory.Totals {
	return inventory.Footer(doc.Lines())
}

// prepare normaliza fecha, año fiscal y líneas, y aplica las validaciones comunes y del tipo.
func (uc *UseCase[T]) prepare(doc T) error {
	h := doc.Head()
	date, err := nepdate.Parse(h.Date)
	if err != nil {
		return fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, h.Date)
	}
	h.Date = date.String()

	var fy nepdate.FiscalYear
	switch {
	case strings.TrimSpace(h.FiscalYear) != "":
		if fy, err = nepdate.ParseFiscalYear(h.FiscalYear); err != nil {
			return fmt.Errorf("%w: año fiscal %q", domain.ErrInvalidInput, h.FiscalYear)
		}
	case uc.fiscalYear != "":
		fy, _ = nepdate.ParseFiscalYear(uc.fiscalYear)
	}
	if fy.IsZero() {
		fy = nepdate.FiscalYearOf(date)
	}
	if !fy.Contains(date) {
		return fmt.Errorf("%w: %s no pertenece a %s", domain.ErrOutsideFiscalYear, h.Date, fy)
	}
	h.FiscalYear = fy.String()
	h.Remarks = strings.TrimSpace(h.Remarks)

	lines := doc.Lines()
	if len(lines) == 0 && !uc.cfg.AllowNoLines {
		return fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
	}
	for i := range lines {
		l := &lines[i]
		l.Name = strings.TrimSpace(l.Name)
		l.Code = strings.TrimSpace(l.Code)
		l.AssetCode = strings.TrimSpace(l.AssetCode)
		if l.Name == "" {
			return fmt.Errorf("%w: línea %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if !l.Quantity.IsPositive() {
			return fmt.Errorf("%w: línea %d (%s) con cantidad no positiva", domain.ErrInvalidInput, i+1, l.Name)
		}
		if l.Rate.IsNegative() || l.VATAmount.IsNegative() || l.TaxPercent.IsNegative() || l.OtherExpenses.IsNegative() {
			return fmt.Errorf("%w: línea %d (%s) con importes negativos", domain.ErrInvalidInput, i+1, l.Name)
		}
		if l.ItemType != "" && !entity.ValidItemType(l.ItemType) {
			return fmt.Errorf("%w: línea %d tipo %q", domain.ErrInvalidInput, i+1, l.ItemType)
		}
		if l.ExpiryDate != "" {
			l.ExpiryDate = nepdate.Normalize(l.ExpiryDate)
		}
	}
	doc.SetLines(inventory.ComputeLines(lines, inventory.SpecFor(uc.cfg.Kind)))

	if uc.cfg.Validate != nil {
		return uc.cfg.Validate(doc)
	}
	return nil
}

// insert numera y guarda un documento ya preparado.
func insert(ctx context.Context, docs repository.DocumentStore, doc entity.Document) error {
	h := doc.Head()
	n, err := docs.NextNumber(ctx, doc.Kind(), h.FiscalYear)
	if err != nil {
		return err
	}
	h.Number = n
	rec, err := encode(doc)
	if err != nil {
		return err
	}
	return docs.Insert(ctx, rec)
}

func allowed(roles []string, role string) bool {
	if len(roles) == 0 {
		return role != ""
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	"github.com/jhoicas/Swasthya-api/internal/domain/workflow"
)

// DocumentHandler rutas de un tipo de documento. Las mismas rutas sirven a los ocho formularios.
type DocumentHandler[T entity.Document] struct {
	uc      *documents.UseCase[T]
	reports *reports.UseCase
}

// NewDocumentHandler construye el handler del tipo de documento de uc.
func NewDocumentHandler[T entity.Document](uc *documents.UseCase[T], rep *reports.UseCase) *DocumentHandler[T] {
	return &DocumentHandler[T]{uc: uc, reports: rep}
}

// updateBody cuerpo del PUT: la versión leída y el documento completo.
type updateBody[T any] struct {
	Version  int `json:"version"`
	Document T   `json:"document"`
}

func (h *DocumentHandler[T]) respond(c *fiber.Ctx, status int, doc T) error {
	return c.Status(status).JSON(dto.DocumentResponse[T]{
		Document:       doc,
		Totals:         h.uc.Totals(doc),
		AllowedActions: h.uc.AllowedActions(doc, GetRole(c)),
	})
}

// Create godoc
// @Summary      Crear documento (queda en su estado inicial)
// @Description  kind: demand-forms, purchase-orders, issue-reports, stock-entries, dakhila, returns, maintenance, disposals. Los totales de las líneas se recalculan en el servidor.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Tipo de documento"
// @Param        body  body  object  true  "Documento con sus líneas"
// @Success      201   {object}  dto.DocumentResponse[entity.PurchaseOrder]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *DocumentHandler[T]) Create(c *fiber.Ctx) error {
	doc := h.uc.New()
	if err := c.BodyParser(doc); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorOf(c), doc)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Editar documento mientras sigue pendiente
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Tipo de documento"
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  object  true  "{version, document}"
// @Success      200   {object}  dto.DocumentResponse[entity.PurchaseOrder]
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [put]
func (h *DocumentHandler[T]) Update(c *fiber.Ctx) error {
	body := updateBody[T]{Document: h.uc.New()}
	if err := c.BodyParser(&body); err != nil {
		return badBody(c)
	}
	if body.Version < 1 {
		return validation(c, "version es requerida")
	}
	out, err := h.uc.Update(c.UserContext(), actorOf(c), c.Params("id"), body.Version, body.Document)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Obtener documento con totales y acciones permitidas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "Tipo de documento"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {object}  dto.DocumentResponse[entity.PurchaseOrder]
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *DocumentHandler[T]) Get(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK, doc)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        kind         path   string  true   "Tipo de documento"
// @Param        fiscal_year  query  string  false  "Año fiscal"
// @Param        status       query  string  false  "Estado"
// @Param        party        query  string  false  "Proveedor, receptor o solicitante"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.DocumentListResponse[entity.PurchaseOrder]
// @Router       /api/{kind} [get]
func (h *DocumentHandler[T]) List(c *fiber.Ctx) error {
	p := pageFrom(c)
	items, err := h.uc.List(c.UserContext(), repository.DocumentFilter{
		FiscalYear: c.Query("fiscal_year"),
		Status:     c.Query("status"),
		Party:      c.Query("party"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []T{}
	}
	return c.JSON(dto.DocumentListResponse[T]{Items: items, Page: dto.PageResponse{Limit: p.Limit, Offset: p.Offset}})
}

// Transition godoc
// @Summary      Ejecutar una acción del flujo de aprobación
// @Description  action: submit, verify, approve, issue, complete, reject. version es la que leyó el cliente; si cambió responde 409.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                 true  "Tipo de documento"
// @Param        id    path  string                 true  "ID del documento"
// @Param        body  body  dto.TransitionRequest  true  "Acción"
// @Success      200   {object}  dto.DocumentResponse[entity.PurchaseOrder]
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/transition [post]
func (h *DocumentHandler[T]) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Action == "" || in.Version < 1 {
		return validation(c, "action y version son requeridos")
	}
	out, err := h.uc.Transition(c.UserContext(), actorOf(c), c.Params("id"), workflow.Action(in.Action), in.Version, in.Remarks)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK, out)
}

// PDF godoc
// @Summary      Formulario impreso del documento
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind  path  string  true  "Tipo de documento"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {file}    file
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id}/pdf [get]
func (h *DocumentHandler[T]) PDF(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	b, name, err := h.reports.DocumentPDF(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, mimePDF, name, b)
}

// Mount registra las rutas del tipo de documento en el grupo.
func (h *DocumentHandler[T]) Mount(r fiber.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Post("/:id/transition", h.Transition)
	r.Get("/:id/pdf", h.PDF)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP del catálogo de bienes.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un bien (existencia cero)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del bien"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.Type == "" {
		return validation(c, "name y type son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bien por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bien"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bienes
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        fiscal_year  query  string  false  "Año fiscal (2081/082)"
// @Param        type         query  string  false  "Expendable | Non-Expendable"
// @Param        store_id     query  string  false  "Almacén"
// @Param        q            query  string  false  "Búsqueda por nombre o código"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	p := pageFrom(c)
	out, err := h.uc.List(c.UserContext(), repository.ItemFilter{
		FiscalYear: c.Query("fiscal_year"),
		Type:       c.Query("type"),
		StoreID:    c.Query("store_id"),
		Search:     c.Query("q"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos descriptivos de un bien
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del bien"
// @Param        body  body  dto.UpdateItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de existencias de un bien
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del bien"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	p := pageFrom(c)
	out, err := h.uc.Movements(c.UserContext(), c.Params("id"), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Consumibles por vencer
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        before  query  string  true  "Fecha BS límite (2081/10/01)"
// @Success      200     {object}  dto.ItemListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/items/expiring [get]
func (h *ItemHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.uc.Expiring(c.UserContext(), c.Query("before"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

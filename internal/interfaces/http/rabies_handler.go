package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/clinic"
	"github.com/jhoicas/Swasthya-api/internal/application/dto"
)

// RabiesHandler registro de la clínica antirrábica.
type RabiesHandler struct {
	uc *clinic.UseCase
}

// NewRabiesHandler construye el handler.
func NewRabiesHandler(uc *clinic.UseCase) *RabiesHandler {
	return &RabiesHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar paciente y programar sus dosis
// @Tags         rabies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPatientRequest  true  "Datos del paciente y la mordedura"
// @Success      201   {object}  entity.RabiesPatient
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/rabies/patients [post]
func (h *RabiesHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPatientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Registro del mes o del año fiscal
// @Tags         rabies
// @Security     Bearer
// @Produce      json
// @Param        month        query  string  false  "Mes AAAA-MM"
// @Param        fiscal_year  query  string  false  "Año fiscal"
// @Param        q            query  string  false  "Nombre o teléfono"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.PatientListResponse
// @Router       /api/rabies/patients [get]
func (h *RabiesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("month"), c.Query("fiscal_year"), c.Query("q"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener paciente
// @Tags         rabies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del paciente"
// @Success      200  {object}  entity.RabiesPatient
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rabies/patients/{id} [get]
func (h *RabiesHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordDose godoc
// @Summary      Registrar dosis aplicada
// @Tags         rabies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del paciente"
// @Param        body  body  dto.RecordDoseRequest  true  "Día del esquema y fecha"
// @Success      200   {object}  entity.RabiesPatient
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rabies/patients/{id}/doses [post]
func (h *RabiesHandler) RecordDose(c *fiber.Ctx) error {
	var in dto.RecordDoseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordDose(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Due godoc
// @Summary      Dosis pendientes hasta la fecha
// @Tags         rabies
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "AAAA-MM-DD; por defecto hoy"
// @Success      200   {object}  dto.DueListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rabies/due [get]
func (h *RabiesHandler) Due(c *fiber.Ctx) error {
	date := time.Now()
	if s := strings.TrimSpace(c.Query("date")); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return validation(c, "date debe ser AAAA-MM-DD")
		}
		date = d
	}
	out, err := h.uc.DueList(c.UserContext(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

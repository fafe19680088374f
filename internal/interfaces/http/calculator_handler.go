package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
)

// CalculatorHandler vista previa de totales de formularios.
type CalculatorHandler struct {
	uc *usecase.CalculatorUseCase
}

// NewCalculatorHandler construye el handler.
func NewCalculatorHandler(uc *usecase.CalculatorUseCase) *CalculatorHandler {
	return &CalculatorHandler{uc: uc}
}

// Lines godoc
// @Summary      Recalcular líneas y pie de un formulario
// @Description  Los números llegan como texto; lo que no es numérico vale cero.
// @Tags         calculator
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculatorRequest  true  "Tipo de formulario y líneas"
// @Success      200   {object}  dto.CalculatorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculator/lines [post]
func (h *CalculatorHandler) Lines(c *fiber.Ctx) error {
	var in dto.CalculatorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Compute(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

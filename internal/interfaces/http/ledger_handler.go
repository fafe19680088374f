package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/reports"
)

// LedgerHandler libros del almacén en JSON, XLSX y PDF.
type LedgerHandler struct {
	uc *reports.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *reports.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

func jinshiQuery(c *fiber.Ctx) reports.JinshiQuery {
	return reports.JinshiQuery{Item: c.Query("item"), ItemID: c.Query("item_id"), FiscalYear: c.Query("fiscal_year")}
}

// Jinshi godoc
// @Summary      Jinshi Khata de un bien
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        item         query  string  false  "Nombre del bien"
// @Param        item_id      query  string  false  "ID del bien (alternativa a item)"
// @Param        fiscal_year  query  string  false  "Año fiscal; por defecto el de la oficina"
// @Success      200          {object}  dto.JinshiLedgerResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/ledger/jinshi [get]
func (h *LedgerHandler) Jinshi(c *fiber.Ctx) error {
	out, err := h.uc.Jinshi(c.UserContext(), jinshiQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// JinshiXLSX godoc
// @Summary      Jinshi Khata como hoja de cálculo
// @Tags         ledger
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        item         query  string  false  "Nombre del bien"
// @Param        item_id      query  string  false  "ID del bien"
// @Param        fiscal_year  query  string  false  "Año fiscal"
// @Success      200          {file}  file
// @Router       /api/ledger/jinshi/xlsx [get]
func (h *LedgerHandler) JinshiXLSX(c *fiber.Ctx) error {
	b, name, err := h.uc.JinshiXLSX(c.UserContext(), jinshiQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, mimeXLSX, name, b)
}

// JinshiPDF godoc
// @Summary      Jinshi Khata impreso
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Param        item         query  string  false  "Nombre del bien"
// @Param        item_id      query  string  false  "ID del bien"
// @Param        fiscal_year  query  string  false  "Año fiscal"
// @Success      200          {file}  file
// @Router       /api/ledger/jinshi/pdf [get]
func (h *LedgerHandler) JinshiPDF(c *fiber.Ctx) error {
	b, name, err := h.uc.JinshiPDF(c.UserContext(), jinshiQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, mimePDF, name, b)
}

// Sahayak godoc
// @Summary      Sahayak Jinshi Khata (bienes durables en custodia de una persona)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        person  query  string  true  "Nombre de la persona"
// @Success      200     {object}  dto.CustodyLedgerResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/ledger/sahayak [get]
func (h *LedgerHandler) Sahayak(c *fiber.Ctx) error {
	out, err := h.uc.Custody(c.UserContext(), c.Query("person"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SahayakXLSX godoc
// @Summary      Sahayak Jinshi Khata como hoja de cálculo
// @Tags         ledger
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        person  query  string  true  "Nombre de la persona"
// @Success      200     {file}  file
// @Router       /api/ledger/sahayak/xlsx [get]
func (h *LedgerHandler) SahayakXLSX(c *fiber.Ctx) error {
	b, name, err := h.uc.CustodyXLSX(c.UserContext(), c.Query("person"))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, mimeXLSX, name, b)
}

// SahayakPDF godoc
// @Summary      Sahayak Jinshi Khata impreso
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Param        person  query  string  true  "Nombre de la persona"
// @Success      200     {file}  file
// @Router       /api/ledger/sahayak/pdf [get]
func (h *LedgerHandler) SahayakPDF(c *fiber.Ctx) error {
	b, name, err := h.uc.CustodyPDF(c.UserContext(), c.Query("person"))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, mimePDF, name, b)
}

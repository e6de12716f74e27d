package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y valorización (protegido).
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	report    *inventory.ValuationReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, report *inventory.ValuationReportUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, report: report}
}

// RegisterInput godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterInputRequest  true  "ware_id, quantity (> 0), purchase_price (> 0, 2 decimales)"
// @Success      201   {object}  dto.FactorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/input [post]
func (h *InventoryHandler) RegisterInput(c *fiber.Ctx) error {
	var in dto.RegisterInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movements.RegisterInput(c.Context(), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterOutput godoc
// @Summary      Registrar salida de stock
// @Description  Costea la salida según el método del ware (FIFO o promedio ponderado).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterOutputRequest  true  "ware_id, quantity (> 0)"
// @Success      201   {object}  dto.FactorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/output [post]
func (h *InventoryHandler) RegisterOutput(c *fiber.Ctx) error {
	var in dto.RegisterOutputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movements.RegisterOutput(c.Context(), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetValuation godoc
// @Summary      Valorización del stock de un ware
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        ware_id  query  int  true  "ID del ware"
// @Success      200  {object}  dto.ValuationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/valuation [get]
func (h *InventoryHandler) GetValuation(c *fiber.Ctx) error {
	wareID := int64(c.QueryInt("ware_id", 0))
	if wareID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ware_id es requerido"})
	}
	out, err := h.movements.Valuate(c.Context(), wareID)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// GetValuationPDF godoc
// @Summary      Reporte PDF de valorización
// @Description  Con ware_id reporta solo ese ware; sin ware_id, todos.
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        ware_id  query  int  false  "ID del ware"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/valuation/pdf [get]
func (h *InventoryHandler) GetValuationPDF(c *fiber.Ctx) error {
	wareID := int64(c.QueryInt("ware_id", 0))
	pdfBytes, err := h.report.GenerateValuationReport(c.Context(), wareID)
	if err != nil {
		return inventoryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="valorizacion.pdf"`)
	return c.Send(pdfBytes)
}

// ListFactors godoc
// @Summary      Historial de movimientos de un ware (kardex)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        ware_id  query  int  true   "ID del ware"
// @Param        limit    query  int  false  "Límite"   default(20)
// @Param        offset   query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.FactorListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/factors [get]
func (h *InventoryHandler) ListFactors(c *fiber.Ctx) error {
	wareID := int64(c.QueryInt("ware_id", 0))
	if wareID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ware_id es requerido"})
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	out, err := h.movements.ListFactors(c.Context(), wareID, page.Limit, page.Offset)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// inventoryError mapea errores de dominio a códigos HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ware no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

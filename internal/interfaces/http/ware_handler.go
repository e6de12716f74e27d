package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	"github.com/jhoicas/Costeo-api/internal/domain"
)

// WareHandler maneja las peticiones HTTP para Ware (protegido).
type WareHandler struct {
	uc *usecase.WareUseCase
}

// NewWareHandler construye el handler.
func NewWareHandler(uc *usecase.WareUseCase) *WareHandler {
	return &WareHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ware
// @Description  El método de costeo (fifo | weighted_mean) queda fijado de por vida.
// @Tags         wares
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWareRequest  true  "name, cost_method"
// @Success      201   {object}  dto.WareResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wares [post]
func (h *WareHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWareRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un ware con ese nombre"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido y cost_method debe ser fifo o weighted_mean"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ware por ID
// @Tags         wares
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del ware"
// @Success      200  {object}  dto.WareResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wares/{id} [get]
func (h *WareHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ware no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar wares
// @Tags         wares
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.WareListResponse
// @Router       /api/wares [get]
func (h *WareHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

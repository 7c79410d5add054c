package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/reports"
	"github.com/jhoicas/bodega-api/internal/domain"
)

// DashboardHandler maneja las lecturas de dashboard y listados de movimientos.
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Dashboard de bodega
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// RecentMovements godoc
// @Summary      Movimientos recientes
// @Tags         reports
// @Produce      json
// @Param        kind   query  string  false  "RECEIPT o DISPATCH; vacío = todos"
// @Param        limit  query  int     false  "máximo de filas (default 20, tope 100)"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *DashboardHandler) RecentMovements(c *fiber.Ctx) error {
	kind := strings.ToUpper(c.Query("kind"))
	limit := c.QueryInt("limit")
	list, err := h.uc.RecentMovements(c.Context(), kind, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return badRequest(c, "VALIDATION", err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

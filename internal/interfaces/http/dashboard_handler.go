package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/novasalud/clinic-api/internal/application/dto"
)

// DashboardService lo que el handler necesita de *analytics.DashboardUseCase.
type DashboardService interface {
	GetSummary(ctx context.Context) (*dto.DashboardResponse, error)
}

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día en curso.
// GET /api/dashboard
//
// Respuesta: DashboardResponse (today_sales, units_sold_today, clients_today,
// low_stock_count, low_stock[10], recent_activity[10]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

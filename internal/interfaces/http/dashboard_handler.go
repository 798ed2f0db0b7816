package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// DashboardHandler expone los agregados del tablero.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary conteos de certificados por etapa, estado y dependencia.
// GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// StockEntryHandler expone los recibos de stock materializados por aprobaciones.
type StockEntryHandler struct {
	uc *usecase.StockEntryUseCase
}

// NewStockEntryHandler construye el handler.
func NewStockEntryHandler(uc *usecase.StockEntryUseCase) *StockEntryHandler {
	return &StockEntryHandler{uc: uc}
}

// List lista recibos por ítem de catálogo o por certificado de origen.
// GET /api/stock-entries?item_id=&certificate_id=&limit=&offset=
func (h *StockEntryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	entries, err := h.uc.List(c.Query("item_id"), c.Query("certificate_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

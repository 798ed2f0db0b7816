package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// DepartmentHandler maneja dependencias y ubicaciones físicas (solo lectura).
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// List lista las dependencias.
// GET /api/departments
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	depts, err := h.uc.ListDepartments()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(depts)
}

// GetByID obtiene una dependencia.
// GET /api/departments/:id
func (h *DepartmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	dept, err := h.uc.GetDepartment(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dept)
}

// ListLocations lista las ubicaciones físicas.
// GET /api/locations
func (h *DepartmentHandler) ListLocations(c *fiber.Ctx) error {
	locs, err := h.uc.ListLocations()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(locs)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/workflow"
)

// LinkingHandler maneja la reconciliación de líneas contra el catálogo durante
// la etapa CENTRAL_REGISTER.
type LinkingHandler struct {
	reconciler *workflow.Reconciler
}

// NewLinkingHandler construye el handler.
func NewLinkingHandler(reconciler *workflow.Reconciler) *LinkingHandler {
	return &LinkingHandler{reconciler: reconciler}
}

// GetUnlinked lista las líneas aceptadas aún sin vincular y el resumen.
// GET /api/certificates/:id/linking/unlinked
func (h *LinkingHandler) GetUnlinked(c *fiber.Ctx) error {
	items, summary, err := h.reconciler.GetUnlinkedItems(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "summary": summary})
}

// LinkToExisting vincula una línea a un ítem de catálogo existente.
// POST /api/certificates/:id/linking/link
func (h *LinkingHandler) LinkToExisting(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.LinkToExistingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.reconciler.LinkToExistingItem(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// CreateAndLink crea un ítem de catálogo nuevo y vincula la línea en una sola operación.
// POST /api/certificates/:id/linking/create-and-link
func (h *LinkingHandler) CreateAndLink(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAndLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.reconciler.CreateAndLinkItem(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// Unlink revierte la vinculación de una línea (el ítem de catálogo queda intacto).
// POST /api/certificates/:id/linking/unlink
func (h *LinkingHandler) Unlink(c *fiber.Ctx) error {
	var in dto.UnlinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.reconciler.UnlinkItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// CreateSubCategory crea una subcategoría sobre la marcha durante la vinculación,
// etiquetada con la procedencia del certificado para el cleanup de rechazo.
// POST /api/certificates/:id/linking/subcategories
func (h *LinkingHandler) CreateSubCategory(c *fiber.Ctx) error {
	var in dto.CreateSubCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.reconciler.CreateSubCategory(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// CentralRegisterDetails registra los números de registro central por línea.
// PUT /api/certificates/:id/central-register
func (h *LinkingHandler) CentralRegisterDetails(c *fiber.Ctx) error {
	var in dto.CentralRegisterDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reconciler.UpdateCentralRegisterDetails(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
)

// CatalogHandler maneja el catálogo maestro: ítems y jerarquía de categorías.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateItemRequest borrador HTTP de ítem de catálogo.
type CreateItemRequest struct {
	CategoryID        string `json:"category_id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	Description       string `json:"description"`
	AcctUnit          string `json:"acct_unit"`
	DefaultLocationID string `json:"default_location_id"`
}

// CreateItem crea un ítem de catálogo bajo una subcategoría real.
// POST /api/catalog/items
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(usecase.CreateItemInput{
		CategoryID:        in.CategoryID,
		Name:              in.Name,
		Code:              in.Code,
		Description:       in.Description,
		AcctUnit:          in.AcctUnit,
		DefaultLocationID: in.DefaultLocationID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetItem obtiene un ítem de catálogo.
// GET /api/catalog/items/:id
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ListItems lista ítems, opcionalmente filtrados por categoría.
// GET /api/catalog/items?category_id=&limit=&offset=
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	items, err := h.uc.ListItems(c.Query("category_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// SearchItems busca ítems por nombre normalizado (sin tildes) o código.
// GET /api/catalog/items/search?q=
func (h *CatalogHandler) SearchItems(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro q requerido"})
	}
	items, err := h.uc.SearchItems(q, c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// CreateCategoryRequest borrador HTTP de categoría.
type CreateCategoryRequest struct {
	ParentID           string   `json:"parent_id"`
	Name               string   `json:"name"`
	Code               string   `json:"code"`
	TrackingType       string   `json:"tracking_type"`
	DepreciationRate   *float64 `json:"depreciation_rate"`
	DepreciationMethod string   `json:"depreciation_method"`
}

// CreateCategory crea una categoría amplia o una subcategoría.
// POST /api/catalog/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.CreateCategory(usecase.CreateCategoryInput{
		ParentID:           in.ParentID,
		Name:               in.Name,
		Code:               in.Code,
		TrackingType:       in.TrackingType,
		DepreciationRate:   in.DepreciationRate,
		DepreciationMethod: in.DepreciationMethod,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// ListCategories lista categorías amplias, o subcategorías si se pasa parent_id.
// GET /api/catalog/categories?parent_id=
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	parentID := c.Query("parent_id")
	if parentID == "" {
		cats, err := h.uc.ListBroaderCategories()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cats)
	}
	cats, err := h.uc.ListSubCategories(parentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cats)
}

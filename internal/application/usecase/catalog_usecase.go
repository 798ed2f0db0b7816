package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// CatalogUseCase CRUD y búsqueda del catálogo (ítems y categorías) fuera del flujo de
// certificados. Los ítems creados por aquí no llevan procedencia de certificado.
type CatalogUseCase struct {
	itemRepo repository.ItemRepository
	catRepo  repository.CategoryRepository
	locRepo  repository.LocationRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	itemRepo repository.ItemRepository,
	catRepo repository.CategoryRepository,
	locRepo repository.LocationRepository,
) *CatalogUseCase {
	return &CatalogUseCase{itemRepo: itemRepo, catRepo: catRepo, locRepo: locRepo}
}

// CreateItemInput borrador de ítem de catálogo.
type CreateItemInput struct {
	CategoryID        string
	Name              string
	Code              string
	Description       string
	AcctUnit          string
	DefaultLocationID string
}

// CreateItem crea un ítem de catálogo bajo una subcategoría real (las categorías amplias
// no anclan ítems). El tracking type se hereda de la categoría.
func (uc *CatalogUseCase) CreateItem(in CreateItemInput) (*entity.Item, error) {
	if in.CategoryID == "" || in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.catRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if category.IsBroader() {
		return nil, domain.NewValidationError("category_id")
	}
	if in.DefaultLocationID != "" {
		loc, err := uc.locRepo.GetByID(in.DefaultLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		CategoryID:        category.ID,
		Name:              in.Name,
		Code:              in.Code,
		Description:       in.Description,
		TrackingType:      category.TrackingType,
		AcctUnit:          in.AcctUnit,
		DefaultLocationID: in.DefaultLocationID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem obtiene un ítem por ID.
func (uc *CatalogUseCase) GetItem(id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista el catálogo con paginación, opcionalmente por categoría.
func (uc *CatalogUseCase) ListItems(categoryID string, limit, offset int) ([]*entity.Item, error) {
	if categoryID != "" {
		return uc.itemRepo.ListByCategory(categoryID, limit, offset)
	}
	return uc.itemRepo.List(limit, offset)
}

// SearchItems busca ítems por nombre o código (insensible a mayúsculas y acentos).
func (uc *CatalogUseCase) SearchItems(query string, limit int) ([]*entity.Item, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return uc.itemRepo.Search(query, limit)
}

// CreateCategoryInput borrador de categoría (amplia o subcategoría).
type CreateCategoryInput struct {
	ParentID           string
	Name               string
	Code               string
	TrackingType       string // obligatorio solo para categorías amplias
	DepreciationRate   *float64
	DepreciationMethod string
}

// CreateCategory crea una categoría amplia (con tracking type propio) o una subcategoría
// (hereda el tracking del padre; depreciación solo para INDIVIDUAL).
func (uc *CatalogUseCase) CreateCategory(in CreateCategoryInput) (*entity.Category, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		Code:      in.Code,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.ParentID == "" {
		switch in.TrackingType {
		case entity.TrackingIndividual, entity.TrackingBulk, entity.TrackingBatch:
			cat.TrackingType = in.TrackingType
		default:
			return nil, domain.NewValidationError("tracking_type")
		}
	} else {
		parent, err := uc.catRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if !parent.IsBroader() {
			return nil, domain.NewValidationError("parent_id")
		}
		cat.TrackingType = parent.TrackingType
		if parent.TrackingType == entity.TrackingIndividual {
			cat.DepreciationRate = in.DepreciationRate
			cat.DepreciationMethod = in.DepreciationMethod
		} else if in.DepreciationRate != nil {
			return nil, domain.NewValidationError("depreciation_rate")
		}
	}

	if err := uc.catRepo.Create(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// ListBroaderCategories lista las categorías amplias (raíz).
func (uc *CatalogUseCase) ListBroaderCategories() ([]*entity.Category, error) {
	return uc.catRepo.ListBroader()
}

// ListSubCategories lista las subcategorías de una categoría amplia.
func (uc *CatalogUseCase) ListSubCategories(parentID string) ([]*entity.Category, error) {
	if parentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.catRepo.ListByParent(parentID)
}

package dto

import "time"

// LinkAttributesRequest metadatos de seguimiento aportados al vincular.
// El subconjunto obligatorio depende del tracking type del ítem de catálogo.
type LinkAttributesRequest struct {
	BatchNumber       string     `json:"batch_number"`
	ManufactureDate   *time.Time `json:"manufacture_date"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	ShelfLifeDays     *int       `json:"shelf_life_days"`
	Manufacturer      string     `json:"manufacturer"`
	Brand             string     `json:"brand"`
	Model             string     `json:"model"`
	SerialNumber      string     `json:"serial_number"`
	WarrantyMonths    *int       `json:"warranty_months"`
	MinimumStockLevel *int64     `json:"minimum_stock_level"`
	ReorderLevel      *int64     `json:"reorder_level"`
}

// LinkToExistingRequest vincula una línea a un ítem de catálogo existente.
type LinkToExistingRequest struct {
	InspectionItemID string                `json:"inspection_item_id"`
	CatalogItemID    string                `json:"catalog_item_id"`
	Attributes       LinkAttributesRequest `json:"attributes"`
}

// NewItemDraft borrador de ítem de catálogo a crear durante la vinculación.
type NewItemDraft struct {
	CategoryID        string `json:"category_id"` // debe ser subcategoría real
	Name              string `json:"name"`
	Code              string `json:"code"`
	Description       string `json:"description"`
	AcctUnit          string `json:"acct_unit"`
	DefaultLocationID string `json:"default_location_id"`
}

// CreateAndLinkRequest crea un ítem de catálogo nuevo y vincula la línea en una sola operación.
type CreateAndLinkRequest struct {
	InspectionItemID string                `json:"inspection_item_id"`
	Item             NewItemDraft          `json:"item"`
	Attributes       LinkAttributesRequest `json:"attributes"`
}

// UnlinkRequest revierte la vinculación de una línea (no borra el ítem de catálogo).
type UnlinkRequest struct {
	InspectionItemID string `json:"inspection_item_id"`
}

// CreateSubCategoryRequest crea una subcategoría sobre la marcha bajo una categoría amplia.
// Hereda el tracking type del padre; la depreciación solo aplica si el heredado es INDIVIDUAL.
type CreateSubCategoryRequest struct {
	ParentID           string   `json:"parent_id"`
	Name               string   `json:"name"`
	Code               string   `json:"code"`
	DepreciationRate   *float64 `json:"depreciation_rate"`
	DepreciationMethod string   `json:"depreciation_method"`
}

// CentralRegisterDetailsRequest números de registro central por línea.
type CentralRegisterDetailsRequest struct {
	Items []CentralRegisterItem `json:"items"`
}

// CentralRegisterItem registro central de una línea.
type CentralRegisterItem struct {
	ID                    string `json:"id"`
	CentralRegisterNo     string `json:"central_register_no"`
	CentralRegisterPageNo string `json:"central_register_page_no"`
}

// LinkingSummary resumen de vinculación del certificado, recalculado tras cada
// operación de link/unlink/create para que la puerta de etapa 3 se chequee barato.
type LinkingSummary struct {
	TotalItems    int  `json:"total_items"` // líneas con cantidad aceptada > 0
	LinkedCount   int  `json:"linked_count"`
	UnlinkedCount int  `json:"unlinked_count"`
	AllLinked     bool `json:"all_linked"`
}

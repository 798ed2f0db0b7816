package workflow

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// Nombres canónicos de los campos de vinculación. Son los que reporta ValidationError
// y los que consume el formulario de la etapa de registro central.
const (
	FieldBatchNumber       = "batch_number"
	FieldExpiryDate        = "expiry_date"
	FieldManufactureDate   = "manufacture_date"
	FieldManufacturer      = "manufacturer"
	FieldBrand             = "brand"
	FieldModel             = "model"
	FieldSerialNumber      = "serial_number"
	FieldWarrantyMonths    = "warranty_months"
	FieldMinimumStockLevel = "minimum_stock_level"
	FieldReorderLevel      = "reorder_level"
)

// Tabla de campos obligatorios por tipo de seguimiento al momento de vincular.
// BULK usa batch_number como número de lote.
var requiredByTracking = map[string][]string{
	entity.TrackingBatch:      {FieldBatchNumber, FieldExpiryDate, FieldManufactureDate, FieldManufacturer},
	entity.TrackingBulk:       {FieldBatchNumber, FieldManufacturer},
	entity.TrackingIndividual: {FieldBrand, FieldModel},
}

// Campos opcionales por tipo de seguimiento (para el renderizado de formularios).
var optionalByTracking = map[string][]string{
	entity.TrackingBatch:      {FieldBrand},
	entity.TrackingBulk:       {FieldBrand, FieldMinimumStockLevel, FieldReorderLevel},
	entity.TrackingIndividual: {FieldManufacturer, FieldSerialNumber, FieldWarrantyMonths},
}

// RequiredLinkFields devuelve los campos obligatorios para vincular un ítem según su
// tipo de seguimiento. Las líneas solo-rechazadas (acceptedQuantity == 0) no necesitan
// metadatos de seguimiento: devuelve vacío.
func RequiredLinkFields(trackingType string, acceptedQuantity int64) []string {
	if acceptedQuantity == 0 {
		return nil
	}
	fields, ok := requiredByTracking[trackingType]
	if !ok {
		return nil
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// OptionalLinkFields devuelve los campos opcionales para el tipo de seguimiento.
func OptionalLinkFields(trackingType string) []string {
	fields := optionalByTracking[trackingType]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// DeriveExpiry calcula la fecha de vencimiento como fabricación + vida útil en días.
// Función pura, sin efectos: se recalcula cada vez que cambia alguno de los insumos y el
// usuario siempre puede sobreescribir el resultado con una fecha explícita.
func DeriveExpiry(manufactureDate time.Time, shelfLifeDays int) time.Time {
	return manufactureDate.AddDate(0, 0, shelfLifeDays)
}

// LinkAttributes son los metadatos de seguimiento aportados al vincular un ítem.
// Se validan contra RequiredLinkFields del tracking type del ítem de catálogo y se
// guardan sobre la línea de inspección (registro a nivel de instancia).
type LinkAttributes struct {
	BatchNumber       string
	ManufactureDate   *time.Time
	ExpiryDate        *time.Time
	ShelfLifeDays     *int // si viene junto a ManufactureDate y sin ExpiryDate explícita, se deriva
	Manufacturer      string
	Brand             string
	Model             string
	SerialNumber      string
	WarrantyMonths    *int
	MinimumStockLevel *int64
	ReorderLevel      *int64
}

// Normalize deriva expiry_date desde manufacture_date + shelf_life_days cuando ambos
// insumos están presentes y no hay vencimiento explícito.
func (a *LinkAttributes) Normalize() {
	if a.ExpiryDate == nil && a.ManufactureDate != nil && a.ShelfLifeDays != nil {
		d := DeriveExpiry(*a.ManufactureDate, *a.ShelfLifeDays)
		a.ExpiryDate = &d
	}
}

// MissingFields devuelve los campos obligatorios del tracking type que el payload no trae,
// en el orden canónico de la tabla (para ValidationError completo, no solo el primero).
func (a *LinkAttributes) MissingFields(trackingType string, acceptedQuantity int64) []string {
	a.Normalize()
	var missing []string
	for _, f := range RequiredLinkFields(trackingType, acceptedQuantity) {
		if !a.has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

func (a *LinkAttributes) has(field string) bool {
	switch field {
	case FieldBatchNumber:
		return a.BatchNumber != ""
	case FieldExpiryDate:
		return a.ExpiryDate != nil
	case FieldManufactureDate:
		return a.ManufactureDate != nil
	case FieldManufacturer:
		return a.Manufacturer != ""
	case FieldBrand:
		return a.Brand != ""
	case FieldModel:
		return a.Model != ""
	case FieldSerialNumber:
		return a.SerialNumber != ""
	case FieldWarrantyMonths:
		return a.WarrantyMonths != nil
	case FieldMinimumStockLevel:
		return a.MinimumStockLevel != nil
	case FieldReorderLevel:
		return a.ReorderLevel != nil
	}
	return false
}

// ApplyTo copia los atributos sobre la línea de inspección (solo el subconjunto poblado).
func (a *LinkAttributes) ApplyTo(item *entity.InspectionItem) {
	item.BatchNumber = a.BatchNumber
	item.ManufactureDate = a.ManufactureDate
	item.ExpiryDate = a.ExpiryDate
	item.Manufacturer = a.Manufacturer
	item.Brand = a.Brand
	item.Model = a.Model
	item.SerialNumber = a.SerialNumber
	item.WarrantyMonths = a.WarrantyMonths
	item.MinimumStockLevel = a.MinimumStockLevel
	item.ReorderLevel = a.ReorderLevel
}

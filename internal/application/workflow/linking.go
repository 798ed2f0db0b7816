package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	domainwf "github.com/jhoicas/Activos-api/internal/domain/workflow"
)

// Reconciler ejecuta la conciliación de vinculación durante CENTRAL_REGISTER: asocia cada
// línea aceptada a un ítem de catálogo (existente o creado al vuelo) recogiendo los
// atributos que exige su tipo de seguimiento, y mantiene el resumen de vinculación que
// consume la puerta de etapa 3.
type Reconciler struct {
	txRunner TxRunner
	certRepo repository.CertificateRepository
	itemRepo repository.InspectionItemRepository
	catRepo  repository.CategoryRepository
	locRepo  repository.LocationRepository
}

// NewReconciler construye el conciliador.
func NewReconciler(
	txRunner TxRunner,
	certRepo repository.CertificateRepository,
	itemRepo repository.InspectionItemRepository,
	catRepo repository.CategoryRepository,
	locRepo repository.LocationRepository,
) *Reconciler {
	return &Reconciler{
		txRunner: txRunner,
		certRepo: certRepo,
		itemRepo: itemRepo,
		catRepo:  catRepo,
		locRepo:  locRepo,
	}
}

// GetUnlinkedItems devuelve las líneas aceptadas aún sin vincular y el resumen actual.
func (r *Reconciler) GetUnlinkedItems(ctx context.Context, certificateID string) ([]*entity.InspectionItem, dto.LinkingSummary, error) {
	cert, err := r.certRepo.GetByID(certificateID)
	if err != nil {
		return nil, dto.LinkingSummary{}, err
	}
	if cert == nil {
		return nil, dto.LinkingSummary{}, domain.ErrNotFound
	}
	items, err := r.itemRepo.ListByCertificate(certificateID)
	if err != nil {
		return nil, dto.LinkingSummary{}, err
	}
	summary, _ := Summarize(items)
	var unlinked []*entity.InspectionItem
	for _, item := range items {
		if item.AcceptedQuantity > 0 && !item.IsItemLinked {
			unlinked = append(unlinked, item)
		}
	}
	return unlinked, summary, nil
}

// LinkToExistingItem vincula una línea a un ítem de catálogo existente. Valida los
// atributos contra el tracking type del ítem de catálogo (todos los faltantes se
// reportan a la vez) y guarda los atributos sobre la línea, no sobre el catálogo.
func (r *Reconciler) LinkToExistingItem(ctx context.Context, certificateID, userID string, in dto.LinkToExistingRequest) (*dto.LinkingSummary, error) {
	if in.InspectionItemID == "" || in.CatalogItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	var summary dto.LinkingSummary
	err := r.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		catalogRepo repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, item, err := r.loadForLinking(certRepo, itemRepo, certificateID, in.InspectionItemID)
		if err != nil {
			return err
		}

		catalogItem, err := catalogRepo.GetByID(in.CatalogItemID)
		if err != nil {
			return err
		}
		if catalogItem == nil {
			return domain.ErrNotFound
		}

		if err := r.applyLink(itemRepo, item, catalogItem, userID, in.Attributes); err != nil {
			return err
		}
		summary, err = r.recompute(itemRepo, cert.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateAndLinkItem crea un ítem de catálogo nuevo bajo una subcategoría real, lo marca
// con la procedencia de este certificado (para el cleanup de rechazo) y vincula la línea
// en la misma transacción.
func (r *Reconciler) CreateAndLinkItem(ctx context.Context, certificateID, userID string, in dto.CreateAndLinkRequest) (*dto.LinkingSummary, error) {
	if in.InspectionItemID == "" || in.Item.CategoryID == "" || in.Item.Name == "" || in.Item.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	var summary dto.LinkingSummary
	err := r.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		catalogRepo repository.ItemRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, item, err := r.loadForLinking(certRepo, itemRepo, certificateID, in.InspectionItemID)
		if err != nil {
			return err
		}

		category, err := categoryRepo.GetByID(in.Item.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		// Solo subcategorías pueden anclar ítems de catálogo
		if category.IsBroader() {
			return domain.NewValidationError("category_id")
		}

		if in.Item.DefaultLocationID != "" {
			loc, err := r.locRepo.GetByID(in.Item.DefaultLocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.ErrNotFound
			}
		}

		now := time.Now()
		catalogItem := &entity.Item{
			ID:                     uuid.New().String(),
			CategoryID:             category.ID,
			Name:                   in.Item.Name,
			Code:                   in.Item.Code,
			Description:            in.Item.Description,
			TrackingType:           category.TrackingType,
			AcctUnit:               in.Item.AcctUnit,
			DefaultLocationID:      in.Item.DefaultLocationID,
			CreatedByCertificateID: cert.ID, // procedencia para el cleanup de rechazo
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := catalogRepo.Create(catalogItem); err != nil {
			return err
		}

		if err := r.applyLink(itemRepo, item, catalogItem, userID, in.Attributes); err != nil {
			return err
		}
		summary, err = r.recompute(itemRepo, cert.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// UnlinkItem revierte la vinculación de una línea. No borra el ítem de catálogo
// (desvincular no es cleanup: el cleanup solo ocurre al rechazar el certificado).
// Permitido en cualquier etapa anterior a AUDIT_REVIEW.
func (r *Reconciler) UnlinkItem(ctx context.Context, certificateID string, in dto.UnlinkRequest) (*dto.LinkingSummary, error) {
	if in.InspectionItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	var summary dto.LinkingSummary
	err := r.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(certificateID)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}
		if domainwf.StageRank(cert.Stage) >= domainwf.StageRank(entity.StageAuditReview) {
			return domain.ErrConflict
		}

		item, err := itemRepo.GetByID(in.InspectionItemID)
		if err != nil {
			return err
		}
		if item == nil || item.CertificateID != cert.ID {
			return domain.ErrNotFound
		}
		item.ClearLink()
		item.UpdatedAt = time.Now()
		if err := itemRepo.Update(item); err != nil {
			return err
		}
		summary, err = r.recompute(itemRepo, cert.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateSubCategory crea una subcategoría al vuelo bajo una categoría amplia existente.
// Hereda el tracking type del padre; la depreciación solo se acepta cuando el heredado
// es INDIVIDUAL. Queda marcada con la procedencia de este certificado.
func (r *Reconciler) CreateSubCategory(ctx context.Context, certificateID string, in dto.CreateSubCategoryRequest) (*entity.Category, error) {
	if in.ParentID == "" || in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Category
	err := r.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		_ repository.InspectionItemRepository,
		_ repository.ItemRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(certificateID)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}
		if cert.Stage != entity.StageCentralRegister {
			return domain.ErrConflict
		}

		parent, err := categoryRepo.GetByID(in.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrNotFound
		}
		// Solo se crean subcategorías bajo categorías amplias (raíz)
		if !parent.IsBroader() {
			return domain.NewValidationError("parent_id")
		}
		if in.DepreciationRate != nil && parent.TrackingType != entity.TrackingIndividual {
			return domain.NewValidationError("depreciation_rate")
		}

		now := time.Now()
		created = &entity.Category{
			ID:                     uuid.New().String(),
			ParentID:               parent.ID,
			Name:                   in.Name,
			Code:                   in.Code,
			TrackingType:           parent.TrackingType, // herencia
			Status:                 "active",
			CreatedByCertificateID: cert.ID,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if parent.TrackingType == entity.TrackingIndividual {
			created.DepreciationRate = in.DepreciationRate
			created.DepreciationMethod = in.DepreciationMethod
		}
		return categoryRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateCentralRegisterDetails guarda los números de registro central por línea.
func (r *Reconciler) UpdateCentralRegisterDetails(ctx context.Context, certificateID string, in dto.CentralRegisterDetailsRequest) error {
	return r.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(certificateID)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}
		if cert.Stage != entity.StageCentralRegister {
			return domain.ErrConflict
		}

		now := time.Now()
		for _, d := range in.Items {
			item, err := itemRepo.GetByID(d.ID)
			if err != nil {
				return err
			}
			if item == nil || item.CertificateID != cert.ID {
				return domain.ErrNotFound
			}
			item.CentralRegisterNo = d.CentralRegisterNo
			item.CentralRegisterPageNo = d.CentralRegisterPageNo
			item.UpdatedAt = now
			if err := itemRepo.Update(item); err != nil {
				return err
			}
		}
		return nil
	})
}

// loadForLinking carga y bloquea certificado + línea validando que la vinculación aplica:
// etapa CENTRAL_REGISTER, línea del certificado, aceptada y sin vincular.
func (r *Reconciler) loadForLinking(
	certRepo repository.CertificateRepository,
	itemRepo repository.InspectionItemRepository,
	certificateID, inspectionItemID string,
) (*entity.InspectionCertificate, *entity.InspectionItem, error) {
	cert, err := certRepo.GetByIDForUpdate(certificateID)
	if err != nil {
		return nil, nil, err
	}
	if cert == nil {
		return nil, nil, domain.ErrNotFound
	}
	if cert.IsTerminal() {
		return nil, nil, &domain.TerminalStateError{Stage: cert.Stage}
	}
	if cert.Stage != entity.StageCentralRegister {
		return nil, nil, domain.ErrConflict
	}

	item, err := itemRepo.GetByID(inspectionItemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil || item.CertificateID != cert.ID {
		return nil, nil, domain.ErrNotFound
	}
	if item.IsItemLinked {
		return nil, nil, domain.ErrConflict
	}
	if item.AcceptedQuantity <= 0 {
		// Las líneas solo-rechazadas no se vinculan
		return nil, nil, domain.ErrInvalidInput
	}
	return cert, item, nil
}

// applyLink valida los atributos contra el tracking type y marca la línea como vinculada.
func (r *Reconciler) applyLink(
	itemRepo repository.InspectionItemRepository,
	item *entity.InspectionItem,
	catalogItem *entity.Item,
	userID string,
	in dto.LinkAttributesRequest,
) error {
	attrs := toLinkAttributes(in)
	if missing := attrs.MissingFields(catalogItem.TrackingType, item.AcceptedQuantity); len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}

	now := time.Now()
	attrs.ApplyTo(item)
	item.IsItemLinked = true
	item.LinkedItemID = catalogItem.ID
	item.LinkedBy = userID
	item.LinkedAt = &now
	item.UpdatedAt = now
	return itemRepo.Update(item)
}

// recompute recalcula el resumen dentro de la misma transacción que la mutación, para
// que el valor devuelto nunca corra contra un link/unlink en vuelo del mismo certificado.
func (r *Reconciler) recompute(itemRepo repository.InspectionItemRepository, certificateID string) (dto.LinkingSummary, error) {
	items, err := itemRepo.ListByCertificate(certificateID)
	if err != nil {
		return dto.LinkingSummary{}, err
	}
	summary, _ := Summarize(items)
	return summary, nil
}

func toLinkAttributes(in dto.LinkAttributesRequest) domainwf.LinkAttributes {
	return domainwf.LinkAttributes{
		BatchNumber:       in.BatchNumber,
		ManufactureDate:   in.ManufactureDate,
		ExpiryDate:        in.ExpiryDate,
		ShelfLifeDays:     in.ShelfLifeDays,
		Manufacturer:      in.Manufacturer,
		Brand:             in.Brand,
		Model:             in.Model,
		SerialNumber:      in.SerialNumber,
		WarrantyMonths:    in.WarrantyMonths,
		MinimumStockLevel: in.MinimumStockLevel,
		ReorderLevel:      in.ReorderLevel,
	}
}

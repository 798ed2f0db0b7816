package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
	domainwf "github.com/jhoicas/Activos-api/internal/domain/workflow"
)

// Engine es la máquina de estados del certificado de inspección. Cada transición corre
// dentro de una transacción (TxRunner) con chequeo optimista de etapa: dos intentos
// concurrentes de avanzar el mismo certificado se serializan y el perdedor recibe
// domain.ErrConflict.
type Engine struct {
	txRunner TxRunner
	certRepo repository.CertificateRepository
	itemRepo repository.InspectionItemRepository
	deptRepo repository.DepartmentRepository
}

// NewEngine construye el motor de flujo.
func NewEngine(
	txRunner TxRunner,
	certRepo repository.CertificateRepository,
	itemRepo repository.InspectionItemRepository,
	deptRepo repository.DepartmentRepository,
) *Engine {
	return &Engine{
		txRunner: txRunner,
		certRepo: certRepo,
		itemRepo: itemRepo,
		deptRepo: deptRepo,
	}
}

// Create crea un certificado en INITIATED con sus líneas. El tipo de flujo (3 o 4 etapas)
// se decide aquí, una sola vez, según si la dependencia es raíz, y se persiste.
func (e *Engine) Create(ctx context.Context, userID string, in dto.CreateCertificateRequest) (*entity.InspectionCertificate, error) {
	if in.DepartmentID == "" {
		return nil, domain.NewValidationError("department_id")
	}
	dept, err := e.deptRepo.GetByID(in.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("obtener dependencia: %w", err)
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}

	if in.DeliveryType != "" && in.DeliveryType != entity.DeliveryFull && in.DeliveryType != entity.DeliveryPart {
		return nil, domain.NewValidationError("delivery_type")
	}

	// Invariante de cantidades en cada línea (aceptada + rechazada <= licitada, todo >= 0)
	if fields := itemQuantityViolations(in.Items); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	existing, err := e.certRepo.GetByContractNo(in.ContractNo)
	if err != nil {
		return nil, fmt.Errorf("buscar contrato: %w", err)
	}
	if in.ContractNo != "" && existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	cert := &entity.InspectionCertificate{
		ID:                   uuid.New().String(),
		ContractNo:           in.ContractNo,
		ContractorName:       in.ContractorName,
		ContractorAddress:    in.ContractorAddress,
		ConsigneeName:        in.ConsigneeName,
		ConsigneeDesignation: in.ConsigneeDesignation,
		DepartmentID:         in.DepartmentID,
		Indenter:             in.Indenter,
		IndentNo:             in.IndentNo,
		DateOfDelivery:       in.DateOfDelivery,
		DeliveryType:         in.DeliveryType,
		InspectedBy:          in.InspectedBy,
		DateOfInspection:     in.DateOfInspection,
		FinanceCheckDate:     in.FinanceCheckDate,
		Remarks:              in.Remarks,
		Stage:                entity.StageInitiated,
		Status:               entity.StatusDraft,
		WorkflowType:         domainwf.WorkflowTypeFor(dept),
		CreatedBy:            userID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if in.ContractDate != nil {
		cert.ContractDate = *in.ContractDate
	}

	for _, it := range in.Items {
		cert.Items = append(cert.Items, &entity.InspectionItem{
			ID:                uuid.New().String(),
			CertificateID:     cert.ID,
			ItemDescription:   it.ItemDescription,
			Specifications:    it.Specifications,
			Unit:              it.Unit,
			TenderedQuantity:  it.TenderedQuantity,
			DeliveredQuantity: it.DeliveredQuantity,
			AcceptedQuantity:  it.AcceptedQuantity,
			RejectedQuantity:  it.RejectedQuantity,
			UnitPrice:         it.UnitPrice,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	err = e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		if err := certRepo.Create(cert); err != nil {
			return err
		}
		for _, item := range cert.Items {
			if err := itemRepo.Create(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

// Get devuelve el certificado con sus líneas.
func (e *Engine) Get(ctx context.Context, id string) (*entity.InspectionCertificate, error) {
	cert, err := e.certRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, domain.ErrNotFound
	}
	items, err := e.itemRepo.ListByCertificate(id)
	if err != nil {
		return nil, err
	}
	cert.Items = items
	return cert, nil
}

// List lista certificados (opcionalmente por dependencia).
func (e *Engine) List(ctx context.Context, departmentID string, limit, offset int) ([]*entity.InspectionCertificate, error) {
	if departmentID != "" {
		return e.certRepo.ListByDepartment(departmentID, limit, offset)
	}
	return e.certRepo.List(limit, offset)
}

// Patch aplica una actualización parcial de cabecera y líneas. Falla con TerminalStateError
// si el certificado ya está COMPLETED o REJECTED, y con ValidationError si alguna línea
// quedaría violando el invariante de cantidades.
func (e *Engine) Patch(ctx context.Context, id string, in dto.PatchCertificateRequest) (*entity.InspectionCertificate, error) {
	var out *entity.InspectionCertificate
	err := e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}

		applyHeaderPatch(cert, in)
		cert.UpdatedAt = time.Now()
		if err := certRepo.Update(cert); err != nil {
			return err
		}

		for _, p := range in.Items {
			item, err := itemRepo.GetByID(p.ID)
			if err != nil {
				return err
			}
			if item == nil || item.CertificateID != cert.ID {
				return domain.ErrNotFound
			}
			if p.DeliveredQuantity != nil {
				item.DeliveredQuantity = *p.DeliveredQuantity
			}
			if p.AcceptedQuantity != nil {
				item.AcceptedQuantity = *p.AcceptedQuantity
			}
			if p.RejectedQuantity != nil {
				item.RejectedQuantity = *p.RejectedQuantity
			}
			if p.UnitPrice != nil {
				item.UnitPrice = p.UnitPrice
			}
			if !item.QuantityInvariantOK() {
				return domain.NewValidationError("accepted_quantity", "rejected_quantity")
			}
			item.UpdatedAt = time.Now()
			if err := itemRepo.Update(item); err != nil {
				return err
			}
		}

		items, err := itemRepo.ListByCertificate(cert.ID)
		if err != nil {
			return err
		}
		cert.Items = items
		out = cert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitToStockIncharge avanza INITIATED -> STOCK_DETAILS (flujo de 4 etapas) o
// INITIATED -> CENTRAL_REGISTER (dependencia raíz, 3 etapas). Valida la cabecera completa
// y reporta TODOS los campos faltantes, no solo el primero.
func (e *Engine) SubmitToStockIncharge(ctx context.Context, id string) error {
	return e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}
		if cert.Stage != entity.StageInitiated {
			return domain.ErrConflict
		}

		var missing []string
		if cert.ContractDate.IsZero() {
			missing = append(missing, "date")
		}
		if cert.DepartmentID == "" {
			missing = append(missing, "department")
		}
		if cert.ContractNo == "" {
			missing = append(missing, "contract_no")
		}
		if cert.ContractorName == "" {
			missing = append(missing, "contractor_name")
		}
		if cert.ConsigneeName == "" {
			missing = append(missing, "consignee_name")
		}
		if cert.ConsigneeDesignation == "" {
			missing = append(missing, "consignee_designation")
		}
		if cert.Indenter == "" {
			missing = append(missing, "indenter")
		}
		if cert.IndentNo == "" {
			missing = append(missing, "indent_no")
		}
		items, err := itemRepo.ListByCertificate(cert.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			missing = append(missing, "items")
		}
		if len(missing) > 0 {
			return &domain.ValidationError{Fields: missing}
		}

		next, ok := domainwf.NextStage(cert.Stage, cert.WorkflowType)
		if !ok {
			return domain.ErrConflict
		}
		return e.advance(certRepo, cert.ID, cert.Stage, next, entity.StatusInProgress)
	})
}

// SubmitStockDetails registra los datos de almacén por línea y avanza
// STOCK_DETAILS -> CENTRAL_REGISTER. Solo alcanzable en el flujo de 4 etapas.
// Precondición: toda línea con cantidad aceptada > 0 tiene número de registro,
// página y fecha de entrada.
func (e *Engine) SubmitStockDetails(ctx context.Context, id string, in dto.StockDetailsRequest) error {
	return e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}
		if cert.Stage != entity.StageStockDetails || cert.WorkflowType != entity.WorkflowFourStage {
			return domain.ErrConflict
		}

		// Aplicar los datos del formulario antes de validar la precondición
		byID := make(map[string]dto.StockDetailsItem, len(in.Items))
		for _, d := range in.Items {
			byID[d.ID] = d
		}

		items, err := itemRepo.ListByCertificateForUpdate(cert.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		var missing []string
		for _, item := range items {
			if d, ok := byID[item.ID]; ok {
				item.StockRegisterNo = d.StockRegisterNo
				item.StockRegisterPageNo = d.StockRegisterPageNo
				item.StockEntryDate = d.StockEntryDate
				item.UpdatedAt = now
				if err := itemRepo.Update(item); err != nil {
					return err
				}
			}
			if item.AcceptedQuantity <= 0 {
				continue
			}
			if item.StockRegisterNo == "" {
				missing = append(missing, fmt.Sprintf("items[%s].stock_register_no", item.ID))
			}
			if item.StockRegisterPageNo == "" {
				missing = append(missing, fmt.Sprintf("items[%s].stock_register_page_no", item.ID))
			}
			if item.StockEntryDate == nil {
				missing = append(missing, fmt.Sprintf("items[%s].stock_entry_date", item.ID))
			}
		}
		if len(missing) > 0 {
			return &domain.ValidationError{Fields: missing}
		}

		return e.advance(certRepo, cert.ID, cert.Stage, entity.StageCentralRegister, entity.StatusInProgress)
	})
}

// SubmitCentralRegister avanza CENTRAL_REGISTER -> AUDIT_REVIEW. Es la puerta más
// estricta del pipeline: toda línea con cantidad aceptada > 0 debe estar vinculada a un
// ítem de catálogo. Si no, falla con LinkingIncompleteError reportando el conteo y hasta
// 3 descripciones de ejemplo.
func (e *Engine) SubmitCentralRegister(ctx context.Context, id string) error {
	return e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		_ repository.ItemRepository,
		_ repository.CategoryRepository,
		_ repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(id)
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

		// Snapshot consistente: las líneas se leen con FOR UPDATE para que una vinculación
		// en vuelo no haga mentir al resumen.
		items, err := itemRepo.ListByCertificateForUpdate(cert.ID)
		if err != nil {
			return err
		}
		summary, examples := Summarize(items)
		if !summary.AllLinked {
			return &domain.LinkingIncompleteError{
				UnlinkedCount: summary.UnlinkedCount,
				Examples:      examples,
				Hint:          "vincule cada ítem aceptado a un ítem de catálogo (existente o nuevo) antes de enviar a auditoría",
			}
		}

		return e.advance(certRepo, cert.ID, cert.Stage, entity.StageAuditReview, entity.StatusConfirmed)
	})
}

// SubmitAuditReview aprueba el certificado: AUDIT_REVIEW -> COMPLETED. Es la única
// transición con efecto externo: materializa un recibo de stock por cada línea vinculada,
// en la ubicación resuelta del ítem de catálogo. Si alguna entrada falla, toda la
// transición se revierte (el certificado no queda COMPLETED a medias).
func (e *Engine) SubmitAuditReview(ctx context.Context, id, userID string) error {
	return e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		catalogRepo repository.ItemRepository,
		_ repository.CategoryRepository,
		stockRepo repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}
		if cert.Stage != entity.StageAuditReview {
			return domain.ErrConflict
		}

		items, err := itemRepo.ListByCertificateForUpdate(cert.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			if item.AcceptedQuantity <= 0 {
				continue
			}
			if !item.IsItemLinked || item.LinkedItemID == "" {
				// La puerta de etapa 3 lo impide; si se llega aquí el estado es inconsistente.
				return domain.ErrConflict
			}
			catalogItem, err := catalogRepo.GetByID(item.LinkedItemID)
			if err != nil {
				return err
			}
			if catalogItem == nil {
				return fmt.Errorf("ítem de catálogo %s no existe: %w", item.LinkedItemID, domain.ErrNotFound)
			}
			if catalogItem.DefaultLocationID == "" {
				return fmt.Errorf("ítem de catálogo %s sin ubicación por defecto: %w", catalogItem.Code, domain.ErrInvalidInput)
			}
			entry := &entity.StockEntry{
				ID:                  uuid.New().String(),
				ItemID:              catalogItem.ID,
				LocationID:          catalogItem.DefaultLocationID,
				SourceCertificateID: cert.ID,
				InspectionItemID:    item.ID,
				Quantity:            item.AcceptedQuantity,
				UnitPrice:           item.UnitPrice,
				CreatedAt:           now,
				CreatedBy:           userID,
			}
			if err := stockRepo.Create(entry); err != nil {
				return err
			}
		}

		return e.advance(certRepo, cert.ID, cert.Stage, entity.StageCompleted, entity.StatusCompleted)
	})
}

// Reject aplica el salto terminal a REJECTED desde cualquier etapa no terminal y limpia
// las entidades de catálogo creadas específicamente para la vinculación de ESTE
// certificado. Nunca borra catálogo preexistente, aunque esté vinculado: la procedencia
// (CreatedByCertificateID) más un chequeo referencial deciden borrar-o-advertir.
func (e *Engine) Reject(ctx context.Context, id, userID, reason string) (*dto.RejectionReport, error) {
	if reason == "" {
		return nil, domain.NewValidationError("reason")
	}

	report := &dto.RejectionReport{}
	err := e.txRunner.Run(ctx, func(
		certRepo repository.CertificateRepository,
		itemRepo repository.InspectionItemRepository,
		catalogRepo repository.ItemRepository,
		categoryRepo repository.CategoryRepository,
		stockRepo repository.StockEntryRepository,
	) error {
		cert, err := certRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if cert == nil {
			return domain.ErrNotFound
		}
		if cert.IsTerminal() {
			return &domain.TerminalStateError{Stage: cert.Stage}
		}

		ok, err := certRepo.MarkRejected(cert.ID, cert.Stage, reason, userID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}

		// Primero los ítems de catálogo con procedencia de este certificado: se borran solo
		// si ningún otro certificado los vincula y no tienen recibos de stock.
		created, err := catalogRepo.ListCreatedByCertificate(cert.ID)
		if err != nil {
			return err
		}
		for _, it := range created {
			otherLinks, err := itemRepo.CountLinksToItem(it.ID, cert.ID)
			if err != nil {
				return err
			}
			receipts, err := stockRepo.CountByItem(it.ID)
			if err != nil {
				return err
			}
			if otherLinks > 0 || receipts > 0 {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("el ítem de catálogo %q no se eliminó: está en uso fuera de este certificado", it.Name))
				continue
			}
			if err := catalogRepo.Delete(it.ID); err != nil {
				return err
			}
			report.DeletedItems = append(report.DeletedItems, it.Name)
		}

		// Luego las subcategorías creadas para este certificado: solo si quedaron sin ítems.
		createdCats, err := categoryRepo.ListCreatedByCertificate(cert.ID)
		if err != nil {
			return err
		}
		for _, cat := range createdCats {
			remaining, err := categoryRepo.CountItems(cat.ID)
			if err != nil {
				return err
			}
			if remaining > 0 {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("la subcategoría %q no se eliminó: otros ítems la referencian", cat.Name))
				continue
			}
			if err := categoryRepo.Delete(cat.ID); err != nil {
				return err
			}
			report.DeletedCategories = append(report.DeletedCategories, cat.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// advance aplica el chequeo optimista de etapa; 0 filas afectadas = lectura obsoleta.
func (e *Engine) advance(certRepo repository.CertificateRepository, id, from, to, status string) error {
	ok, err := certRepo.AdvanceStage(id, from, to, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConflict
	}
	return nil
}

// Summarize calcula el resumen de vinculación sobre un snapshot de líneas. Solo cuentan
// las líneas con cantidad aceptada > 0 (las solo-rechazadas no requieren vinculación).
// Devuelve además hasta 3 descripciones de líneas sin vincular para mensajes de error.
func Summarize(items []*entity.InspectionItem) (dto.LinkingSummary, []string) {
	var s dto.LinkingSummary
	var examples []string
	for _, item := range items {
		if item.AcceptedQuantity <= 0 {
			continue
		}
		s.TotalItems++
		if item.IsItemLinked {
			s.LinkedCount++
		} else {
			s.UnlinkedCount++
			if len(examples) < 3 {
				examples = append(examples, item.ItemDescription)
			}
		}
	}
	s.AllLinked = s.UnlinkedCount == 0
	return s, examples
}

// itemQuantityViolations devuelve los campos ofensores de cantidades por línea.
func itemQuantityViolations(items []dto.CertificateItemRequest) []string {
	var fields []string
	for i, it := range items {
		probe := entity.InspectionItem{
			TenderedQuantity:  it.TenderedQuantity,
			DeliveredQuantity: it.DeliveredQuantity,
			AcceptedQuantity:  it.AcceptedQuantity,
			RejectedQuantity:  it.RejectedQuantity,
		}
		if !probe.QuantityInvariantOK() {
			fields = append(fields, fmt.Sprintf("items[%d].quantities", i))
		}
	}
	return fields
}

func applyHeaderPatch(cert *entity.InspectionCertificate, in dto.PatchCertificateRequest) {
	if in.ContractorName != nil {
		cert.ContractorName = *in.ContractorName
	}
	if in.ContractorAddress != nil {
		cert.ContractorAddress = *in.ContractorAddress
	}
	if in.ConsigneeName != nil {
		cert.ConsigneeName = *in.ConsigneeName
	}
	if in.ConsigneeDesignation != nil {
		cert.ConsigneeDesignation = *in.ConsigneeDesignation
	}
	if in.Indenter != nil {
		cert.Indenter = *in.Indenter
	}
	if in.IndentNo != nil {
		cert.IndentNo = *in.IndentNo
	}
	if in.DateOfDelivery != nil {
		cert.DateOfDelivery = in.DateOfDelivery
	}
	if in.DeliveryType != nil {
		cert.DeliveryType = *in.DeliveryType
	}
	if in.InspectedBy != nil {
		cert.InspectedBy = *in.InspectedBy
	}
	if in.DateOfInspection != nil {
		cert.DateOfInspection = in.DateOfInspection
	}
	if in.FinanceCheckDate != nil {
		cert.FinanceCheckDate = in.FinanceCheckDate
	}
	if in.Remarks != nil {
		cert.Remarks = *in.Remarks
	}
}

package workflow

import (
	"context"
	"fmt"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// CertificatePDFGenerator genera la hoja imprimible del certificado de inspección.
type CertificatePDFGenerator interface {
	GenerateCertificatePDF(
		ctx context.Context,
		cert *entity.InspectionCertificate,
		dept *entity.Department,
		entries []*entity.StockEntry,
	) ([]byte, error)
}

// PDFUseCase genera la representación imprimible de un certificado.
// Solo se permite una vez que el certificado está COMPLETED (el documento incluye los
// recibos de stock materializados en la aprobación).
type PDFUseCase struct {
	certRepo  repository.CertificateRepository
	itemRepo  repository.InspectionItemRepository
	deptRepo  repository.DepartmentRepository
	stockRepo repository.StockEntryRepository
	generator CertificatePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	certRepo repository.CertificateRepository,
	itemRepo repository.InspectionItemRepository,
	deptRepo repository.DepartmentRepository,
	stockRepo repository.StockEntryRepository,
	generator CertificatePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		certRepo:  certRepo,
		itemRepo:  itemRepo,
		deptRepo:  deptRepo,
		stockRepo: stockRepo,
		generator: generator,
	}
}

// DownloadCertificatePDF recupera el certificado completo, verifica que está COMPLETED
// y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el certificado no existe.
//   - domain.ErrInvalidInput     si el certificado aún no está COMPLETED.
func (uc *PDFUseCase) DownloadCertificatePDF(ctx context.Context, certificateID string) (pdfBytes []byte, filename string, err error) {
	cert, err := uc.certRepo.GetByID(certificateID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener certificado: %w", err)
	}
	if cert == nil {
		return nil, "", domain.ErrNotFound
	}
	if cert.Stage != entity.StageCompleted {
		return nil, "", fmt.Errorf("%w: el certificado está en etapa %s, solo se imprime una vez COMPLETED",
			domain.ErrInvalidInput, cert.Stage)
	}

	items, err := uc.itemRepo.ListByCertificate(cert.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	cert.Items = items

	dept, err := uc.deptRepo.GetByID(cert.DepartmentID)
	if err != nil || dept == nil {
		return nil, "", fmt.Errorf("pdf: obtener dependencia: %w", err)
	}

	entries, err := uc.stockRepo.ListByCertificate(cert.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener recibos de stock: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateCertificatePDF(ctx, cert, dept, entries)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	filename = fmt.Sprintf("certificado_%s.pdf", cert.ContractNo)
	return pdfBytes, filename, nil
}

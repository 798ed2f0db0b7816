package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// InspectionItemRepository define el puerto para las líneas del certificado.
type InspectionItemRepository interface {
	Create(item *entity.InspectionItem) error
	GetByID(id string) (*entity.InspectionItem, error)
	Update(item *entity.InspectionItem) error
	ListByCertificate(certificateID string) ([]*entity.InspectionItem, error)
	// ListByCertificateForUpdate bloquea las líneas (SELECT FOR UPDATE) para que el resumen
	// de vinculación y la puerta de etapa 3 lean un snapshot consistente.
	ListByCertificateForUpdate(certificateID string) ([]*entity.InspectionItem, error)
	// CountLinksToItem cuenta líneas de otros certificados vinculadas al ítem de catálogo
	// (chequeo referencial del cleanup de rechazo).
	CountLinksToItem(catalogItemID, excludeCertificateID string) (int, error)
}

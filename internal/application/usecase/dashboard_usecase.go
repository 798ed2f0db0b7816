package usecase

import "github.com/jhoicas/Activos-api/internal/domain/repository"

// DashboardSummary agregados para la pantalla inicial: certificados por etapa/estado y
// pendientes por dependencia.
type DashboardSummary struct {
	ByStage      []repository.StageCount `json:"by_stage"`
	ByStatus     []repository.StageCount `json:"by_status"`
	ByDepartment []repository.StageCount `json:"pending_by_department"`
}

// DashboardUseCase consultas agregadas del tablero.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary arma el resumen del tablero.
func (uc *DashboardUseCase) GetSummary() (*DashboardSummary, error) {
	byStage, err := uc.analyticsRepo.CountCertificatesByStage()
	if err != nil {
		return nil, err
	}
	byStatus, err := uc.analyticsRepo.CountCertificatesByStatus()
	if err != nil {
		return nil, err
	}
	byDept, err := uc.analyticsRepo.CountPendingByDepartment()
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{ByStage: byStage, ByStatus: byStatus, ByDepartment: byDept}, nil
}

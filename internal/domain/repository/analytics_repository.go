package repository

// StageCount conteo de certificados por etapa o estado.
type StageCount struct {
	Key   string
	Count int
}

// AnalyticsRepository define el puerto para consultas agregadas del tablero.
type AnalyticsRepository interface {
	CountCertificatesByStage() ([]StageCount, error)
	CountCertificatesByStatus() ([]StageCount, error)
	CountPendingByDepartment() ([]StageCount, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación del puerto AnalyticsRepository sobre PostgreSQL.
// Consultas agregadas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountCertificatesByStage conteo de certificados agrupado por etapa.
func (r *AnalyticsRepo) CountCertificatesByStage() ([]repository.StageCount, error) {
	return r.countBy(`SELECT stage, COUNT(*) FROM inspection_certificates GROUP BY stage ORDER BY stage`)
}

// CountCertificatesByStatus conteo de certificados agrupado por estado.
func (r *AnalyticsRepo) CountCertificatesByStatus() ([]repository.StageCount, error) {
	return r.countBy(`SELECT status, COUNT(*) FROM inspection_certificates GROUP BY status ORDER BY status`)
}

// CountPendingByDepartment conteo de certificados no terminales por dependencia.
func (r *AnalyticsRepo) CountPendingByDepartment() ([]repository.StageCount, error) {
	return r.countBy(
		`SELECT department_id, COUNT(*) FROM inspection_certificates
		 WHERE stage NOT IN ('COMPLETED', 'REJECTED')
		 GROUP BY department_id ORDER BY department_id`)
}

func (r *AnalyticsRepo) countBy(sql string) ([]repository.StageCount, error) {
	rows, err := r.q.Query(context.Background(), sql)
	if err != nil {
		return nil, fmt.Errorf("count certificates: %w", err)
	}
	return scanStageCounts(rows)
}

func scanStageCounts(rows pgx.Rows) ([]repository.StageCount, error) {
	defer rows.Close()
	var out []repository.StageCount
	for rows.Next() {
		var sc repository.StageCount
		if err := rows.Scan(&sc.Key, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

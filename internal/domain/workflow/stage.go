// Package workflow contiene las reglas puras del flujo de certificados de inspección:
// el orden de etapas, la regla de salto de STOCK_DETAILS y la tabla de campos
// obligatorios por tipo de seguimiento. Sin dependencias de infraestructura.
package workflow

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// stageOrder define el orden monótono de etapas. REJECTED queda fuera: es un salto
// terminal alcanzable desde cualquier etapa no terminal.
var stageOrder = map[string]int{
	entity.StageInitiated:       0,
	entity.StageStockDetails:    1,
	entity.StageCentralRegister: 2,
	entity.StageAuditReview:     3,
	entity.StageCompleted:       4,
}

// IsTerminal indica si una etapa no admite más transiciones.
func IsTerminal(stage string) bool {
	return stage == entity.StageCompleted || stage == entity.StageRejected
}

// StageRank devuelve la posición de la etapa en el pipeline (-1 para REJECTED o desconocida).
func StageRank(stage string) int {
	if r, ok := stageOrder[stage]; ok {
		return r
	}
	return -1
}

// NextStage devuelve la etapa siguiente según el tipo de flujo. En el flujo de 3 etapas
// (dependencia raíz) INITIATED pasa directo a CENTRAL_REGISTER, sin visitar STOCK_DETAILS.
func NextStage(current, workflowType string) (string, bool) {
	switch current {
	case entity.StageInitiated:
		if workflowType == entity.WorkflowThreeStage {
			return entity.StageCentralRegister, true
		}
		return entity.StageStockDetails, true
	case entity.StageStockDetails:
		return entity.StageCentralRegister, true
	case entity.StageCentralRegister:
		return entity.StageAuditReview, true
	case entity.StageAuditReview:
		return entity.StageCompleted, true
	}
	return "", false
}

// CanReject indica si desde la etapa actual se permite el salto terminal a REJECTED.
func CanReject(stage string) bool {
	return !IsTerminal(stage) && StageRank(stage) >= 0
}

// WorkflowTypeFor decide el tipo de flujo a partir de la dependencia: raíz => 3 etapas.
// Se calcula una sola vez al crear el certificado y se persiste (un cambio posterior en
// la jerarquía no altera certificados en curso).
func WorkflowTypeFor(dept *entity.Department) string {
	if dept.IsRoot() {
		return entity.WorkflowThreeStage
	}
	return entity.WorkflowFourStage
}

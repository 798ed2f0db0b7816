package auth

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// Capacidades de la plataforma. Cada transición del flujo declara la capacidad que exige
// y el middleware la evalúa una sola vez, en lugar de predicados booleanos dispersos por
// pantalla (isStockIncharge, hasPermission(...), etc.).
const (
	CapSubmitCertificate = "CAN_SUBMIT_CERTIFICATE"
	CapFillStockDetails  = "CAN_FILL_STOCK_DETAILS"
	CapLinkItems         = "CAN_LINK_ITEMS"
	CapAuditApprove      = "CAN_AUDIT_APPROVE"
	CapReject            = "CAN_REJECT"
	CapManageCatalog     = "CAN_MANAGE_CATALOG"
)

// capabilitiesByRole mapa rol → capacidades. admin las tiene todas.
var capabilitiesByRole = map[string][]string{
	entity.RoleAdmin: {
		CapSubmitCertificate, CapFillStockDetails, CapLinkItems,
		CapAuditApprove, CapReject, CapManageCatalog,
	},
	entity.RoleIndenter:         {CapSubmitCertificate},
	entity.RoleStoreIncharge:    {CapSubmitCertificate, CapFillStockDetails, CapReject},
	entity.RoleCentralRegistrar: {CapLinkItems, CapManageCatalog, CapReject},
	entity.RoleAuditor:          {CapAuditApprove, CapReject},
}

// CapabilitiesFor devuelve las capacidades del rol (copia; vacío para roles desconocidos).
func CapabilitiesFor(role string) []string {
	caps := capabilitiesByRole[role]
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}

// HasCapability evalúa si el rol posee la capacidad.
func HasCapability(role, capability string) bool {
	for _, c := range capabilitiesByRole[role] {
		if c == capability {
			return true
		}
	}
	return false
}

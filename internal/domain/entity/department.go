package entity

import "time"

// Department representa una unidad organizacional. Una dependencia raíz (ParentID vacío)
// activa el flujo de 3 etapas: sus certificados omiten STOCK_DETAILS.
type Department struct {
	ID        string
	ParentID  string // vacío si es unidad raíz
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la dependencia no tiene padre en la jerarquía organizacional.
func (d *Department) IsRoot() bool {
	return d.ParentID == ""
}

// Package pdf implementa la hoja imprimible del certificado de inspección aprobado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Dependencia  │  N° Contrato + Fecha                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRATISTA: nombre + dirección                            │
//	│  CONSIGNATARIO: nombre + designación + indentador           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Licitada | Aceptada | Rechazada | $   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECIBOS DE STOCK: ítem | ubicación | cantidad              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: inspector + fechas de inspección y finanzas        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa workflow.CertificatePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCertificatePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCertificatePDF(
	_ context.Context,
	cert *entity.InspectionCertificate,
	dept *entity.Department,
	entries []*entity.StockEntry,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Certificado de Inspección", true).
		WithAuthor(dept.Name, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(cert, dept))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contractorRow(cert))
	m.AddRows(consigneeRow(cert))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas inspeccionadas
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(cert.Items) {
		m.AddRows(r)
	}

	// Recibos de stock materializados en la aprobación
	if len(entries) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		for _, r := range stockEntryRows(entries) {
			m.AddRows(r)
		}
	}

	// Footer: inspección y finanzas
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(inspectionFooterRow(cert))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: dependencia (izq) y N° contrato + fechas (der).
func headerRow(cert *entity.InspectionCertificate, dept *entity.Department) core.Row {
	fecha := cert.ContractDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(dept.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+dept.Code, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CERTIFICADO DE INSPECCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(cert.ContractNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Contrato: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// contractorRow: datos del contratista.
func contractorRow(cert *entity.InspectionCertificate) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTRATISTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Dirección: %s   |   Entrega: %s",
				cert.ContractorName,
				nonEmpty(cert.ContractorAddress, "—"),
				cert.DeliveryType,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// consigneeRow: datos del consignatario e indentación.
func consigneeRow(cert *entity.InspectionCertificate) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CONSIGNATARIO / INDENTACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cert.ConsigneeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cargo: %s   |   Indentador: %s   |   Indent N°: %s",
				nonEmpty(cert.ConsigneeDesignation, "—"),
				nonEmpty(cert.Indenter, "—"),
				nonEmpty(cert.IndentNo, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 5, align.Left),
		h("Licitada", 2, align.Right),
		h("Aceptada", 2, align.Right),
		h("Rechazada", 1, align.Right),
		h("P. Unit.", 2, align.Right),
	)
}

// tableItemRows: una fila por línea inspeccionada.
func tableItemRows(items []*entity.InspectionItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		precio := "—"
		if it.UnitPrice != nil {
			precio = "$" + formatMoney(it.UnitPrice.StringFixed(0))
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				it.ItemDescription,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d %s", it.TenderedQuantity, it.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.AcceptedQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.RejectedQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				precio,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// stockEntryRows: recibos de stock generados por la aprobación.
func stockEntryRows(entries []*entity.StockEntry) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RECIBOS DE STOCK GENERADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, e := range entries {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(
				"Ítem "+e.ItemID,
				props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2},
			)),
			col.New(4).Add(text.New(
				"Ubicación "+e.LocationID,
				props.Text{Size: 7, Color: colorGray, Top: 0.5},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d und.", e.Quantity),
				props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 0.5, Right: 1},
			)),
		))
	}
	return rows
}

// inspectionFooterRow: inspector y fechas de cierre.
func inspectionFooterRow(cert *entity.InspectionCertificate) core.Row {
	inspeccion, finanzas, entrega := "—", "—", "—"
	if cert.DateOfInspection != nil {
		inspeccion = cert.DateOfInspection.Format("02/01/2006")
	}
	if cert.FinanceCheckDate != nil {
		finanzas = cert.FinanceCheckDate.Format("02/01/2006")
	}
	if cert.DateOfDelivery != nil {
		entrega = cert.DateOfDelivery.Format("02/01/2006")
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("Inspeccionado por: "+nonEmpty(cert.InspectedBy, "—"), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
			text.New(fmt.Sprintf("Entrega: %s   |   Inspección: %s   |   Verificación financiera: %s",
				entrega, inspeccion, finanzas,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

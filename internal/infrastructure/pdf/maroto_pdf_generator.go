// Package pdf genera la versión imprimible de los reportes de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Reporte + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍA: nombre + fecha de corte                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Métrica | Valor                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NIVEL DE RIESGO                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/lot-pos/lot-api/internal/application/reports"
	"github.com/lot-pos/lot-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	businessName string
}

// NewMarotoPDFGenerator construye el generador con el nombre del negocio para el encabezado.
func NewMarotoPDFGenerator(businessName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{businessName: businessName}
}

// CategoryReportPDF genera el PDF del reporte de categoría y devuelve sus bytes.
func (g *MarotoPDFGenerator) CategoryReportPDF(report *entity.CategoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario por Categoría", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(categoryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(metricRow("Total de productos", fmt.Sprintf("%d", report.TotalProducts)))
	m.AddRows(metricRow("Stock acumulado", fmt.Sprintf("%d unidades", report.TotalStock)))
	m.AddRows(metricRow("Valor del inventario", "$ "+report.TotalInventoryValue.StringFixed(2)))
	m.AddRows(metricRow("Productos en stock bajo", fmt.Sprintf("%d", report.LowStockProductCount)))

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(riskRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del negocio (izq), título y fecha (der).
func (g *MarotoPDFGenerator) headerRow(report *entity.CategoryReport) core.Row {
	fecha := report.QueryDate.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func categoryRow(report *entity.CategoryReport) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CATEGORÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(report.CategoryName, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
		),
	)
}

func metricRow(label, value string) core.Row {
	return row.New(8).Add(
		col.New(7).Add(text.New(label, props.Text{Size: 9, Top: 1})),
		col.New(5).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
		})),
	)
}

func riskRow(report *entity.CategoryReport) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Nivel de riesgo: "+report.RiskLevel(), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

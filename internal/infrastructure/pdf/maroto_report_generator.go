// Package pdf implementa el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app  │  Fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Nombre | Categoría | Stock | Mín. | Precio    │
//	│         (items en stock bajo resaltados en rojo)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: items / unidades / stock bajo / agotados          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/tu-usuario/inventario-tracker/internal/application/report"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
)

var _ report.InventoryPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.InventoryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(
	_ context.Context,
	items []*entity.Item,
	categoryNames map[int64]string,
	stats *entity.InventoryStats,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, it := range items {
		m.AddRows(itemRow(it, categoryNames))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(stats))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Nombre", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Precio", 2, align.Right),
	)
}

// itemRow: una fila por item; stock bajo en rojo.
func itemRow(it *entity.Item, categoryNames map[int64]string) core.Row {
	stockColor := colorGray
	if it.LowStock() {
		stockColor = colorAlert
	}
	sku := "—"
	if it.SKU != nil {
		sku = *it.SKU
	}
	categoryName := "—"
	if it.CategoryID != nil {
		if name, ok := categoryNames[*it.CategoryID]; ok {
			categoryName = name
		}
	}
	price := "—"
	if it.Price != nil {
		price = "$" + it.Price.StringFixed(2)
	}
	cell := func(s string, size int, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
		}))
	}
	return row.New(7).Add(
		cell(sku, 2, align.Left, colorGray),
		cell(it.Name, 4, align.Left, nil),
		cell(categoryName, 2, align.Left, colorGray),
		cell(fmt.Sprintf("%d", it.CurrentStock), 1, align.Right, stockColor),
		cell(fmt.Sprintf("%d", it.MinStock), 1, align.Right, colorGray),
		cell(price, 2, align.Right, colorGray),
	)
}

// totalsRow: agregados del catálogo.
func totalsRow(stats *entity.InventoryStats) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, color *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: color})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(4).Add(
			label("Items:"),
			label("Unidades totales:"),
			label("En stock bajo:"),
			label("Agotados:"),
		),
		col.New(2).Add(
			value(fmt.Sprintf("%d", stats.TotalItems), nil),
			value(fmt.Sprintf("%d", stats.TotalUnits), nil),
			value(fmt.Sprintf("%d", stats.LowStockItems), colorAlert),
			value(fmt.Sprintf("%d", stats.OutOfStockItems), colorAlert),
		),
	)
}

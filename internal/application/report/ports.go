package report

import (
	"context"
	"time"

	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
)

// InventoryPDFGenerator renderiza el reporte de inventario a PDF.
// categoryNames mapea categoryId -> nombre para la columna de categoría.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(
		ctx context.Context,
		items []*entity.Item,
		categoryNames map[int64]string,
		stats *entity.InventoryStats,
		generatedAt time.Time,
	) ([]byte, error)
}

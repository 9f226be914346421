package report

import (
	"context"
	"time"

	"github.com/tu-usuario/inventario-tracker/internal/domain/repository"
)

// PDFUseCase genera el reporte de inventario en PDF: catálogo completo con
// stock actual, mínimos y agregados, marcando los items en stock bajo.
type PDFUseCase struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	generator    InventoryPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	generator InventoryPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{itemRepo: itemRepo, categoryRepo: categoryRepo, generator: generator}
}

// GenerateInventoryReport arma los datos (items, nombres de categoría, stats)
// y delega el render al generador.
func (uc *PDFUseCase) GenerateInventoryReport(ctx context.Context) ([]byte, error) {
	items, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	stats, err := uc.itemRepo.Stats()
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return uc.generator.GenerateInventoryPDF(ctx, items, names, stats, time.Now())
}

package usecase

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/inventario-tracker/internal/application/dto"
	"github.com/tu-usuario/inventario-tracker/internal/domain"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
	"github.com/tu-usuario/inventario-tracker/internal/domain/repository"
)

// recentMovementsLimit movimientos incluidos en el detalle de un item.
const recentMovementsLimit = 10

// ItemUseCase CRUD y consultas del catálogo de items.
//
// Política de stock: el alta puede fijar un stock inicial (baseline), pero
// current_stock no es editable por esta vía — todo cambio posterior pasa por
// el Ledger. El DTO de update ni siquiera expone el campo.
//
// Política de borrado: eliminar un item conserva su historial de movimientos
// con la referencia al item en null (FK ON DELETE SET NULL).
type ItemUseCase struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	movRepo      repository.StockMovementRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	movRepo repository.StockMovementRepository,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, categoryRepo: categoryRepo, movRepo: movRepo}
}

// Create crea un item con su stock inicial. ErrDuplicate si el SKU ya existe;
// ErrInvalidInput si la categoría no existe o hay cantidades negativas.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.InitialStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != nil && *in.SKU != "" {
		existing, err := uc.itemRepo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	var category *entity.Category
	if in.CategoryID != nil {
		var err error
		category, err = uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	item := &entity.Item{
		Name:         in.Name,
		SKU:          normalizeSKU(in.SKU),
		CurrentStock: in.InitialStock,
		MinStock:     in.MinStock,
		Price:        in.Price,
		CategoryID:   in.CategoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item, category), nil
}

// List devuelve todos los items, por nombre ascendente.
func (uc *ItemUseCase) List() ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// ListByCategory devuelve los items de una categoría.
func (uc *ItemUseCase) ListByCategory(categoryID int64) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// SearchByName busca items por nombre, sin distinguir mayúsculas ni acentos.
func (uc *ItemUseCase) SearchByName(name string) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.SearchByName(foldSearchTerm(name))
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// ListLowStock devuelve items en o por debajo de su stock mínimo, stock ascendente.
func (uc *ItemUseCase) ListLowStock() ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

// GetByID devuelve un item con sus últimos movimientos. ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(id int64) (*dto.ItemDetailResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	var category *entity.Category
	if item.CategoryID != nil {
		category, err = uc.categoryRepo.GetByID(*item.CategoryID)
		if err != nil {
			return nil, err
		}
	}
	movements, err := uc.movRepo.ListRecentByItem(id, recentMovementsLimit)
	if err != nil {
		return nil, err
	}
	detail := &dto.ItemDetailResponse{
		ItemResponse:   *toItemResponse(item, category),
		StockMovements: make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		detail.StockMovements = append(detail.StockMovements, *movementToResponse(m))
	}
	return detail, nil
}

// Update modifica los campos de catálogo de un item. El stock actual no es
// editable aquí: los cambios de stock pasan únicamente por el Ledger.
func (uc *ItemUseCase) Update(id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.SKU != nil {
		if *in.SKU != "" {
			existing, err := uc.itemRepo.GetBySKU(*in.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		item.SKU = normalizeSKU(in.SKU)
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = in.Price
	}
	var category *entity.Category
	if in.CategoryID != nil {
		category, err = uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrInvalidInput
		}
		item.CategoryID = in.CategoryID
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item, category), nil
}

// Delete elimina un item. Sus movimientos se conservan huérfanos (itemId null).
func (uc *ItemUseCase) Delete(id int64) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(id)
}

// Stats devuelve los agregados del catálogo, recalculados en cada llamada.
func (uc *ItemUseCase) Stats() (*dto.InventoryStatsResponse, error) {
	stats, err := uc.itemRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.InventoryStatsResponse{
		TotalItems:      stats.TotalItems,
		TotalUnits:      stats.TotalUnits,
		LowStockItems:   stats.LowStockItems,
		OutOfStockItems: stats.OutOfStockItems,
	}, nil
}

// foldSearchTerm normaliza un término de búsqueda: minúsculas y sin
// diacríticos (NFD + eliminación de marcas combinantes), de modo que
// "Café" y "cafe" busquen lo mismo. El repositorio hace lo propio con
// los nombres almacenados (unaccent + lower).
func foldSearchTerm(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// normalizeSKU convierte un SKU vacío en nil para que la unicidad parcial
// del índice no choque entre items sin SKU.
func normalizeSKU(sku *string) *string {
	if sku == nil || strings.TrimSpace(*sku) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*sku)
	return &trimmed
}

func toItemResponse(item *entity.Item, category *entity.Category) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		Price:        item.Price,
		CategoryID:   item.CategoryID,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
	if category != nil {
		resp.Category = &dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			CreatedAt:   category.CreatedAt,
			UpdatedAt:   category.UpdatedAt,
		}
	}
	return resp
}

func toItemResponses(items []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it, nil))
	}
	return out
}

func movementToResponse(d *entity.StockMovementDetail) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        d.ID,
		ItemID:    d.ItemID,
		UserID:    d.UserID,
		Type:      d.Type,
		Quantity:  d.Quantity,
		Reason:    d.Reason,
		CreatedAt: d.CreatedAt,
	}
	if d.User != nil {
		resp.User = &dto.MovementUserRef{
			ID:          d.User.ID,
			DisplayName: d.User.DisplayName,
			Email:       d.User.Email,
		}
	}
	return resp
}

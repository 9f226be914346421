package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-tracker/internal/application/dto"
	"github.com/tu-usuario/inventario-tracker/internal/application/usecase"
	"github.com/tu-usuario/inventario-tracker/internal/domain"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items  map[int64]*entity.Item
	nextID int64

	// lastSearchTerm captura el término que llega al repositorio,
	// ya normalizado por el caso de uso.
	lastSearchTerm string
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*entity.Item)}
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.nextID++
	item.ID = r.nextID
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id int64) (*entity.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	for _, item := range r.items {
		if item.SKU != nil && *item.SKU == sku {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id int64) (*entity.Item, error) { return r.GetByID(id) }

func (r *fakeItemRepo) Update(item *entity.Item) error {
	// Como la capa de persistencia real: current_stock no se toca aquí.
	stored := r.items[item.ID]
	cp := *item
	cp.CurrentStock = stored.CurrentStock
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateStock(id int64, stock int) error {
	r.items[id].CurrentStock = stock
	return nil
}

func (r *fakeItemRepo) List() ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListByCategory(categoryID int64) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.items {
		if item.CategoryID != nil && *item.CategoryID == categoryID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) SearchByName(term string) ([]*entity.Item, error) {
	r.lastSearchTerm = term
	return nil, nil
}

func (r *fakeItemRepo) ListLowStock() ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.items {
		if item.LowStock() {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Delete(id int64) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) Stats() (*entity.InventoryStats, error) {
	var stats entity.InventoryStats
	for _, item := range r.items {
		stats.TotalItems++
		stats.TotalUnits += int64(item.CurrentStock)
		if item.LowStock() {
			stats.LowStockItems++
		}
		if item.CurrentStock == 0 {
			stats.OutOfStockItems++
		}
	}
	return &stats, nil
}

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List() ([]*entity.CategoryWithCount, error) {
	out := make([]*entity.CategoryWithCount, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, &entity.CategoryWithCount{Category: *c})
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id int64) error {
	delete(r.categories, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovementDetail
}

func (r *fakeMovementRepo) Create(*entity.StockMovement) error { return nil }

func (r *fakeMovementRepo) GetDetail(int64) (*entity.StockMovementDetail, error) { return nil, nil }

func (r *fakeMovementRepo) List(entity.MovementFilter) ([]*entity.StockMovementDetail, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListRecentByItem(itemID int64, limit int) ([]*entity.StockMovementDetail, error) {
	var out []*entity.StockMovementDetail
	for _, m := range r.movements {
		if m.ItemID != nil && *m.ItemID == itemID {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) Stats(from, to *time.Time) (*entity.MovementStats, error) {
	return &entity.MovementStats{}, nil
}

func newItemUseCase() (*usecase.ItemUseCase, *fakeItemRepo, *fakeCategoryRepo, *fakeMovementRepo) {
	itemRepo := newFakeItemRepo()
	categoryRepo := newFakeCategoryRepo()
	movRepo := &fakeMovementRepo{}
	return usecase.NewItemUseCase(itemRepo, categoryRepo, movRepo), itemRepo, categoryRepo, movRepo
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_ConStockInicial(t *testing.T) {
	uc, repo, _, _ := newItemUseCase()

	price := decimal.NewFromFloat(9.99)
	out, err := uc.Create(dto.CreateItemRequest{
		Name: "Tornillos", SKU: strPtr("TOR-001"), InitialStock: 25, MinStock: 5, Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, out.CurrentStock, "el stock inicial es el baseline del item")
	assert.Equal(t, "Tornillos", out.Name)
	require.NotNil(t, out.SKU)
	assert.Equal(t, "TOR-001", *out.SKU)
	assert.Equal(t, 25, repo.items[out.ID].CurrentStock)
}

func TestItemCreate_Validaciones(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	negPrice := decimal.NewFromInt(-1)
	cases := []struct {
		name string
		in   dto.CreateItemRequest
		want error
	}{
		{"nombre vacío", dto.CreateItemRequest{Name: ""}, domain.ErrInvalidInput},
		{"stock inicial negativo", dto.CreateItemRequest{Name: "X", InitialStock: -1}, domain.ErrInvalidInput},
		{"stock mínimo negativo", dto.CreateItemRequest{Name: "X", MinStock: -1}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateItemRequest{Name: "X", Price: &negPrice}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestItemCreate_SKUDuplicado(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	_, err := uc.Create(dto.CreateItemRequest{Name: "Tornillos", SKU: strPtr("TOR-001")})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateItemRequest{Name: "Tuercas", SKU: strPtr("TOR-001")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_SKUVacioNoColisiona(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	a, err := uc.Create(dto.CreateItemRequest{Name: "Tornillos", SKU: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, a.SKU, "SKU vacío se normaliza a nil")

	_, err = uc.Create(dto.CreateItemRequest{Name: "Tuercas", SKU: strPtr("  ")})
	require.NoError(t, err, "dos items sin SKU no deben chocar entre sí")
}

func TestItemCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	badID := int64(404)
	_, err := uc.Create(dto.CreateItemRequest{Name: "Tornillos", CategoryID: &badID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_NoTocaElStock(t *testing.T) {
	uc, repo, _, _ := newItemUseCase()

	created, err := uc.Create(dto.CreateItemRequest{Name: "Tornillos", InitialStock: 50})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateItemRequest{
		Name: strPtr("Tornillos galvanizados"), MinStock: intPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, "Tornillos galvanizados", out.Name)
	assert.Equal(t, 10, out.MinStock)
	assert.Equal(t, 50, out.CurrentStock, "el stock no cambia por catálogo")
	assert.Equal(t, 50, repo.items[created.ID].CurrentStock)
}

func TestItemUpdate_Inexistente(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	_, err := uc.Update(404, dto.UpdateItemRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUpdate_SKUDeOtroItem(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	_, err := uc.Create(dto.CreateItemRequest{Name: "Tornillos", SKU: strPtr("TOR-001")})
	require.NoError(t, err)
	b, err := uc.Create(dto.CreateItemRequest{Name: "Tuercas", SKU: strPtr("TUE-001")})
	require.NoError(t, err)

	_, err = uc.Update(b.ID, dto.UpdateItemRequest{SKU: strPtr("TOR-001")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemDelete_Inexistente(t *testing.T) {
	uc, _, _, _ := newItemUseCase()
	assert.ErrorIs(t, uc.Delete(404), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de consultas
// ──────────────────────────────────────────────────────────────────────────────

// El término de búsqueda llega al repositorio normalizado: minúsculas y sin
// diacríticos, para que "Café" y "cafe" encuentren lo mismo.
func TestItemSearch_NormalizaElTermino(t *testing.T) {
	uc, repo, _, _ := newItemUseCase()

	_, err := uc.SearchByName("  Café CON Leche ")
	require.NoError(t, err)
	assert.Equal(t, "cafe con leche", repo.lastSearchTerm)

	_, err = uc.SearchByName("Ñandú")
	require.NoError(t, err)
	assert.Equal(t, "nandu", repo.lastSearchTerm)
}

func TestItemGetByID_IncluyeMovimientosRecientes(t *testing.T) {
	uc, _, _, movRepo := newItemUseCase()

	created, err := uc.Create(dto.CreateItemRequest{Name: "Tornillos", InitialStock: 10})
	require.NoError(t, err)

	itemID := created.ID
	for i := 0; i < 12; i++ {
		movRepo.movements = append(movRepo.movements, &entity.StockMovementDetail{
			StockMovement: entity.StockMovement{
				ID: int64(i + 1), ItemID: &itemID, UserID: 1,
				Type: entity.MovementTypeIN, Quantity: 1,
			},
		})
	}

	detail, err := uc.GetByID(itemID)
	require.NoError(t, err)
	assert.Len(t, detail.StockMovements, 10, "el detalle incluye a lo sumo los últimos 10 movimientos")
}

func TestItemStats_Agregados(t *testing.T) {
	uc, _, _, _ := newItemUseCase()

	_, err := uc.Create(dto.CreateItemRequest{Name: "A", InitialStock: 10, MinStock: 2})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateItemRequest{Name: "B", InitialStock: 1, MinStock: 5})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateItemRequest{Name: "C", InitialStock: 0, MinStock: 0})
	require.NoError(t, err)

	stats, err := uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(11), stats.TotalUnits)
	assert.Equal(t, int64(2), stats.LowStockItems, "B está bajo mínimo y C en cero con mínimo cero")
	assert.Equal(t, int64(1), stats.OutOfStockItems)
}

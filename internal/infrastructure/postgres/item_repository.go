package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/inventario-tracker/internal/domain"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
	"github.com/tu-usuario/inventario-tracker/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, sku, current_stock, min_stock, price, category_id, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL
// (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item con su stock inicial y asigna su ID.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (name, sku, current_stock, min_stock, price, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.Name, item.SKU, item.CurrentStock, item.MinStock, item.Price, item.CategoryID,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id int64) (*entity.Item, error) {
	return r.scanOne(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetBySKU obtiene un item por SKU. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	return r.scanOne(`SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el item y bloquea su fila (SELECT FOR UPDATE).
// Serializa el read-check-write del Ledger por item; items distintos no se
// bloquean entre sí.
func (r *ItemRepo) GetForUpdate(id int64) (*entity.Item, error) {
	return r.scanOne(`SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) scanOne(query string, arg any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.Name, &it.SKU, &it.CurrentStock, &it.MinStock, &it.Price, &it.CategoryID,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update actualiza los campos de catálogo. current_stock queda fuera a
// propósito: solo UpdateStock lo escribe, desde el Ledger.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, sku = $3, min_stock = $4, price = $5, category_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.SKU, item.MinStock, item.Price, item.CategoryID, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock escribe el stock resultante de un movimiento (solo Ledger, en tx).
func (r *ItemRepo) UpdateStock(id int64, stock int) error {
	query := `UPDATE items SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// List devuelve todos los items, por nombre ascendente.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	return r.scanMany(`SELECT ` + itemColumns + ` FROM items ORDER BY name ASC`)
}

// ListByCategory devuelve los items de una categoría, por nombre ascendente.
func (r *ItemRepo) ListByCategory(categoryID int64) ([]*entity.Item, error) {
	return r.scanMany(`SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY name ASC`, categoryID)
}

// SearchByName busca por nombre sin distinguir mayúsculas ni acentos.
// term ya viene normalizado desde la aplicación; unaccent hace lo propio
// con los nombres almacenados.
func (r *ItemRepo) SearchByName(term string) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE unaccent(lower(name)) LIKE '%' || $1 || '%'
		ORDER BY name ASC`
	return r.scanMany(query, term)
}

// ListLowStock devuelve items con current_stock <= min_stock, stock ascendente.
func (r *ItemRepo) ListLowStock() ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE current_stock <= min_stock
		ORDER BY current_stock ASC`
	return r.scanMany(query)
}

func (r *ItemRepo) scanMany(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.SKU, &it.CurrentStock, &it.MinStock, &it.Price,
			&it.CategoryID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina un item; sus movimientos quedan con item_id null (FK ON DELETE SET NULL).
func (r *ItemRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Stats agrega totales del catálogo en una sola consulta.
func (r *ItemRepo) Stats() (*entity.InventoryStats, error) {
	query := `
		SELECT
		    COUNT(*)                                                    AS total_items,
		    COALESCE(SUM(current_stock), 0)                             AS total_units,
		    COUNT(*) FILTER (WHERE current_stock <= min_stock)          AS low_stock_items,
		    COUNT(*) FILTER (WHERE current_stock = 0)                   AS out_of_stock_items
		FROM items`
	var s entity.InventoryStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalItems, &s.TotalUnits, &s.LowStockItems, &s.OutOfStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("item stats: %w", err)
	}
	return &s, nil
}

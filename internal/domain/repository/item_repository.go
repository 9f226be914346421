package repository

import "github.com/tu-usuario/inventario-tracker/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los getters devuelven (nil, nil) si el item no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id int64) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del item (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción del Ledger.
	GetForUpdate(id int64) (*entity.Item, error)
	// Update modifica los campos del catálogo; nunca toca current_stock.
	Update(item *entity.Item) error
	// UpdateStock escribe el stock resultante de un movimiento. Reservado al
	// Ledger, dentro de la misma transacción que el insert del movimiento.
	UpdateStock(id int64, stock int) error
	List() ([]*entity.Item, error)
	ListByCategory(categoryID int64) ([]*entity.Item, error)
	// SearchByName busca por nombre sin distinguir mayúsculas ni acentos.
	// term debe venir ya normalizado (minúsculas, sin diacríticos).
	SearchByName(term string) ([]*entity.Item, error)
	// ListLowStock devuelve items con current_stock <= min_stock, stock ascendente.
	ListLowStock() ([]*entity.Item, error)
	Delete(id int64) error
	Stats() (*entity.InventoryStats, error)
}

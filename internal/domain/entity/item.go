package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto del catálogo. CurrentStock es propiedad del
// Ledger: fuera del alta inicial, solo cambia registrando movimientos.
// Invariante: CurrentStock == stock inicial + Σ(IN) − Σ(OUT) y nunca es negativo.
type Item struct {
	ID           int64
	Name         string
	SKU          *string // único cuando está presente
	CurrentStock int
	MinStock     int
	Price        *decimal.Decimal
	CategoryID   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el item está en o por debajo de su stock mínimo.
func (i *Item) LowStock() bool {
	return i.CurrentStock <= i.MinStock
}

// InventoryStats agregados del catálogo, siempre recalculados (sin caché).
type InventoryStats struct {
	TotalItems      int64
	TotalUnits      int64
	LowStockItems   int64
	OutOfStockItems int64
}

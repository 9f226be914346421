package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un item. InitialStock es el stock
// base del item, no un movimiento.
type CreateItemRequest struct {
	Name         string           `json:"name"`
	SKU          *string          `json:"sku,omitempty"`
	InitialStock int              `json:"currentStock"`
	MinStock     int              `json:"minStock"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	CategoryID   *int64           `json:"categoryId,omitempty"`
}

// UpdateItemRequest entrada para actualizar un item. No existe campo de stock:
// el stock solo cambia a través del Ledger. Campos nil = sin cambio.
type UpdateItemRequest struct {
	Name       *string          `json:"name"`
	SKU        *string          `json:"sku"`
	MinStock   *int             `json:"minStock"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *int64           `json:"categoryId"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	SKU          *string           `json:"sku"`
	CurrentStock int               `json:"currentStock"`
	MinStock     int               `json:"minStock"`
	Price        *decimal.Decimal  `json:"price"`
	CategoryID   *int64            `json:"categoryId"`
	Category     *CategoryResponse `json:"category,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ItemDetailResponse item con sus movimientos más recientes.
type ItemDetailResponse struct {
	ItemResponse
	StockMovements []MovementResponse `json:"stockMovements"`
}

// InventoryStatsResponse agregados del catálogo para el dashboard.
type InventoryStatsResponse struct {
	TotalItems      int64 `json:"totalItems"`
	TotalUnits      int64 `json:"totalUnits"`
	LowStockItems   int64 `json:"lowStockItems"`
	OutOfStockItems int64 `json:"outOfStockItems"`
}

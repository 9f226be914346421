package dto

import "time"

// CreateMovementRequest body para POST /api/stock-movements.
// El usuario que registra sale del token, no del body.
type CreateMovementRequest struct {
	ItemID   int64   `json:"itemId"`
	Type     string  `json:"type"` // IN | OUT
	Quantity int     `json:"quantity"`
	Reason   *string `json:"reason,omitempty"`
}

// MovementItemRef proyección mínima del item en respuestas de movimientos.
type MovementItemRef struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SKU          *string `json:"sku"`
	CurrentStock int     `json:"currentStock"`
}

// MovementUserRef proyección mínima del usuario que registró el movimiento.
type MovementUserRef struct {
	ID          int64   `json:"id"`
	DisplayName *string `json:"displayName"`
	Email       string  `json:"email"`
}

// MovementResponse salida de un movimiento. Item es null si el item fue eliminado.
type MovementResponse struct {
	ID        int64            `json:"id"`
	ItemID    *int64           `json:"itemId"`
	UserID    int64            `json:"userId"`
	Type      string           `json:"type"`
	Quantity  int              `json:"quantity"`
	Reason    *string          `json:"reason"`
	CreatedAt time.Time        `json:"createdAt"`
	Item      *MovementItemRef `json:"item,omitempty"`
	User      *MovementUserRef `json:"user,omitempty"`
}

// MovementTypeStatsDTO conteo y suma por tipo de movimiento.
type MovementTypeStatsDTO struct {
	Count         int64 `json:"count"`
	TotalQuantity int64 `json:"totalQuantity"`
}

// MovementStatsResponse resumen de movimientos sobre un rango de fechas opcional.
type MovementStatsResponse struct {
	TotalMovements int64                `json:"totalMovements"`
	Entries        MovementTypeStatsDTO `json:"entries"`
	Exits          MovementTypeStatsDTO `json:"exits"`
	NetChange      int64                `json:"netChange"`
}

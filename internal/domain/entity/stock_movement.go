package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada: suma al stock
	MovementTypeOUT = "OUT" // salida: resta del stock
)

// ValidMovementType verifica que el tipo sea IN u OUT.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// StockMovement es el registro inmutable de un cambio de stock. Se crea junto
// con la actualización del stock del item, en la misma transacción, y nunca se
// actualiza ni se borra. ItemID es nullable: al eliminar un item sus
// movimientos se conservan huérfanos (FK ON DELETE SET NULL).
type StockMovement struct {
	ID        int64
	ItemID    *int64
	UserID    int64
	Type      string
	Quantity  int // siempre positivo; el signo lo da Type
	Reason    *string
	CreatedAt time.Time
}

// MovementItemRef proyección mínima del item para respuestas de movimientos.
type MovementItemRef struct {
	ID           int64
	Name         string
	SKU          *string
	CurrentStock int
}

// MovementUserRef proyección mínima del usuario que registró el movimiento.
type MovementUserRef struct {
	ID          int64
	DisplayName *string
	Email       string
}

// StockMovementDetail movimiento junto con sus proyecciones de item y usuario.
// Item es nil cuando el movimiento quedó huérfano por borrado del item.
type StockMovementDetail struct {
	StockMovement
	Item *MovementItemRef
	User *MovementUserRef
}

// MovementFilter criterios opcionales para listar movimientos.
type MovementFilter struct {
	ItemID *int64
	UserID *int64
	Type   *string
	From   *time.Time
	To     *time.Time
}

// MovementTypeStats conteo y suma de cantidades para un tipo de movimiento.
type MovementTypeStats struct {
	Count         int64
	TotalQuantity int64
}

// MovementStats agregados del ledger sobre un rango de fechas opcional.
// NetChange = entradas − salidas; debe coincidir con la suma movimiento a movimiento.
type MovementStats struct {
	TotalMovements int64
	Entries        MovementTypeStats
	Exits          MovementTypeStats
	NetChange      int64
}

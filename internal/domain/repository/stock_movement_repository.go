package repository

import (
	"time"

	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// Los movimientos son append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	// Create persiste el movimiento y asigna movement.ID y movement.CreatedAt.
	Create(movement *entity.StockMovement) error
	// GetDetail devuelve un movimiento con proyecciones de item y usuario, o (nil, nil).
	GetDetail(id int64) (*entity.StockMovementDetail, error)
	// List devuelve movimientos que cumplen el filtro, más recientes primero.
	List(filter entity.MovementFilter) ([]*entity.StockMovementDetail, error)
	// ListRecentByItem devuelve los últimos limit movimientos de un item.
	ListRecentByItem(itemID int64, limit int) ([]*entity.StockMovementDetail, error)
	// Stats agrega conteos y sumas por tipo sobre un rango de fechas opcional.
	Stats(from, to *time.Time) (*entity.MovementStats, error)
}

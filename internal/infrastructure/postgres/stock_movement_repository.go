package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
	"github.com/tu-usuario/inventario-tracker/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento y asigna ID y created_at.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (item_id, user_id, type, quantity, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		movement.ItemID, movement.UserID, movement.Type, movement.Quantity, movement.Reason,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// detailQuery join con proyecciones mínimas de item y usuario. LEFT JOIN sobre
// items porque los movimientos huérfanos (item borrado) siguen siendo consultables.
const detailQuery = `
	SELECT m.id, m.item_id, m.user_id, m.type, m.quantity, m.reason, m.created_at,
	       i.id, i.name, i.sku, i.current_stock,
	       u.id, u.display_name, u.email
	FROM stock_movements m
	LEFT JOIN items i ON i.id = m.item_id
	JOIN users u ON u.id = m.user_id`

// GetDetail obtiene un movimiento con sus proyecciones. Devuelve (nil, nil) si no existe.
func (r *StockMovementRepo) GetDetail(id int64) (*entity.StockMovementDetail, error) {
	row := r.q.QueryRow(context.Background(), detailQuery+` WHERE m.id = $1`, id)
	detail, err := scanDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return detail, nil
}

// List devuelve movimientos que cumplen el filtro, más recientes primero.
func (r *StockMovementRepo) List(filter entity.MovementFilter) ([]*entity.StockMovementDetail, error) {
	query := detailQuery + ` WHERE 1=1`
	var args []any
	pos := 1
	if filter.ItemID != nil {
		query += fmt.Sprintf(" AND m.item_id = $%d", pos)
		args = append(args, *filter.ItemID)
		pos++
	}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND m.user_id = $%d", pos)
		args = append(args, *filter.UserID)
		pos++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, *filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY m.created_at DESC"
	return r.scanMany(query, args...)
}

// ListRecentByItem devuelve los últimos limit movimientos de un item.
func (r *StockMovementRepo) ListRecentByItem(itemID int64, limit int) ([]*entity.StockMovementDetail, error) {
	query := detailQuery + ` WHERE m.item_id = $1 ORDER BY m.created_at DESC LIMIT $2`
	return r.scanMany(query, itemID, limit)
}

func (r *StockMovementRepo) scanMany(query string, args ...any) ([]*entity.StockMovementDetail, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovementDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, detail)
	}
	return list, rows.Err()
}

func scanDetail(row pgx.Row) (*entity.StockMovementDetail, error) {
	var (
		d         entity.StockMovementDetail
		itemID    *int64
		itemName  *string
		itemSKU   *string
		itemStock *int
		userID    int64
		userName  *string
		userEmail string
	)
	err := row.Scan(
		&d.ID, &d.ItemID, &d.UserID, &d.Type, &d.Quantity, &d.Reason, &d.CreatedAt,
		&itemID, &itemName, &itemSKU, &itemStock,
		&userID, &userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}
	if itemID != nil {
		d.Item = &entity.MovementItemRef{
			ID:           *itemID,
			Name:         *itemName,
			SKU:          itemSKU,
			CurrentStock: *itemStock,
		}
	}
	d.User = &entity.MovementUserRef{ID: userID, DisplayName: userName, Email: userEmail}
	return &d, nil
}

// Stats agrega conteos y sumas por tipo y deriva el cambio neto.
// Consistente por construcción con la suma de movimientos individuales:
// es la misma tabla, agregada en una sola consulta.
func (r *StockMovementRepo) Stats(from, to *time.Time) (*entity.MovementStats, error) {
	query := `
		SELECT
		    COUNT(*)                                                        AS total,
		    COUNT(*)               FILTER (WHERE type = 'IN')               AS in_count,
		    COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0)           AS in_quantity,
		    COUNT(*)               FILTER (WHERE type = 'OUT')              AS out_count,
		    COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)          AS out_quantity
		FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	var s entity.MovementStats
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.TotalMovements,
		&s.Entries.Count, &s.Entries.TotalQuantity,
		&s.Exits.Count, &s.Exits.TotalQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("movement stats: %w", err)
	}
	s.NetChange = s.Entries.TotalQuantity - s.Exits.TotalQuantity
	return &s, nil
}

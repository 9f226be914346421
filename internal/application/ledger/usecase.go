package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/inventario-tracker/internal/application/dto"
	"github.com/tu-usuario/inventario-tracker/internal/domain"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
	"github.com/tu-usuario/inventario-tracker/internal/domain/repository"
)

// MovementUseCase registra movimientos de stock de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback, y expone las
// consultas de solo lectura sobre el historial.
type MovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	movRepo  repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	movRepo repository.StockMovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		userRepo: userRepo,
		movRepo:  movRepo,
	}
}

// Record registra un movimiento de stock. Valida la entrada antes de tocar la
// BD; dentro de la transacción bloquea la fila del item, verifica suficiencia
// para OUT, actualiza el stock y persiste el movimiento. Las dos escrituras
// commitean juntas o ninguna.
//
// Errores: ErrInvalidInput (cantidad < 1 o tipo desconocido), ErrUserNotFound,
// ErrNotFound (item), *InsufficientStockError (OUT sin stock suficiente),
// ErrConflict (timeout de lock; reintentable).
func (uc *MovementUseCase) Record(ctx context.Context, userID int64, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity < 1 || !entity.ValidMovementType(in.Type) || in.ItemID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Atribución: el usuario debe existir. La autorización ya ocurrió antes.
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var (
		mov  entity.StockMovement
		item *entity.Item
	)
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del item para serializar read-check-write por item
		item, err = itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		if in.Type == entity.MovementTypeOUT && in.Quantity > item.CurrentStock {
			return &domain.InsufficientStockError{Available: item.CurrentStock, Requested: in.Quantity}
		}

		newStock := item.CurrentStock + in.Quantity
		if in.Type == entity.MovementTypeOUT {
			newStock = item.CurrentStock - in.Quantity
		}

		if err := itemRepo.UpdateStock(item.ID, newStock); err != nil {
			return err
		}
		item.CurrentStock = newStock

		itemID := item.ID
		mov = entity.StockMovement{
			ItemID:   &itemID,
			UserID:   userID,
			Type:     in.Type,
			Quantity: in.Quantity,
			Reason:   in.Reason,
		}
		return movRepo.Create(&mov)
	})
	if err != nil {
		return nil, err
	}

	return toMovementResponse(&entity.StockMovementDetail{
		StockMovement: mov,
		Item: &entity.MovementItemRef{
			ID:           item.ID,
			Name:         item.Name,
			SKU:          item.SKU,
			CurrentStock: item.CurrentStock,
		},
		User: &entity.MovementUserRef{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			Email:       user.Email,
		},
	}), nil
}

// List devuelve movimientos filtrados, más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, filter entity.MovementFilter) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByItem devuelve los movimientos de un item. ErrNotFound si el item no existe.
func (uc *MovementUseCase) ListByItem(ctx context.Context, itemID int64) ([]dto.MovementResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.List(ctx, entity.MovementFilter{ItemID: &itemID})
}

// ListByUser devuelve los movimientos registrados por un usuario.
func (uc *MovementUseCase) ListByUser(ctx context.Context, userID int64) ([]dto.MovementResponse, error) {
	return uc.List(ctx, entity.MovementFilter{UserID: &userID})
}

// GetByID devuelve un movimiento con sus proyecciones. ErrNotFound si no existe.
func (uc *MovementUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	detail, err := uc.movRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(detail), nil
}

// Stats agrega conteos, sumas por tipo y cambio neto sobre un rango de fechas opcional.
func (uc *MovementUseCase) Stats(ctx context.Context, from, to *time.Time) (*dto.MovementStatsResponse, error) {
	stats, err := uc.movRepo.Stats(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.MovementStatsResponse{
		TotalMovements: stats.TotalMovements,
		Entries: dto.MovementTypeStatsDTO{
			Count:         stats.Entries.Count,
			TotalQuantity: stats.Entries.TotalQuantity,
		},
		Exits: dto.MovementTypeStatsDTO{
			Count:         stats.Exits.Count,
			TotalQuantity: stats.Exits.TotalQuantity,
		},
		NetChange: stats.NetChange,
	}, nil
}

func toMovementResponse(d *entity.StockMovementDetail) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        d.ID,
		ItemID:    d.ItemID,
		UserID:    d.UserID,
		Type:      d.Type,
		Quantity:  d.Quantity,
		Reason:    d.Reason,
		CreatedAt: d.CreatedAt,
	}
	if d.Item != nil {
		resp.Item = &dto.MovementItemRef{
			ID:           d.Item.ID,
			Name:         d.Item.Name,
			SKU:          d.Item.SKU,
			CurrentStock: d.Item.CurrentStock,
		}
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

func toMovementResponses(list []*entity.StockMovementDetail) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toMovementResponse(d))
	}
	return out
}

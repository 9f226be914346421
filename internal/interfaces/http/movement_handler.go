package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventario-tracker/internal/application/dto"
	"github.com/tu-usuario/inventario-tracker/internal/application/ledger"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del Ledger de movimientos (protegido).
// El usuario que registra un movimiento es siempre el autenticado: el handler
// no acepta un userId en el cuerpo.
type MovementHandler struct {
	uc *ledger.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un movimiento de stock (IN o OUT)
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock-movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos con filtros opcionales
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "IN u OUT"
// @Param        itemId  query  int     false  "Filtrar por item"
// @Param        userId  query  int     false  "Filtrar por usuario"
// @Param        from    query  string  false  "Fecha inicial (RFC3339)"
// @Param        to      query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter, err := parseMovementFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de movimientos, rango de fechas opcional
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (RFC3339)"
// @Param        to    query  string  false  "Fecha final (RFC3339)"
// @Success      200  {object}  dto.MovementStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/stats [get]
func (h *MovementHandler) Stats(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser RFC3339"})
	}
	out, err := h.uc.Stats(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByItem godoc
// @Summary      Historial de movimientos de un item
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  int  true  "ID del item"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/by-item/{itemId} [get]
func (h *MovementHandler) ByItem(c *fiber.Ctx) error {
	itemID := parseID(c, "itemId")
	if itemID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "itemId debe ser un entero positivo"})
	}
	out, err := h.uc.ListByItem(c.UserContext(), itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MyMovements godoc
// @Summary      Movimientos registrados por el usuario autenticado
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock-movements/my-movements [get]
func (h *MovementHandler) MyMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListByUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un movimiento por ID
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id := parseID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseMovementFilter arma el filtro de listado a partir de la query string.
func parseMovementFilter(c *fiber.Ctx) (entity.MovementFilter, error) {
	var filter entity.MovementFilter
	if raw := c.Query("type"); raw != "" {
		if !entity.ValidMovementType(raw) {
			return filter, errInvalidFilter("type debe ser IN u OUT")
		}
		filter.Type = &raw
	}
	if raw := c.Query("itemId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, errInvalidFilter("itemId debe ser un entero positivo")
		}
		filter.ItemID = &id
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, errInvalidFilter("userId debe ser un entero positivo")
		}
		filter.UserID = &id
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return filter, errInvalidFilter("from debe ser RFC3339")
	}
	filter.From = from
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return filter, errInvalidFilter("to debe ser RFC3339")
	}
	filter.To = to
	return filter, nil
}

// parseTimeQuery parsea un query param de fecha RFC3339 opcional.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type errInvalidFilter string

func (e errInvalidFilter) Error() string { return string(e) }

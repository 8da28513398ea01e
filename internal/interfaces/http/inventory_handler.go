package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/domain/entity"
)

// InventoryHandler maneja entradas, salidas, historial y stock bajo.
type InventoryHandler struct {
	registerMovement *inventory.RegisterMovementUseCase
	history          *inventory.HistoryUseCase
	lowStock         *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	registerMovement *inventory.RegisterMovementUseCase,
	history *inventory.HistoryUseCase,
	lowStock *inventory.LowStockUseCase,
) *InventoryHandler {
	return &InventoryHandler{registerMovement: registerMovement, history: history, lowStock: lowStock}
}

// Inbound godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.RegisterMovementRequest  true  "quantity, notes"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/inbound [post]
func (h *InventoryHandler) Inbound(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeIn)
}

// Outbound godoc
// @Summary      Registrar salida de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.RegisterMovementRequest  true  "quantity, notes"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/products/{id}/outbound [post]
func (h *InventoryHandler) Outbound(c *fiber.Ctx) error {
	return h.register(c, entity.MovementTypeOut)
}

func (h *InventoryHandler) register(c *fiber.Ctx, kind entity.MovementType) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.registerMovement.RegisterMovementFromRequest(c.UserContext(), id, kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Description  Más recientes primero. Sin limit se usan los últimos 100.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit       query  int     false  "Límite"
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        type        query  string  false  "entrada | saida"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.history.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Ordenados por mayor déficit (min_quantity - quantity).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.lowStock.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

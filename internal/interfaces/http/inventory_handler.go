package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar recepción de mercadería
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "Producto y cantidad recibida"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Receive(c.Context(), in.ProductID, in.Quantity, in.Notes); err != nil {
		return fail(c, err)
	}
	return h.respondStock(c, in.ProductID)
}

// Adjust godoc
// @Summary      Registrar ajuste manual de stock
// @Description  Delta con signo: positivo agrega, negativo descuenta. Un ajuste
// @Description  que dejaría el stock en negativo se rechaza.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Producto, delta y motivo"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Adjust(c.Context(), in.ProductID, in.Delta, in.Reason); err != nil {
		return fail(c, err)
	}
	return h.respondStock(c, in.ProductID)
}

// Return godoc
// @Summary      Registrar devolución de una orden
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnStockRequest  true  "Producto, cantidad y orden de origen"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/returns [post]
func (h *InventoryHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Return(c.Context(), in.ProductID, in.Quantity, in.OrderNumber); err != nil {
		return fail(c, err)
	}
	return h.respondStock(c, in.ProductID)
}

// Stock godoc
// @Summary      Existencias actuales de un producto
// @Tags         inventory
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productID} [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	return h.respondStock(c, c.Params("productID"))
}

// Movements godoc
// @Summary      Libro de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        productID  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{productID} [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	movements, err := h.uc.MovementsForProduct(c.Context(), c.Params("productID"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o bajo su umbral de reposición
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStockItems(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toStockItemResponses(items))
}

// OutOfStock godoc
// @Summary      Productos sin existencias
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/inventory/out-of-stock [get]
func (h *InventoryHandler) OutOfStock(c *fiber.Ctx) error {
	items, err := h.uc.OutOfStockItems(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toStockItemResponses(items))
}

// Alerts godoc
// @Summary      Alertas de stock abiertas
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.uc.OpenAlerts(c.Context())
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.StockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toStockAlertResponse(a))
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Auditar el libro de un producto
// @Description  Contrasta la cantidad actual contra la suma de los deltas del
// @Description  libro de movimientos; ambas deben coincidir siempre.
// @Tags         inventory
// @Produce      json
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit/{productID} [get]
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	productID := c.Params("productID")
	audit, err := h.uc.AuditLedger(c.Context(), productID)
	if err != nil {
		return fail(c, err)
	}
	if audit == nil {
		// Producto sin inventario controlado: libro vacío por definición.
		return c.JSON(dto.LedgerAuditResponse{ProductID: productID, Balanced: true})
	}
	return c.JSON(dto.LedgerAuditResponse{
		ProductID: audit.ProductID,
		Quantity:  audit.Quantity,
		SumDeltas: audit.SumDeltas,
		Balanced:  audit.Balanced(),
	})
}

func (h *InventoryHandler) respondStock(c *fiber.Ctx, productID string) error {
	item, err := h.uc.StockForProduct(c.Context(), productID)
	if err != nil {
		return fail(c, err)
	}
	if item == nil {
		// Producto sin inventario controlado.
		return c.JSON(dto.StockItemResponse{ProductID: productID, Status: "untracked"})
	}
	return c.JSON(toStockItemResponse(item))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/order"
)

// OrderHandler maneja las peticiones HTTP de órdenes.
type OrderHandler struct {
	uc *order.CheckoutUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.CheckoutUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Checkout: crear orden desde el carrito de la sesión
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Session-Key  header  string  true  "Clave de sesión del carrito"
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del cliente y la entrega"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateOrder(c.Context(), sessionKey(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(out))
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	orders, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden por número
// @Tags         orders
// @Produce      json
// @Param        number  path  string  true  "Número de orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{number} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toOrderResponse(out))
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una orden
// @Description  Cancelar una orden repone el stock descontado en el checkout.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        number  path  string  true  "Número de orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{number}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("number"), in.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toOrderResponse(out))
}

// Receipt godoc
// @Summary      Descargar el comprobante de la orden en PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        number  path  string  true  "Número de orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{number}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.uc.Receipt(c.Context(), c.Params("number"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+c.Params("number")+`.pdf"`)
	return c.Send(pdf)
}

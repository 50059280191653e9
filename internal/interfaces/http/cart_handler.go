package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/cart"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
)

// HeaderSessionKey identifica el carrito anónimo del cliente.
const HeaderSessionKey = "X-Session-Key"

// CartHandler maneja las peticiones HTTP del carrito.
type CartHandler struct {
	uc *cart.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.UseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

func sessionKey(c *fiber.Ctx) string {
	return c.Get(HeaderSessionKey)
}

// Get godoc
// @Summary      Ver el carrito de la sesión
// @Tags         cart
// @Produce      json
// @Param        X-Session-Key  header  string  true  "Clave de sesión del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetOrCreate(c.Context(), sessionKey(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toCartResponse(out))
}

// AddItem godoc
// @Summary      Agregar ítem al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-Key  header  string  true  "Clave de sesión del carrito"
// @Param        body  body  dto.AddCartItemRequest  true  "Ítem a agregar"
// @Success      201   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), sessionKey(c), in.ProductID, in.SizeID, in.ToppingIDs, in.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCartResponse(out))
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de un ítem
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-Key  header  string  true  "Clave de sesión del carrito"
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateCartItemRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItemQuantity(c.Context(), sessionKey(c), c.Params("id"), in.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toCartResponse(out))
}

// RemoveItem godoc
// @Summary      Quitar un ítem del carrito
// @Tags         cart
// @Produce      json
// @Param        X-Session-Key  header  string  true  "Clave de sesión del carrito"
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), sessionKey(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toCartResponse(out))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Param        X-Session-Key  header  string  true  "Clave de sesión del carrito"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), sessionKey(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

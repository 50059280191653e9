// Package pricing implementa el motor de precios (servicio de dominio).
// Todas las operaciones son funciones puras sobre decimal.Decimal: sin I/O,
// sin estado y seguras para invocación concurrente. Nunca se usa punto
// flotante binario para dinero.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// LineItemPrice calcula el precio unitario de una línea:
// PrecioBase + ModificadorTamaño + Σ precios de toppings.
// Los toppings llegan como snapshots con precio explícito; aquí no se consulta
// el catálogo vivo, de modo que el resultado queda congelado al momento de la
// selección. El tamaño y cada topping con ID deben pertenecer al conjunto
// permitido del producto.
func LineItemPrice(product *entity.Product, size *entity.Size, toppings []entity.ToppingSnapshot) (decimal.Decimal, error) {
	if product == nil {
		return decimal.Zero, domain.ErrInvalidInput
	}
	price := product.BasePrice
	if size != nil {
		if !product.AllowsSize(size.ID) {
			return decimal.Zero, domain.ErrInvalidSelection
		}
		price = price.Add(size.PriceModifier)
	}
	for _, t := range toppings {
		if t.ID != "" && !product.AllowsTopping(t.ID) {
			return decimal.Zero, domain.ErrInvalidSelection
		}
		price = price.Add(t.Price)
	}
	return price, nil
}

// LineSubtotal calcula UnitPrice * Quantity de forma exacta.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// CartTotal suma los subtotales de todas las líneas. Carrito vacío = 0.
// La aritmética decimal es exacta, así que el orden de las líneas no afecta
// el resultado.
func CartTotal(items []entity.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range items {
		sub, err := LineSubtotal(items[i].UnitPrice, items[i].Quantity)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(sub)
	}
	return total, nil
}

// OrderTotal calcula Subtotal + DeliveryFee - DiscountAmount.
// El que llama es responsable de poner el fee en cero para pickup y de acotar
// el descuento; aquí la aritmética se ejecuta tal cual.
func OrderTotal(subtotal, deliveryFee, discountAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(deliveryFee).Sub(discountAmount)
}

package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pizzaMargarita() *entity.Product {
	return &entity.Product{
		ID:         "prod-1",
		Name:       "Margarita",
		BasePrice:  dec("14.99"),
		SizeIDs:    []string{"size-m", "size-l"},
		ToppingIDs: []string{"top-queso", "top-champ"},
	}
}

// Escenario de referencia: base 14.99 + tamaño 3.00 + toppings 2.00 y 1.50
// → unitario 21.49, subtotal x2 = 42.98.
func TestLineItemPrice_BaseMasTamanoMasToppings(t *testing.T) {
	product := pizzaMargarita()
	size := &entity.Size{ID: "size-l", Name: "Grande", PriceModifier: dec("3.00")}
	toppings := []entity.ToppingSnapshot{
		{ID: "top-queso", Name: "Queso extra", Price: dec("2.00")},
		{ID: "top-champ", Name: "Champiñones", Price: dec("1.50")},
	}

	unit, err := pricing.LineItemPrice(product, size, toppings)
	require.NoError(t, err)
	assert.True(t, unit.Equal(dec("21.49")), "unitario esperado 21.49, fue %s", unit)

	sub, err := pricing.LineSubtotal(unit, 2)
	require.NoError(t, err)
	assert.True(t, sub.Equal(dec("42.98")), "subtotal esperado 42.98, fue %s", sub)
}

// El modificador de tamaño puede ser negativo (tamaño pequeño).
func TestLineItemPrice_ModificadorNegativo(t *testing.T) {
	product := pizzaMargarita()
	product.SizeIDs = append(product.SizeIDs, "size-s")
	size := &entity.Size{ID: "size-s", Name: "Pequeña", PriceModifier: dec("-2.00")}

	unit, err := pricing.LineItemPrice(product, size, nil)
	require.NoError(t, err)
	assert.True(t, unit.Equal(dec("12.99")))
}

// Permutar el orden de los toppings nunca cambia el resultado.
func TestLineItemPrice_OrdenDeToppingsNoAfecta(t *testing.T) {
	product := pizzaMargarita()
	a := entity.ToppingSnapshot{ID: "top-queso", Price: dec("2.00")}
	b := entity.ToppingSnapshot{ID: "top-champ", Price: dec("1.50")}

	p1, err := pricing.LineItemPrice(product, nil, []entity.ToppingSnapshot{a, b})
	require.NoError(t, err)
	p2, err := pricing.LineItemPrice(product, nil, []entity.ToppingSnapshot{b, a})
	require.NoError(t, err)
	assert.True(t, p1.Equal(p2))
}

func TestLineItemPrice_TamanoNoPermitido(t *testing.T) {
	product := pizzaMargarita()
	size := &entity.Size{ID: "size-xxl", PriceModifier: dec("5.00")}

	_, err := pricing.LineItemPrice(product, size, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestLineItemPrice_ToppingNoPermitido(t *testing.T) {
	product := pizzaMargarita()
	toppings := []entity.ToppingSnapshot{{ID: "top-anchoas", Price: dec("1.00")}}

	_, err := pricing.LineItemPrice(product, nil, toppings)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestLineSubtotal_CantidadInvalida(t *testing.T) {
	_, err := pricing.LineSubtotal(dec("10.00"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = pricing.LineSubtotal(dec("10.00"), -3)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCartTotal_CarritoVacioEsCero(t *testing.T) {
	total, err := pricing.CartTotal(nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

// La suma decimal es exacta: el total no depende del orden de las líneas.
func TestCartTotal_IndependienteDelOrden(t *testing.T) {
	items := []entity.CartItem{
		{UnitPrice: dec("21.49"), Quantity: 2},
		{UnitPrice: dec("3.50"), Quantity: 1},
		{UnitPrice: dec("0.10"), Quantity: 3},
	}
	reversed := []entity.CartItem{items[2], items[1], items[0]}

	t1, err := pricing.CartTotal(items)
	require.NoError(t, err)
	t2, err := pricing.CartTotal(reversed)
	require.NoError(t, err)

	assert.True(t, t1.Equal(t2))
	assert.True(t, t1.Equal(dec("46.78")))
}

// Escenario de referencia: 42.98 + 5.00 - 10.00 = 37.98.
func TestOrderTotal_ConFeeYDescuento(t *testing.T) {
	total := pricing.OrderTotal(dec("42.98"), dec("5.00"), dec("10.00"))
	assert.True(t, total.Equal(dec("37.98")))
}

// El motor ejecuta la aritmética tal cual aunque el caller viole el contrato
// de acotar el descuento.
func TestOrderTotal_AritmeticaFielSinClamp(t *testing.T) {
	total := pricing.OrderTotal(dec("10.00"), dec("0.00"), dec("15.00"))
	assert.True(t, total.Equal(dec("-5.00")))
}

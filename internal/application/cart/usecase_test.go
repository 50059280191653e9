package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/cart"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/memory"
)

const (
	sessionKey = "sesion-carrito"
	pizzaID    = "prod-margarita"
	sizeLarge  = "size-grande"
	sizeSmall  = "size-chica"
	topExtra   = "top-queso-extra"
	topOlives  = "top-aceitunas"
)

func newFixture(t *testing.T) (*cart.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)

	store.SeedSize(&entity.Size{ID: sizeLarge, Name: "Grande", PriceModifier: decimal.RequireFromString("3.00")})
	store.SeedSize(&entity.Size{ID: sizeSmall, Name: "Chica", PriceModifier: decimal.RequireFromString("-2.00")})
	store.SeedTopping(&entity.Topping{ID: topExtra, Name: "Queso extra", Price: decimal.RequireFromString("1.50")})
	store.SeedTopping(&entity.Topping{ID: topOlives, Name: "Aceitunas", Price: decimal.RequireFromString("2.00")})

	require.NoError(t, productRepo.Create(&entity.Product{
		ID:          pizzaID,
		Slug:        "margarita",
		Name:        "Pizza Margarita",
		BasePrice:   decimal.RequireFromString("14.99"),
		IsAvailable: true,
		SizeIDs:     []string{sizeLarge, sizeSmall},
		ToppingIDs:  []string{topExtra},
	}))

	uc := cart.NewUseCase(memory.NewCartRepository(store), productRepo, memory.NewCatalogRepository(store))
	return uc, store
}

func TestAddItem_CongelaElPrecioUnitario(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	c, err := uc.AddItem(ctx, sessionKey, pizzaID, sizeLarge, []string{topExtra}, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)

	// 14.99 + 3.00 + 1.50 = 19.49; los toppings se suman una sola vez.
	item := c.Items[0]
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("19.49")), "unitario: %s", item.UnitPrice)
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("38.98")))

	// Subir el precio del topping en el catálogo no toca la línea existente.
	store.SeedTopping(&entity.Topping{ID: topExtra, Name: "Queso extra", Price: decimal.RequireFromString("9.00")})
	c, err = uc.Total(ctx, sessionKey)
	require.NoError(t, err)
	assert.True(t, c.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.49")))
}

func TestAddItem_TamanoChicoDescuenta(t *testing.T) {
	uc, _ := newFixture(t)

	c, err := uc.AddItem(context.Background(), sessionKey, pizzaID, sizeSmall, nil, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.True(t, c.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.99")))
}

func TestAddItem_ToppingNoPermitido(t *testing.T) {
	uc, _ := newFixture(t)

	// Aceitunas existe en catálogo pero el producto no lo permite.
	_, err := uc.AddItem(context.Background(), sessionKey, pizzaID, "", []string{topOlives}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestAddItem_TamanoInexistente(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.AddItem(context.Background(), sessionKey, pizzaID, "size-fantasma", nil, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestAddItem_CantidadInvalida(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.AddItem(context.Background(), sessionKey, pizzaID, "", nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateItemQuantity_MantieneElSnapshot(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	c, err := uc.AddItem(ctx, sessionKey, pizzaID, sizeLarge, nil, 1)
	require.NoError(t, err)
	itemID := c.Items[0].ID

	// Cambio de precio de catálogo entre medio.
	store.SeedSize(&entity.Size{ID: sizeLarge, Name: "Grande", PriceModifier: decimal.RequireFromString("8.00")})

	c, err = uc.UpdateItemQuantity(ctx, sessionKey, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.True(t, c.Items[0].UnitPrice.Equal(decimal.RequireFromString("17.99")), "el snapshot no se recalcula")
}

func TestRemoveItemYClear(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	c, err := uc.AddItem(ctx, sessionKey, pizzaID, sizeLarge, nil, 1)
	require.NoError(t, err)
	c, err = uc.AddItem(ctx, sessionKey, pizzaID, sizeSmall, nil, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 2)

	c, err = uc.RemoveItem(ctx, sessionKey, c.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	require.NoError(t, uc.Clear(ctx, sessionKey))
	c, err = uc.Total(ctx, sessionKey)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = uc.RemoveItem(ctx, sessionKey, "item-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrCreate_RequiereClaveDeSesion(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.GetOrCreate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

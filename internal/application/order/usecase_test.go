package order_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/cart"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/application/order"
	"github.com/jhoicas/pizzeria-api/internal/application/promotion"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/memory"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

const (
	sessionKey = "sesion-de-prueba"
	pizzaID    = "prod-margarita"
	drinkID    = "prod-gaseosa"
	sizeLarge  = "size-grande"
	topExtra   = "top-queso-extra"
)

// fakeReceipts evita generar PDFs reales en los tests del checkout.
type fakeReceipts struct{}

func (fakeReceipts) GenerateReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	return []byte("ticket:" + o.Number), nil
}

type fixture struct {
	store    *memory.Store
	cartUC   *cart.UseCase
	stockUC  *inventory.StockUseCase
	checkout *order.CheckoutUseCase
}

// newFixture prepara el escenario completo: una pizza sin inventario con
// tamaño y topping, una gaseosa con 10 unidades en stock, y un carrito con
// 2 pizzas grandes con queso extra (2 × 19.49) y 3 gaseosas (3 × 3.50).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	catalogRepo := memory.NewCatalogRepository(store)
	cartRepo := memory.NewCartRepository(store)
	txRunner := memory.NewTxRunner(store)

	store.SeedSize(&entity.Size{ID: sizeLarge, Name: "Grande", PriceModifier: decimal.RequireFromString("3.00")})
	store.SeedTopping(&entity.Topping{ID: topExtra, Name: "Queso extra", Price: decimal.RequireFromString("1.50")})

	require.NoError(t, productRepo.Create(&entity.Product{
		ID:          pizzaID,
		Slug:        "margarita",
		Name:        "Pizza Margarita",
		BasePrice:   decimal.RequireFromString("14.99"),
		IsAvailable: true,
		SizeIDs:     []string{sizeLarge},
		ToppingIDs:  []string{topExtra},
	}))
	require.NoError(t, productRepo.Create(&entity.Product{
		ID:              drinkID,
		Slug:            "gaseosa-500",
		Name:            "Gaseosa 500ml",
		BasePrice:       decimal.RequireFromString("3.50"),
		IsAvailable:     true,
		TracksInventory: true,
		ReorderLevel:    2,
	}))

	stockUC := inventory.NewStockUseCase(
		txRunner, productRepo,
		memory.NewStockItemRepository(store),
		memory.NewStockMovementRepository(store),
		memory.NewStockAlertRepository(store),
	)
	require.NoError(t, stockUC.Receive(context.Background(), drinkID, 10, ""))

	cartUC := cart.NewUseCase(cartRepo, productRepo, catalogRepo)
	promotionUC := promotion.NewUseCase(memory.NewPromotionRepository(store))

	checkout := order.NewCheckoutUseCase(
		txRunner, stockUC, promotionUC, fakeReceipts{},
		cartRepo, productRepo, memory.NewOrderRepository(store),
		order.Config{
			OrderPrefix:        "ORD",
			DefaultDeliveryFee: decimal.RequireFromString("5.00"),
		},
		logger.New(logger.Config{Level: "error"}),
	)

	f := &fixture{store: store, cartUC: cartUC, stockUC: stockUC, checkout: checkout}
	f.fillCart(t)
	return f
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.cartUC.AddItem(ctx, sessionKey, pizzaID, sizeLarge, []string{topExtra}, 2)
	require.NoError(t, err)
	_, err = f.cartUC.AddItem(ctx, sessionKey, drinkID, "", nil, 3)
	require.NoError(t, err)
}

func deliveryRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName:    "Ana Pérez",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "+61 400 000 000",
		OrderType:       entity.OrderTypeDelivery,
		DeliveryAddress: "Calle Falsa 123",
	}
}

func TestCreateOrder_CongelaTotalesYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.checkout.CreateOrder(ctx, sessionKey, deliveryRequest())
	require.NoError(t, err)

	// 2 × (14.99 + 3.00 + 1.50) + 3 × 3.50 = 38.98 + 10.50 = 49.48
	assert.True(t, o.Subtotal.Equal(decimal.RequireFromString("49.48")), "subtotal: %s", o.Subtotal)
	assert.True(t, o.DeliveryFee.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, o.DiscountAmount.IsZero())
	assert.True(t, o.Total.Equal(decimal.RequireFromString("54.48")), "total: %s", o.Total)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	require.Len(t, o.Items, 2)

	// Formato ORD-YYYYMMDD-XXXX con la fecha de hoy.
	prefix := "ORD-" + time.Now().Format("20060102") + "-"
	assert.True(t, strings.HasPrefix(o.Number, prefix), "número: %s", o.Number)

	// Solo la gaseosa descuenta stock; la venta referencia la orden.
	item, err := f.stockUC.StockForProduct(ctx, drinkID)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	movs, err := f.stockUC.MovementsForProduct(ctx, drinkID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementSale, movs[0].Type)
	assert.Equal(t, o.Number, movs[0].Reference)

	// El carrito quedó vacío.
	c, err := f.cartUC.GetOrCreate(ctx, sessionKey)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCreateOrder_PickupSinFee(t *testing.T) {
	f := newFixture(t)

	in := deliveryRequest()
	in.OrderType = entity.OrderTypePickup
	in.DeliveryAddress = ""
	in.DeliveryFee = decimal.RequireFromString("9.99") // se ignora en pickup

	o, err := f.checkout.CreateOrder(context.Background(), sessionKey, in)
	require.NoError(t, err)
	assert.True(t, o.DeliveryFee.IsZero())
	assert.True(t, o.Total.Equal(o.Subtotal))
}

func TestCreateOrder_TodoONadaAnteStockInsuficiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Dejar la gaseosa con 2 unidades: el carrito pide 3.
	require.NoError(t, f.stockUC.Adjust(ctx, drinkID, -8, "preparación del test"))

	_, err := f.checkout.CreateOrder(ctx, sessionKey, deliveryRequest())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó a medias: ni orden, ni descuento de stock, ni carrito vacío.
	orders, listErr := f.checkout.List(ctx, "", 10, 0)
	require.NoError(t, listErr)
	assert.Empty(t, orders)

	item, stockErr := f.stockUC.StockForProduct(ctx, drinkID)
	require.NoError(t, stockErr)
	assert.Equal(t, 2, item.Quantity)

	c, cartErr := f.cartUC.GetOrCreate(ctx, sessionKey)
	require.NoError(t, cartErr)
	assert.Len(t, c.Items, 2)
}

func TestCreateOrder_CarritoVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.CreateOrder(context.Background(), "otra-sesion", deliveryRequest())
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

func TestCreateOrder_DeliverySinDireccion(t *testing.T) {
	f := newFixture(t)
	in := deliveryRequest()
	in.DeliveryAddress = ""
	_, err := f.checkout.CreateOrder(context.Background(), sessionKey, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ConPromocionPorcentaje(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	f.store.SeedPromotion(&entity.Promotion{
		ID:            "promo-1",
		Code:          "PIZZA10",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: decimal.RequireFromString("10"),
		MaxDiscount:   decimal.RequireFromString("4.00"),
		IsActive:      true,
		ValidFrom:     now.Add(-time.Hour),
		ValidUntil:    now.Add(time.Hour),
	})

	in := deliveryRequest()
	in.PromotionCode = "pizza10" // el código no distingue mayúsculas

	o, err := f.checkout.CreateOrder(ctx, sessionKey, in)
	require.NoError(t, err)

	// 10% de 49.48 = 4.948, topeado en 4.00.
	assert.True(t, o.DiscountAmount.Equal(decimal.RequireFromString("4.00")), "descuento: %s", o.DiscountAmount)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("50.48")), "total: %s", o.Total)
	assert.Equal(t, "PIZZA10", o.DiscountCode)
}

func TestUpdateStatus_CancelarReponeStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.checkout.CreateOrder(ctx, sessionKey, deliveryRequest())
	require.NoError(t, err)

	cancelled, err := f.checkout.UpdateStatus(ctx, o.Number, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)

	// Las 3 gaseosas vendidas vuelven al stock con un movimiento return.
	item, err := f.stockUC.StockForProduct(ctx, drinkID)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)

	movs, err := f.stockUC.MovementsForProduct(ctx, drinkID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementReturn, movs[0].Type)
	assert.Equal(t, o.Number, movs[0].Reference)

	// Una orden cancelada es final: no admite más transiciones.
	_, err = f.checkout.UpdateStatus(ctx, o.Number, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_CancelacionesConcurrentesReponenUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.checkout.CreateOrder(ctx, sessionKey, deliveryRequest())
	require.NoError(t, err)

	// Dos cancelaciones compitiendo: el cambio de estado corre dentro de la
	// misma tx que la reposición, así que solo una puede reponer el stock.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkout.UpdateStatus(ctx, o.Number, entity.OrderStatusCancelled)
		}(i)
	}
	wg.Wait()

	cancelled := 0
	for _, err := range errs {
		if err == nil {
			cancelled++
		} else {
			require.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, cancelled)

	// Las 3 gaseosas volvieron una sola vez: 10, no 13.
	item, err := f.stockUC.StockForProduct(ctx, drinkID)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)

	returns := 0
	movs, err := f.stockUC.MovementsForProduct(ctx, drinkID, 10, 0)
	require.NoError(t, err)
	for _, m := range movs {
		if m.Type == entity.MovementReturn {
			returns++
		}
	}
	assert.Equal(t, 1, returns)
}

func TestOrderRepo_EstadoFinalNoAdmiteTransiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.checkout.CreateOrder(ctx, sessionKey, deliveryRequest())
	require.NoError(t, err)
	_, err = f.checkout.UpdateStatus(ctx, o.Number, entity.OrderStatusCancelled)
	require.NoError(t, err)

	// El guard vive en el repositorio, no solo en el caso de uso: un update
	// directo sobre una orden sellada también rebota.
	repo := memory.NewOrderRepository(f.store)
	assert.ErrorIs(t, repo.UpdateStatus(o.Number, entity.OrderStatusDelivered), domain.ErrConflict)
	assert.ErrorIs(t, repo.UpdateStatus("ORD-00000000-XXXX", entity.OrderStatusConfirmed), domain.ErrNotFound)
}

func TestReceipt_GeneraTicketDeLaOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.checkout.CreateOrder(ctx, sessionKey, deliveryRequest())
	require.NoError(t, err)

	pdf, err := f.checkout.Receipt(ctx, o.Number)
	require.NoError(t, err)
	assert.Equal(t, "ticket:"+o.Number, string(pdf))

	_, err = f.checkout.Receipt(ctx, "ORD-00000000-XXXX")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

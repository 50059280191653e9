package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/cart"
	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/application/order"
	"github.com/jhoicas/pizzeria-api/internal/application/promotion"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pizzeria-api/internal/interfaces/http"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSession = "sesion-http"

type stubReceipts struct{}

func (stubReceipts) GenerateReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	return []byte("ticket:" + o.Number), nil
}

// buildTestApp arma la API completa sobre el store en memoria, con una gaseosa
// (20 en stock) y una pizza sin inventario ya sembradas.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	catalogRepo := memory.NewCatalogRepository(store)
	cartRepo := memory.NewCartRepository(store)
	txRunner := memory.NewTxRunner(store)

	require.NoError(t, productRepo.Create(&entity.Product{
		ID:          "prod-margarita",
		Slug:        "margarita",
		Name:        "Pizza Margarita",
		BasePrice:   decimal.RequireFromString("14.99"),
		IsAvailable: true,
	}))
	require.NoError(t, productRepo.Create(&entity.Product{
		ID:              "prod-gaseosa",
		Slug:            "gaseosa-500",
		Name:            "Gaseosa 500ml",
		BasePrice:       decimal.RequireFromString("3.50"),
		IsAvailable:     true,
		TracksInventory: true,
		ReorderLevel:    5,
	}))

	stockUC := inventory.NewStockUseCase(
		txRunner, productRepo,
		memory.NewStockItemRepository(store),
		memory.NewStockMovementRepository(store),
		memory.NewStockAlertRepository(store),
	)
	checkoutUC := order.NewCheckoutUseCase(
		txRunner, stockUC,
		promotion.NewUseCase(memory.NewPromotionRepository(store)),
		stubReceipts{},
		cartRepo, productRepo, memory.NewOrderRepository(store),
		order.Config{OrderPrefix: "ORD", DefaultDeliveryFee: decimal.RequireFromString("5.00")},
		logger.New(logger.Config{Level: "error"}),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:  catalog.NewUseCase(productRepo, catalogRepo),
		CartUC:     cart.NewUseCase(cartRepo, productRepo, catalogRepo),
		CheckoutUC: checkoutUC,
		StockUC:    stockUC,
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderSessionKey, testSession)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "respuesta: %s", raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCarritoYCheckout(t *testing.T) {
	app, _ := buildTestApp(t)

	// Reponer stock de la gaseosa.
	resp := doJSON(t, app, fiber.MethodPost, "/api/inventory/receipts",
		fiber.Map{"product_id": "prod-gaseosa", "quantity": 20})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Agregar 3 gaseosas al carrito.
	resp = doJSON(t, app, fiber.MethodPost, "/api/cart/items",
		fiber.Map{"product_id": "prod-gaseosa", "quantity": 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var cartOut struct {
		Total string `json:"total"`
		Items []struct {
			UnitPrice string `json:"unit_price"`
		} `json:"items"`
	}
	decode(t, resp, &cartOut)
	require.Len(t, cartOut.Items, 1)
	assert.Equal(t, "3.5", cartOut.Items[0].UnitPrice, "los montos viajan como strings decimales")
	assert.Equal(t, "10.5", cartOut.Total)

	// Checkout pickup: sin fee de envío.
	resp = doJSON(t, app, fiber.MethodPost, "/api/orders", fiber.Map{
		"customer_name":  "Ana Pérez",
		"customer_email": "ana@example.com",
		"customer_phone": "+61 400 000 000",
		"order_type":     "pickup",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var orderOut struct {
		Number      string `json:"number"`
		Status      string `json:"status"`
		DeliveryFee string `json:"delivery_fee"`
		Total       string `json:"total"`
	}
	decode(t, resp, &orderOut)
	assert.Equal(t, "pending", orderOut.Status)
	assert.Equal(t, "0", orderOut.DeliveryFee)
	assert.Equal(t, "10.5", orderOut.Total)

	// El stock bajó a 17.
	resp = doJSON(t, app, fiber.MethodGet, "/api/inventory/stock/prod-gaseosa", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stockOut struct {
		Quantity int    `json:"quantity"`
		Status   string `json:"status"`
	}
	decode(t, resp, &stockOut)
	assert.Equal(t, 17, stockOut.Quantity)
	assert.Equal(t, "in_stock", stockOut.Status)

	// El libro cuadra con el saldo después del checkout.
	resp = doJSON(t, app, fiber.MethodGet, "/api/inventory/audit/prod-gaseosa", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var auditOut struct {
		Quantity  int  `json:"quantity"`
		SumDeltas int  `json:"sum_deltas"`
		Balanced  bool `json:"balanced"`
	}
	decode(t, resp, &auditOut)
	assert.Equal(t, 17, auditOut.Quantity)
	assert.Equal(t, 17, auditOut.SumDeltas)
	assert.True(t, auditOut.Balanced)

	// La orden se consulta por número.
	resp = doJSON(t, app, fiber.MethodGet, "/api/orders/"+orderOut.Number, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCheckoutSinStock_Devuelve409(t *testing.T) {
	app, _ := buildTestApp(t)

	// 2 en stock, el carrito pide 5.
	resp := doJSON(t, app, fiber.MethodPost, "/api/inventory/receipts",
		fiber.Map{"product_id": "prod-gaseosa", "quantity": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/cart/items",
		fiber.Map{"product_id": "prod-gaseosa", "quantity": 5})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/orders", fiber.Map{
		"customer_name":  "Ana Pérez",
		"customer_email": "ana@example.com",
		"customer_phone": "+61 400 000 000",
		"order_type":     "pickup",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var errOut struct {
		Code string `json:"code"`
	}
	decode(t, resp, &errOut)
	assert.Equal(t, "INSUFFICIENT_STOCK", errOut.Code)
}

func TestCarritoVacio_Devuelve400(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/orders", fiber.Map{
		"customer_name":  "Ana Pérez",
		"customer_email": "ana@example.com",
		"customer_phone": "+61 400 000 000",
		"order_type":     "pickup",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errOut struct {
		Code string `json:"code"`
	}
	decode(t, resp, &errOut)
	assert.Equal(t, "CART_EMPTY", errOut.Code)
}

func TestBusquedaDelMenu_OrdenaYSugiere(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/search?q=margarita", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Query   string `json:"query"`
		Results []struct {
			Name  string `json:"name"`
			Score int    `json:"score"`
		} `json:"results"`
		Suggestions []string `json:"suggestions"`
	}
	decode(t, resp, &out)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Pizza Margarita", out.Results[0].Name)
	assert.Greater(t, out.Results[0].Score, 0)
	assert.Empty(t, out.Suggestions)

	// Sin consulta es una petición inválida.
	resp = doJSON(t, app, fiber.MethodGet, "/api/products/search", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProductoInexistente_Devuelve404(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAjusteBajoCero_Devuelve409(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/inventory/adjustments",
		fiber.Map{"product_id": "prod-gaseosa", "delta": -1, "reason": "merma"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var errOut struct {
		Code string `json:"code"`
	}
	decode(t, resp, &errOut)
	assert.Equal(t, "INVALID_ADJUSTMENT", errOut.Code)
}

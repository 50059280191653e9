package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

// Stubs mínimos para ejercitar el ciclo de reintentos del número de orden sin
// armar el store completo.

type stubOrderRepo struct {
	dupes     int      // cuántos Create seguidos fallan con ErrDuplicate
	attempted []string // números que llegaron al INSERT
}

func (s *stubOrderRepo) Create(o *entity.Order) error {
	s.attempted = append(s.attempted, o.Number)
	if s.dupes > 0 {
		s.dupes--
		return domain.ErrDuplicate
	}
	return nil
}
func (s *stubOrderRepo) GetByNumber(string) (*entity.Order, error) { return nil, nil }

func (s *stubOrderRepo) List(string, int, int) ([]*entity.Order, error) { return nil, nil }

func (s *stubOrderRepo) UpdateStatus(string, string) error { return nil }

type stubCartRepo struct{ cart *entity.Cart }

func (s *stubCartRepo) GetBySessionKey(string) (*entity.Cart, error) { return s.cart, nil }

func (s *stubCartRepo) Create(*entity.Cart) error { return nil }

func (s *stubCartRepo) AddItem(*entity.CartItem) error { return nil }

func (s *stubCartRepo) UpdateItem(*entity.CartItem) error { return nil }

func (s *stubCartRepo) RemoveItem(string, string) error { return nil }

func (s *stubCartRepo) ClearItems(string) error { return nil }

type stubProductRepo struct{}

func (stubProductRepo) Create(*entity.Product) error { return nil }

func (stubProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }

func (stubProductRepo) GetBySlug(string) (*entity.Product, error) { return nil, nil }

func (stubProductRepo) List(bool) ([]*entity.Product, error) { return nil, nil }

func (stubProductRepo) Update(*entity.Product) error { return nil }

type stubTxRunner struct {
	orders repository.OrderRepository
	carts  repository.CartRepository
}

func (s stubTxRunner) RunCheckout(_ context.Context, fn func(
	repository.OrderRepository,
	repository.CartRepository,
	repository.StockItemRepository,
	repository.StockMovementRepository,
	repository.StockAlertRepository,
) error) error {
	return fn(s.orders, s.carts, nil, nil, nil)
}

type stubPromotion struct{ markErr error }

func (s stubPromotion) Discount(context.Context, string, decimal.Decimal, decimal.Decimal) (decimal.Decimal, *entity.Promotion, error) {
	return decimal.Zero, &entity.Promotion{ID: "promo-1", Code: "PROMO"}, nil
}
func (s stubPromotion) MarkUsed(context.Context, *entity.Promotion) error { return s.markErr }

func stubCheckout(orders *stubOrderRepo, promo PromotionPolicy) *CheckoutUseCase {
	carts := &stubCartRepo{cart: &entity.Cart{
		ID:         "cart-1",
		SessionKey: "sesion-stub",
		Items: []entity.CartItem{{
			ID:          "item-1",
			ProductID:   "prod-x",
			ProductName: "Pizza",
			UnitPrice:   decimal.RequireFromString("10.00"),
			Quantity:    1,
		}},
	}}
	return NewCheckoutUseCase(
		stubTxRunner{orders: orders, carts: carts},
		nil, promo, nil,
		carts, stubProductRepo{}, orders,
		Config{OrderPrefix: "ORD"},
		logger.New(logger.Config{Level: "error"}),
	)
}

func pickupRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName:  "Ana Pérez",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "+61 400 000 000",
		OrderType:     entity.OrderTypePickup,
	}
}

func TestCreateOrder_ReintentaNumeroEnColisionDentroDeLaTx(t *testing.T) {
	orders := &stubOrderRepo{dupes: 2}
	uc := stubCheckout(orders, nil)

	o, err := uc.CreateOrder(context.Background(), "sesion-stub", pickupRequest())
	require.NoError(t, err)

	// Dos colisiones y un tercer intento exitoso, cada uno con sufijo propio.
	require.Len(t, orders.attempted, 3)
	assert.Equal(t, orders.attempted[2], o.Number)
	seen := map[string]bool{}
	for _, n := range orders.attempted {
		assert.False(t, seen[n], "número repetido entre intentos: %s", n)
		seen[n] = true
	}
}

func TestCreateOrder_ColisionesAgotadasDevuelvenDuplicado(t *testing.T) {
	orders := &stubOrderRepo{dupes: 1000}
	uc := stubCheckout(orders, nil)

	_, err := uc.CreateOrder(context.Background(), "sesion-stub", pickupRequest())
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, orders.attempted, orderNumberRetries+1)
}

func TestCreateOrder_FalloDelContadorDePromocionNoTumbaLaOrden(t *testing.T) {
	orders := &stubOrderRepo{}
	uc := stubCheckout(orders, stubPromotion{markErr: errors.New("contador caído")})

	in := pickupRequest()
	in.PromotionCode = "PROMO"

	o, err := uc.CreateOrder(context.Background(), "sesion-stub", in)
	require.NoError(t, err)
	assert.Equal(t, "PROMO", o.DiscountCode)
}

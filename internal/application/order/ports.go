package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// TxRunner abre la transacción del checkout con todos los repositorios que la
// orden necesita atados a la misma tx: la creación de la orden, el descuento
// de stock por línea y el vaciado del carrito son todo-o-nada.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
		stockRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.StockAlertRepository,
	) error) error
}

// StockLedger aplica movimientos de inventario dentro de la transacción del
// caller. Implementado por inventory.StockUseCase.
type StockLedger interface {
	ApplyMovementInTx(
		stockRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.StockAlertRepository,
		product *entity.Product,
		movType string,
		delta int,
		reference, notes string,
		now time.Time,
	) error
}

// PromotionPolicy calcula el descuento de un código. El checkout solo consume
// el monto; la elegibilidad es responsabilidad de la política.
type PromotionPolicy interface {
	Discount(ctx context.Context, code string, subtotal, deliveryFee decimal.Decimal) (decimal.Decimal, *entity.Promotion, error)
	MarkUsed(ctx context.Context, promo *entity.Promotion) error
}

// ReceiptGenerator genera el ticket imprimible de una orden.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, o *entity.Order) ([]byte, error)
}

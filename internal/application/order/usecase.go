package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/pricing"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

// Config parámetros del checkout.
type Config struct {
	OrderPrefix        string          // ej. "ORD"
	DefaultDeliveryFee decimal.Decimal // fee si el request no trae uno
}

// CheckoutUseCase crea órdenes desde el carrito y descuenta inventario en una
// sola transacción.
type CheckoutUseCase struct {
	txRunner    TxRunner
	ledger      StockLedger
	promotion   PromotionPolicy
	receipts    ReceiptGenerator
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	cfg         Config
	log         *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	promotion PromotionPolicy,
	receipts ReceiptGenerator,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	cfg Config,
	log *logger.Logger,
) *CheckoutUseCase {
	if cfg.OrderPrefix == "" {
		cfg.OrderPrefix = "ORD"
	}
	return &CheckoutUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		promotion:   promotion,
		receipts:    receipts,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cfg:         cfg,
		log:         log,
	}
}

// CreateOrder ejecuta el checkout:
//  1. valida tipo de orden y dirección,
//  2. congela subtotal, fee y descuento (hechos históricos de la orden),
//  3. copia cada línea del carrito como OrderItem inmutable,
//  4. en una transacción: descuenta stock por cada línea con inventario
//     controlado (movimiento sale referenciando la orden), crea la orden y
//     vacía el carrito.
//
// Si una línea no tiene stock suficiente, toda la orden se revierte: no hay
// descuentos parciales.
func (uc *CheckoutUseCase) CreateOrder(ctx context.Context, sessionKey string, in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.OrderType != entity.OrderTypeDelivery && in.OrderType != entity.OrderTypePickup {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerName == "" || in.CustomerEmail == "" || in.CustomerPhone == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderType == entity.OrderTypeDelivery && in.DeliveryAddress == "" {
		return nil, domain.ErrInvalidInput
	}

	c, err := uc.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	subtotal, err := pricing.CartTotal(c.Items)
	if err != nil {
		return nil, err
	}

	deliveryFee := uc.cfg.DefaultDeliveryFee
	if in.DeliveryFee.IsPositive() {
		deliveryFee = in.DeliveryFee
	}
	if in.OrderType == entity.OrderTypePickup {
		deliveryFee = decimal.Zero
	}

	discount := decimal.Zero
	var promo *entity.Promotion
	if in.PromotionCode != "" {
		discount, promo, err = uc.promotion.Discount(ctx, in.PromotionCode, subtotal, deliveryFee)
		if err != nil {
			return nil, err
		}
	}

	total := pricing.OrderTotal(subtotal, deliveryFee, discount)

	now := time.Now()

	// Productos de las líneas, solo lectura fuera de la tx. Un producto que
	// ya no existe en catálogo no bloquea la orden: la línea lleva su propio
	// snapshot y simplemente no descuenta stock.
	productsByID := make(map[string]*entity.Product, len(c.Items))
	for i := range c.Items {
		p, err := uc.productRepo.GetByID(c.Items[i].ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			productsByID[p.ID] = p
		}
	}

	o := &entity.Order{
		ID:                   uuid.New().String(),
		Number:               uc.newOrderNumber(now),
		CustomerName:         in.CustomerName,
		CustomerEmail:        in.CustomerEmail,
		CustomerPhone:        in.CustomerPhone,
		Type:                 in.OrderType,
		Status:               entity.OrderStatusPending,
		Notes:                in.Notes,
		DeliveryAddress:      in.DeliveryAddress,
		DeliveryInstructions: in.DeliveryInstructions,
		Subtotal:             subtotal,
		DeliveryFee:          deliveryFee,
		DiscountAmount:       discount,
		Total:                total,
		CartSessionKey:       c.SessionKey,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if promo != nil {
		o.DiscountCode = promo.Code
	}
	for i := range c.Items {
		line := &c.Items[i]
		sub, err := pricing.LineSubtotal(line.UnitPrice, line.Quantity)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SizeID:      line.SizeID,
			SizeName:    line.SizeName,
			Toppings:    line.Toppings,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Subtotal:    sub,
		})
	}

	// Un número en colisión hace fallar el INSERT con ErrDuplicate; la tx se
	// revierte completa y se reintenta con otro sufijo. Chequear antes no
	// sirve: dos checkouts concurrentes pueden sortear el mismo número.
	for attempt := 0; ; attempt++ {
		err = uc.txRunner.RunCheckout(ctx, func(
			orderRepo repository.OrderRepository,
			cartRepo repository.CartRepository,
			stockRepo repository.StockItemRepository,
			movRepo repository.StockMovementRepository,
			alertRepo repository.StockAlertRepository,
		) error {
			// Descuento de stock línea por línea; ErrInsufficientStock en
			// cualquiera revierte la orden completa.
			for i := range o.Items {
				product, ok := productsByID[o.Items[i].ProductID]
				if !ok || !product.TracksInventory {
					continue
				}
				if err := uc.ledger.ApplyMovementInTx(
					stockRepo, movRepo, alertRepo,
					product, entity.MovementSale, -o.Items[i].Quantity,
					o.Number, "", now,
				); err != nil {
					return err
				}
			}
			if err := orderRepo.Create(o); err != nil {
				return err
			}
			return cartRepo.ClearItems(c.ID)
		})
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= orderNumberRetries {
			break
		}
		o.Number = uc.newOrderNumber(now)
	}
	if err != nil {
		return nil, err
	}

	if promo != nil {
		// Contador de uso fuera de la tx: perderlo ante un fallo no
		// compromete la orden ya creada, pero queda registro para detectar
		// drift del límite de usos.
		if err := uc.promotion.MarkUsed(ctx, promo); err != nil {
			uc.log.Warn().Err(err).
				Str("order", o.Number).
				Str("code", promo.Code).
				Msg("no se pudo incrementar el uso de la promoción")
		}
	}
	return o, nil
}

// GetByNumber devuelve una orden con sus líneas.
func (uc *CheckoutUseCase) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// List devuelve órdenes filtradas por estado.
func (uc *CheckoutUseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.orderRepo.List(status, limit, offset)
}

// UpdateStatus transiciona el estado de la orden. Cancelar una orden repone
// el stock vendido con movimientos return referenciando la misma orden.
func (uc *CheckoutUseCase) UpdateStatus(ctx context.Context, number, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if o.IsFinal() {
		return nil, domain.ErrConflict
	}
	if status == entity.OrderStatusCancelled {
		if err := uc.cancel(ctx, o); err != nil {
			return nil, err
		}
	} else if err := uc.orderRepo.UpdateStatus(number, status); err != nil {
		return nil, err
	}
	return uc.GetByNumber(ctx, number)
}

// Receipt genera el ticket PDF de la orden.
func (uc *CheckoutUseCase) Receipt(ctx context.Context, number string) ([]byte, error) {
	o, err := uc.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return uc.receipts.GenerateReceipt(ctx, o)
}

// cancel marca la orden como cancelada y repone las líneas vendidas, todo en
// una sola tx. El cambio de estado va primero: el repositorio rechaza con
// ErrConflict una orden ya finalizada, así que si dos cancelaciones compiten
// solo una repone el stock; la otra revierte sin dejar movimientos.
func (uc *CheckoutUseCase) cancel(ctx context.Context, o *entity.Order) error {
	now := time.Now()
	return uc.txRunner.RunCheckout(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.CartRepository,
		stockRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		if err := orderRepo.UpdateStatus(o.Number, entity.OrderStatusCancelled); err != nil {
			return err
		}
		for i := range o.Items {
			product, err := uc.productRepo.GetByID(o.Items[i].ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.TracksInventory {
				continue
			}
			if err := uc.ledger.ApplyMovementInTx(
				stockRepo, movRepo, alertRepo,
				product, entity.MovementReturn, o.Items[i].Quantity,
				o.Number, "reposición por cancelación", now,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

const orderNumberRetries = 5

// newOrderNumber genera un número PREFIX-YYYYMMDD-XXXX.
func (uc *CheckoutUseCase) newOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", uc.cfg.OrderPrefix, now.Format("20060102"), randomSuffix(4))
}

const suffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand no falla en la práctica; uuid como último recurso
		return uuid.New().String()[:n]
	}
	for i := range buf {
		buf[i] = suffixCharset[int(buf[i])%len(suffixCharset)]
	}
	return string(buf)
}

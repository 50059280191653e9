package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// StockUseCase implementa el libro de inventario: entradas, ventas, ajustes y
// devoluciones sobre un libro append-only de movimientos, con piso en cero y
// alertas por nivel de reorden. Cada mutación corre en una transacción con la
// fila del StockItem bloqueada (SELECT FOR UPDATE) para que dos ventas
// concurrentes del mismo producto no puedan sobregirar el stock.
type StockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockItemRepository    // lecturas fuera de tx
	movRepo     repository.StockMovementRepository // lecturas fuera de tx
	alertRepo   repository.StockAlertRepository    // lecturas fuera de tx
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.StockAlertRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		movRepo:     movRepo,
		alertRepo:   alertRepo,
	}
}

// Receive registra una entrada de proveedor: movimiento receipt con +quantity.
func (uc *StockUseCase) Receive(ctx context.Context, productID string, quantity int, notes string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return uc.runMovement(ctx, productID, entity.MovementReceipt, quantity, "", notes)
}

// Sell descuenta stock por una venta, referenciando la orden. Falla con
// ErrInsufficientStock si quantity supera lo disponible; el stock nunca queda
// negativo y un rechazo no deja rastro en el libro.
func (uc *StockUseCase) Sell(ctx context.Context, productID string, quantity int, orderNumber string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return uc.runMovement(ctx, productID, entity.MovementSale, -quantity, orderNumber, "")
}

// Adjust registra un ajuste manual con delta con signo. Un delta negativo que
// dejaría el stock bajo cero falla con ErrInvalidAdjustment.
func (uc *StockUseCase) Adjust(ctx context.Context, productID string, delta int, reason string) error {
	if delta == 0 {
		return domain.ErrInvalidQuantity
	}
	return uc.runMovement(ctx, productID, entity.MovementAdjustment, delta, "", reason)
}

// Return reingresa unidades devueltas de una orden.
func (uc *StockUseCase) Return(ctx context.Context, productID string, quantity int, orderNumber string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return uc.runMovement(ctx, productID, entity.MovementReturn, quantity, orderNumber, "")
}

// runMovement abre la transacción y aplica un movimiento sobre el producto.
// Productos sin inventario controlado son un no-op exitoso: esa es política
// explícita (pizzas al momento no llevan StockItem).
func (uc *StockUseCase) runMovement(ctx context.Context, productID, movType string, delta int, reference, notes string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !product.TracksInventory {
		return nil
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		return uc.ApplyMovementInTx(stockRepo, movRepo, alertRepo, product, movType, delta, reference, notes, now)
	})
}

// ApplyMovementInTx aplica un movimiento usando repositorios ya atados a la
// transacción del caller (el checkout lo invoca línea por línea dentro de su
// propia tx). Bloquea la fila, verifica el piso en cero, anexa el movimiento
// con cantidades antes/después y reevalúa la alerta del ítem.
func (uc *StockUseCase) ApplyMovementInTx(
	stockRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.StockAlertRepository,
	product *entity.Product,
	movType string,
	delta int,
	reference, notes string,
	now time.Time,
) error {
	if !product.TracksInventory {
		return nil
	}
	if !entity.ValidMovementType(movType) {
		return domain.ErrInvalidInput
	}

	item, err := stockRepo.GetForUpdate(product.ID, product.ReorderLevel)
	if err != nil {
		return err
	}

	before := item.Quantity
	after := before + delta
	if after < 0 {
		// El piso en cero es el invariante central del libro.
		if movType == entity.MovementAdjustment {
			return domain.ErrInvalidAdjustment
		}
		return domain.ErrInsufficientStock
	}

	item.Quantity = after
	item.UpdatedAt = now
	if movType == entity.MovementReceipt {
		item.LastRestocked = &now
	}
	if err := stockRepo.Upsert(item); err != nil {
		return err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		StockItemID:    item.ID,
		Type:           movType,
		QuantityChange: delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      reference,
		Notes:          notes,
		CreatedAt:      now,
	}
	if err := movRepo.Create(mov); err != nil {
		return err
	}

	return uc.refreshAlert(alertRepo, product, item, now)
}

// refreshAlert abre una alerta si el stock quedó en o bajo el nivel de
// reorden (y no hay una abierta), o resuelve las abiertas si lo superó.
// Simétrico para todo tipo de movimiento.
func (uc *StockUseCase) refreshAlert(
	alertRepo repository.StockAlertRepository,
	product *entity.Product,
	item *entity.StockItem,
	now time.Time,
) error {
	if item.IsLowStock() {
		open, err := alertRepo.GetOpenByStockItem(item.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return nil
		}
		alert := &entity.StockAlert{
			ID:          uuid.New().String(),
			StockItemID: item.ID,
			Status:      entity.AlertActive,
			Message: fmt.Sprintf("%s con stock bajo (%d unidades). Nivel de reorden: %d",
				product.Name, item.Quantity, item.ReorderLevel),
			CreatedAt: now,
		}
		return alertRepo.Create(alert)
	}
	return alertRepo.ResolveOpen(item.ID, now)
}

// LowStockItems devuelve los ítems en o bajo su nivel de reorden.
func (uc *StockUseCase) LowStockItems(ctx context.Context) ([]*entity.StockItem, error) {
	return uc.stockRepo.ListLowStock()
}

// OutOfStockItems devuelve los ítems agotados.
func (uc *StockUseCase) OutOfStockItems(ctx context.Context) ([]*entity.StockItem, error) {
	return uc.stockRepo.ListOutOfStock()
}

// StockForProduct devuelve las existencias actuales de un producto.
// Productos sin inventario controlado devuelven nil.
func (uc *StockUseCase) StockForProduct(ctx context.Context, productID string) (*entity.StockItem, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.TracksInventory {
		return nil, nil
	}
	item, err := uc.stockRepo.GetByProductID(productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// Sin fila todavía: el producto controla inventario pero nunca se
		// registró un movimiento. Se reporta como agotado con cantidad cero.
		return &entity.StockItem{ProductID: productID, ReorderLevel: product.ReorderLevel}, nil
	}
	return item, nil
}

// MovementsForProduct lista el historial de movimientos de un producto.
func (uc *StockUseCase) MovementsForProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	item, err := uc.StockForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return uc.movRepo.ListByStockItem(item.ID, limit, offset)
}

// LedgerAudit es el resultado de contrastar el saldo de un ítem contra la
// suma de los deltas de su libro de movimientos.
type LedgerAudit struct {
	ProductID string
	Quantity  int
	SumDeltas int
}

// Balanced indica si el libro cuadra con el saldo actual.
func (a LedgerAudit) Balanced() bool { return a.Quantity == a.SumDeltas }

// AuditLedger suma los deltas del libro de un producto y los contrasta con su
// cantidad actual. Ambos valores deben coincidir siempre; una discrepancia
// indica corrupción del libro y amerita revisión manual.
func (uc *StockUseCase) AuditLedger(ctx context.Context, productID string) (*LedgerAudit, error) {
	item, err := uc.StockForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	sum, err := uc.movRepo.SumDeltas(item.ID)
	if err != nil {
		return nil, err
	}
	return &LedgerAudit{ProductID: productID, Quantity: item.Quantity, SumDeltas: sum}, nil
}

// OpenAlerts lista las alertas de stock sin resolver.
func (uc *StockUseCase) OpenAlerts(ctx context.Context) ([]*entity.StockAlert, error) {
	return uc.alertRepo.ListOpen()
}

package memory

import (
	"context"

	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/application/order"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// TxRunner simula transacciones sobre el store: toma una copia del estado
// antes de ejecutar el callback y lo restaura si falla. Igual que con la base
// real, un error a mitad de camino no deja efectos parciales. Las
// transacciones corren de a una (txMu del store): dos ventas concurrentes del
// mismo producto se serializan igual que con SELECT FOR UPDATE.
type TxRunner struct {
	store *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ order.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repositorios del libro de inventario.
func (t *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	sn := t.store.take()
	err := fn(
		NewStockItemRepository(t.store),
		NewStockMovementRepository(t.store),
		NewStockAlertRepository(t.store),
	)
	if err != nil {
		t.store.restore(sn)
	}
	return err
}

// RunCheckout ejecuta fn con todos los repositorios del checkout.
func (t *TxRunner) RunCheckout(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	stockRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	sn := t.store.take()
	err := fn(
		NewOrderRepository(t.store),
		NewCartRepository(t.store),
		NewStockItemRepository(t.store),
		NewStockMovementRepository(t.store),
		NewStockAlertRepository(t.store),
	)
	if err != nil {
		t.store.restore(sn)
	}
	return err
}

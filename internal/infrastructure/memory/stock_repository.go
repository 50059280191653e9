package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// StockItemRepo existencias por producto en memoria.
type StockItemRepo struct{ store *Store }

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// NewStockItemRepository construye el repositorio.
func NewStockItemRepository(store *Store) *StockItemRepo {
	return &StockItemRepo{store: store}
}

func (r *StockItemRepo) GetByProductID(productID string) (*entity.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.stockItems[productID]
	if !ok {
		return nil, nil
	}
	return cloneStockItem(item), nil
}

func (r *StockItemRepo) GetForUpdate(productID string, reorderLevel int) (*entity.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.stockItems[productID]
	if !ok {
		now := time.Now()
		item = &entity.StockItem{
			ID:           uuid.New().String(),
			ProductID:    productID,
			ReorderLevel: reorderLevel,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		r.store.stockItems[productID] = item
	}
	return cloneStockItem(item), nil
}

func (r *StockItemRepo) Upsert(item *entity.StockItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.stockItems[item.ProductID] = cloneStockItem(item)
	return nil
}

func (r *StockItemRepo) ListLowStock() ([]*entity.StockItem, error) {
	return r.filter(func(s *entity.StockItem) bool { return s.IsLowStock() })
}

func (r *StockItemRepo) ListOutOfStock() ([]*entity.StockItem, error) {
	return r.filter(func(s *entity.StockItem) bool { return s.IsOutOfStock() })
}

func (r *StockItemRepo) filter(keep func(*entity.StockItem) bool) ([]*entity.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockItem
	for _, s := range r.store.stockItems {
		if keep(s) {
			out = append(out, cloneStockItem(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// StockMovementRepo libro append-only de movimientos en memoria.
type StockMovementRepo struct{ store *Store }

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movements = append(r.store.movements, cloneMovement(m))
	return nil
}

func (r *StockMovementRepo) ListByStockItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.StockMovement
	// Más recientes primero: se recorre el libro al revés.
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.store.movements[i].StockItemID == stockItemID {
			all = append(all, cloneMovement(r.store.movements[i]))
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *StockMovementRepo) SumDeltas(stockItemID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := 0
	for _, m := range r.store.movements {
		if m.StockItemID == stockItemID {
			sum += m.QuantityChange
		}
	}
	return sum, nil
}

// StockAlertRepo alertas de stock bajo en memoria.
type StockAlertRepo struct{ store *Store }

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// NewStockAlertRepository construye el repositorio.
func NewStockAlertRepository(store *Store) *StockAlertRepo {
	return &StockAlertRepo{store: store}
}

func (r *StockAlertRepo) Create(a *entity.StockAlert) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.alerts[a.ID] = cloneAlert(a)
	return nil
}

func (r *StockAlertRepo) GetOpenByStockItem(stockItemID string) (*entity.StockAlert, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.alerts {
		if a.StockItemID == stockItemID && a.IsOpen() {
			return cloneAlert(a), nil
		}
	}
	return nil, nil
}

func (r *StockAlertRepo) ResolveOpen(stockItemID string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, a := range r.store.alerts {
		if a.StockItemID != stockItemID || !a.IsOpen() {
			continue
		}
		next := cloneAlert(a)
		next.Status = entity.AlertResolved
		next.ResolvedAt = &at
		r.store.alerts[id] = next
	}
	return nil
}

func (r *StockAlertRepo) ListOpen() ([]*entity.StockAlert, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockAlert
	for _, a := range r.store.alerts {
		if a.IsOpen() {
			out = append(out, cloneAlert(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

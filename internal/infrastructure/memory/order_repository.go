package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// OrderRepo repositorio de órdenes en memoria.
type OrderRepo struct{ store *Store }

var _ repository.OrderRepository = (*OrderRepo)(nil)

// NewOrderRepository construye el repositorio.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) Create(o *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[o.Number]; ok {
		return domain.ErrDuplicate
	}
	r.store.orders[o.Number] = cloneOrder(o)
	return nil
}

func (r *OrderRepo) GetByNumber(number string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[number]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.Order
	for _, o := range r.store.orders {
		if status != "" && o.Status != status {
			continue
		}
		all = append(all, cloneOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// UpdateStatus transiciona el estado. Una orden en estado final se rechaza
// con ErrConflict: el guard vive en el repositorio para que corra dentro de
// la transacción que lo invoque.
func (r *OrderRepo) UpdateStatus(number, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[number]
	if !ok {
		return domain.ErrNotFound
	}
	if o.IsFinal() {
		return domain.ErrConflict
	}
	next := cloneOrder(o)
	next.Status = status
	next.UpdatedAt = time.Now()
	if next.IsFinal() && next.CompletedAt == nil {
		t := next.UpdatedAt
		next.CompletedAt = &t
	}
	r.store.orders[number] = next
	return nil
}

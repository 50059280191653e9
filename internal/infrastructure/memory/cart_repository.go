package memory

import (
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// CartRepo repositorio de carritos en memoria.
type CartRepo struct{ store *Store }

var _ repository.CartRepository = (*CartRepo)(nil)

// NewCartRepository construye el repositorio.
func NewCartRepository(store *Store) *CartRepo {
	return &CartRepo{store: store}
}

func (r *CartRepo) GetBySessionKey(sessionKey string) (*entity.Cart, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.carts[sessionKey]
	if !ok {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (r *CartRepo) Create(c *entity.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.carts[c.SessionKey]; ok {
		return domain.ErrDuplicate
	}
	r.store.carts[c.SessionKey] = cloneCart(c)
	return nil
}

func (r *CartRepo) AddItem(item *entity.CartItem) error {
	return r.mutate(item.CartID, func(c *entity.Cart) error {
		c.Items = append(c.Items, *item)
		return nil
	})
}

func (r *CartRepo) UpdateItem(item *entity.CartItem) error {
	return r.mutate(item.CartID, func(c *entity.Cart) error {
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items[i] = *item
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *CartRepo) RemoveItem(cartID, itemID string) error {
	return r.mutate(cartID, func(c *entity.Cart) error {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *CartRepo) ClearItems(cartID string) error {
	return r.mutate(cartID, func(c *entity.Cart) error {
		c.Items = nil
		return nil
	})
}

// mutate aplica fn sobre una copia del carrito y la guarda si no hubo error.
func (r *CartRepo) mutate(cartID string, fn func(c *entity.Cart) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for key, c := range r.store.carts {
		if c.ID != cartID {
			continue
		}
		next := cloneCart(c)
		if err := fn(next); err != nil {
			return err
		}
		r.store.carts[key] = next
		return nil
	}
	return domain.ErrNotFound
}

package memory

import (
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ store *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.products {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Slug == slug {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(onlyAvailable bool) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.store.products {
		if onlyAvailable && !p.IsAvailable {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

// CatalogRepo lecturas de tamaños y toppings en memoria.
type CatalogRepo struct{ store *Store }

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// NewCatalogRepository construye el repositorio.
func NewCatalogRepository(store *Store) *CatalogRepo {
	return &CatalogRepo{store: store}
}

func (r *CatalogRepo) GetSizeByID(id string) (*entity.Size, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sizes[id]
	if !ok {
		return nil, nil
	}
	return cloneSize(s), nil
}

func (r *CatalogRepo) GetToppingByID(id string) (*entity.Topping, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.toppings[id]
	if !ok {
		return nil, nil
	}
	return cloneTopping(t), nil
}

func (r *CatalogRepo) ListSizes(productID string) ([]*entity.Size, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return nil, nil
	}
	var out []*entity.Size
	for _, id := range p.SizeIDs {
		if s, ok := r.store.sizes[id]; ok {
			out = append(out, cloneSize(s))
		}
	}
	return out, nil
}

func (r *CatalogRepo) ListToppings(productID string) ([]*entity.Topping, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[productID]
	if !ok {
		return nil, nil
	}
	var out []*entity.Topping
	for _, id := range p.ToppingIDs {
		if t, ok := r.store.toppings[id]; ok {
			out = append(out, cloneTopping(t))
		}
	}
	return out, nil
}

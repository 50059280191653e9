package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	List(onlyAvailable bool) ([]*entity.Product, error)
	Update(product *entity.Product) error
}

// CatalogRepository puerto de lectura de tamaños y toppings del catálogo.
type CatalogRepository interface {
	GetSizeByID(id string) (*entity.Size, error)
	GetToppingByID(id string) (*entity.Topping, error)
	ListSizes(productID string) ([]*entity.Size, error)
	ListToppings(productID string) ([]*entity.Topping, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem del menú (pizza, bebida, combo).
// BasePrice es el precio del tamaño base; los modificadores de tamaño y los
// toppings se suman al momento de agregar al carrito, nunca después.
type Product struct {
	ID              string
	Slug            string
	Name            string
	Description     string
	BasePrice       decimal.Decimal
	IsAvailable     bool
	TracksInventory bool     // bebidas y empaques sí; pizzas hechas al momento no
	ReorderLevel    int      // umbral inicial para el StockItem del producto
	SizeIDs         []string // tamaños permitidos (catálogo)
	ToppingIDs      []string // toppings permitidos (catálogo)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllowsSize indica si el tamaño pertenece al conjunto permitido del producto.
func (p *Product) AllowsSize(sizeID string) bool {
	for _, id := range p.SizeIDs {
		if id == sizeID {
			return true
		}
	}
	return false
}

// AllowsTopping indica si el topping pertenece al conjunto permitido del producto.
func (p *Product) AllowsTopping(toppingID string) bool {
	for _, id := range p.ToppingIDs {
		if id == toppingID {
			return true
		}
	}
	return false
}

// Size tamaño de producto con modificador de precio (puede ser negativo).
type Size struct {
	ID            string
	Name          string
	PriceModifier decimal.Decimal
	DisplayOrder  int
}

// Topping adición extra con precio propio.
type Topping struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

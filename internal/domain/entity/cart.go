package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ToppingSnapshot copia del topping al momento de la selección.
// El precio queda congelado aquí: cambios posteriores del catálogo no lo alteran.
// Se serializa a JSON con el precio como string decimal.
type ToppingSnapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartItem línea del carrito. UnitPrice es el snapshot calculado una sola vez:
// precio base + modificador de tamaño + suma de toppings.
type CartItem struct {
	ID          string
	CartID      string
	ProductID   string
	ProductName string
	SizeID      string // vacío si no aplica tamaño
	SizeName    string
	Toppings    []ToppingSnapshot
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}

// Subtotal devuelve UnitPrice * Quantity. Los toppings ya están incluidos en
// UnitPrice, no se vuelven a sumar aquí.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart carrito anónimo identificado por clave de sesión.
type Cart struct {
	ID         string
	SessionKey string
	Items      []CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

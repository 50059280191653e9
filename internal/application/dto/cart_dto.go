package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/cart/items. Los toppings se
// referencian por ID: el precio se congela del catálogo al agregar.
type AddCartItemRequest struct {
	ProductID  string   `json:"product_id"`
	SizeID     string   `json:"size_id,omitempty"`
	ToppingIDs []string `json:"topping_ids,omitempty"`
	Quantity   int      `json:"quantity"`
}

// UpdateCartItemRequest body para PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse línea del carrito con su snapshot de precio.
type CartItemResponse struct {
	ID          string            `json:"id"`
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	SizeName    string            `json:"size_name,omitempty"`
	Toppings    []ToppingResponse `json:"toppings,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
}

// CartResponse carrito con totales calculados.
type CartResponse struct {
	SessionKey string             `json:"session_key"`
	Items      []CartItemResponse `json:"items"`
	Total      decimal.Decimal    `json:"total"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders (checkout).
// DeliveryFee es opcional: si viene en cero se usa el fee configurado; en
// pickup siempre queda en cero.
type CreateOrderRequest struct {
	CustomerName         string          `json:"customer_name"`
	CustomerEmail        string          `json:"customer_email"`
	CustomerPhone        string          `json:"customer_phone"`
	OrderType            string          `json:"order_type"` // delivery | pickup
	Notes                string          `json:"notes,omitempty"`
	DeliveryAddress      string          `json:"delivery_address,omitempty"`
	DeliveryInstructions string          `json:"delivery_instructions,omitempty"`
	DeliveryFee          decimal.Decimal `json:"delivery_fee,omitempty"`
	PromotionCode        string          `json:"promotion_code,omitempty"`
}

// UpdateOrderStatusRequest body para PUT /api/orders/:number/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea snapshot de la orden.
type OrderItemResponse struct {
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	SizeName    string            `json:"size_name,omitempty"`
	Toppings    []ToppingResponse `json:"toppings,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
}

// OrderResponse orden con sus cuatro montos históricos.
type OrderResponse struct {
	Number         string              `json:"number"`
	CustomerName   string              `json:"customer_name"`
	OrderType      string              `json:"order_type"`
	Status         string              `json:"status"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DeliveryFee    decimal.Decimal     `json:"delivery_fee"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	DiscountCode   string              `json:"discount_code,omitempty"`
	Total          decimal.Decimal     `json:"total"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

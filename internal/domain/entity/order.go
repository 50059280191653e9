package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusCancelled = "cancelled"
)

// Tipos de orden.
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Order orden creada en el checkout. Subtotal, DeliveryFee, DiscountAmount y
// Total son hechos históricos: se calculan una vez y nunca se recalculan.
type Order struct {
	ID                   string
	Number               string // ORD-YYYYMMDD-XXXX
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	Type                 string // delivery, pickup
	Status               string
	Notes                string
	DeliveryAddress      string
	DeliveryInstructions string
	Subtotal             decimal.Decimal
	DeliveryFee          decimal.Decimal // cero en pickup
	DiscountAmount       decimal.Decimal
	DiscountCode         string
	Total                decimal.Decimal // Subtotal + DeliveryFee - DiscountAmount
	CartSessionKey       string
	Items                []OrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
}

// OrderItem línea de la orden: snapshot inmutable de un CartItem al momento del
// checkout, desacoplado del carrito y del catálogo vivo.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	SizeID      string
	SizeName    string
	Toppings    []ToppingSnapshot
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// IsFinal indica si el estado no admite más transiciones.
func (o *Order) IsFinal() bool {
	switch o.Status {
	case OrderStatusDelivered, OrderStatusPickedUp, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidOrderStatus valida un estado de orden.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusPickedUp, OrderStatusCancelled:
		return true
	}
	return false
}

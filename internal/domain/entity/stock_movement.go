package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementReceipt    = "receipt"    // entrada de proveedor
	MovementSale       = "sale"       // venta (referencia la orden)
	MovementAdjustment = "adjustment" // ajuste manual, delta con signo
	MovementReturn     = "return"     // devolución de una orden
)

// StockMovement registro append-only del libro de inventario. Nunca se edita
// ni se borra después de creado: es la pista de auditoría del stock.
type StockMovement struct {
	ID             string
	StockItemID    string
	Type           string
	QuantityChange int // positivo entrada, negativo salida
	QuantityBefore int
	QuantityAfter  int
	Reference      string // número de orden u otra referencia
	Notes          string
	CreatedAt      time.Time
}

// ValidMovementType valida un tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementReceipt, MovementSale, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

package entity

import "time"

// StockItem existencias actuales de un producto con inventario controlado.
// Quantity nunca es negativo; la suma de los deltas de sus movimientos debe
// ser siempre igual a Quantity.
type StockItem struct {
	ID              string
	ProductID       string
	Quantity        int
	ReorderLevel    int // alerta cuando Quantity <= ReorderLevel
	ReorderQuantity int // cantidad sugerida al reponer
	LastRestocked   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica stock en o por debajo del nivel de reorden.
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.ReorderLevel
}

// IsOutOfStock indica stock agotado.
func (s *StockItem) IsOutOfStock() bool {
	return s.Quantity == 0
}

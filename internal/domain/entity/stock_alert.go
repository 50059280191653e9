package entity

import "time"

// Estados de alerta de stock.
const (
	AlertActive       = "active"
	AlertAcknowledged = "acknowledged"
	AlertResolved     = "resolved"
)

// StockAlert alerta de stock bajo. Se abre cuando un movimiento deja la
// cantidad en o por debajo del nivel de reorden y se resuelve cuando el stock
// vuelve a superarlo.
type StockAlert struct {
	ID             string
	StockItemID    string
	Status         string
	Message        string
	CreatedAt      time.Time
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
}

// IsOpen indica si la alerta sigue sin resolver.
func (a *StockAlert) IsOpen() bool {
	return a.Status == AlertActive || a.Status == AlertAcknowledged
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento.
const (
	DiscountPercentage   = "percentage"
	DiscountFixed        = "fixed"
	DiscountFreeDelivery = "free_delivery"
)

// Promotion código de descuento con condiciones y ventana de validez.
type Promotion struct {
	ID             string
	Code           string
	Name           string
	Description    string
	DiscountType   string
	DiscountValue  decimal.Decimal // porcentaje (10 = 10%) o monto fijo
	MinOrderAmount decimal.Decimal // cero = sin mínimo
	MaxDiscount    decimal.Decimal // tope para porcentajes; cero = sin tope
	UsageLimit     int             // cero = ilimitado
	TimesUsed      int
	IsActive       bool
	ValidFrom      time.Time
	ValidUntil     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidAt indica si la promoción puede aplicarse en el instante dado.
func (p *Promotion) IsValidAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return false
	}
	if p.UsageLimit > 0 && p.TimesUsed >= p.UsageLimit {
		return false
	}
	return true
}

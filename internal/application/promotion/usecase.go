// Package promotion implementa la política de descuentos por código.
// El motor de precios solo consume el monto resultante; la elegibilidad y el
// cálculo viven aquí.
package promotion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// UseCase política de promociones.
type UseCase struct {
	promoRepo repository.PromotionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(promoRepo repository.PromotionRepository) *UseCase {
	return &UseCase{promoRepo: promoRepo}
}

// Discount calcula el descuento para un código dado el subtotal y el fee de
// envío. Devuelve la promoción aplicada para que el checkout incremente su
// contador de uso después del commit. El monto queda acotado a
// subtotal + deliveryFee: una orden nunca puede quedar en total negativo por
// un descuento.
func (uc *UseCase) Discount(ctx context.Context, code string, subtotal, deliveryFee decimal.Decimal) (decimal.Decimal, *entity.Promotion, error) {
	promo, err := uc.promoRepo.GetByCode(code)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if promo == nil || !promo.IsValidAt(time.Now()) {
		return decimal.Zero, nil, domain.ErrInvalidPromotion
	}
	if promo.MinOrderAmount.IsPositive() && subtotal.LessThan(promo.MinOrderAmount) {
		return decimal.Zero, nil, domain.ErrInvalidPromotion
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case entity.DiscountPercentage:
		discount = subtotal.Mul(promo.DiscountValue).Div(hundred)
		if promo.MaxDiscount.IsPositive() && discount.GreaterThan(promo.MaxDiscount) {
			discount = promo.MaxDiscount
		}
	case entity.DiscountFixed:
		discount = promo.DiscountValue
	case entity.DiscountFreeDelivery:
		discount = deliveryFee
	default:
		return decimal.Zero, nil, domain.ErrInvalidPromotion
	}

	ceiling := subtotal.Add(deliveryFee)
	if discount.GreaterThan(ceiling) {
		discount = ceiling
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount, promo, nil
}

// MarkUsed incrementa el contador de uso de la promoción.
func (uc *UseCase) MarkUsed(ctx context.Context, promo *entity.Promotion) error {
	if promo == nil {
		return nil
	}
	return uc.promoRepo.IncrementUsage(promo.ID)
}

package promotion_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/promotion"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seed(t *testing.T, p *entity.Promotion) *promotion.UseCase {
	t.Helper()
	store := memory.NewStore()
	if p.ValidFrom.IsZero() {
		p.ValidFrom = time.Now().Add(-time.Hour)
	}
	if p.ValidUntil.IsZero() {
		p.ValidUntil = time.Now().Add(time.Hour)
	}
	store.SeedPromotion(p)
	return promotion.NewUseCase(memory.NewPromotionRepository(store))
}

func TestDiscount_PorcentajeConTope(t *testing.T) {
	uc := seed(t, &entity.Promotion{
		ID: "p1", Code: "DIEZ", IsActive: true,
		DiscountType: entity.DiscountPercentage, DiscountValue: dec("10"),
		MaxDiscount: dec("3.00"),
	})

	// 10% de 20.00 = 2.00, bajo el tope.
	d, promo, err := uc.Discount(context.Background(), "DIEZ", dec("20.00"), dec("5.00"))
	require.NoError(t, err)
	require.NotNil(t, promo)
	assert.True(t, d.Equal(dec("2.00")), "descuento: %s", d)

	// 10% de 80.00 = 8.00, topeado en 3.00.
	d, _, err = uc.Discount(context.Background(), "DIEZ", dec("80.00"), dec("5.00"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("3.00")))
}

func TestDiscount_MontoFijoAcotadoAlTotal(t *testing.T) {
	uc := seed(t, &entity.Promotion{
		ID: "p2", Code: "MENOS50", IsActive: true,
		DiscountType: entity.DiscountFixed, DiscountValue: dec("50.00"),
	})

	// El descuento nunca supera subtotal + fee: la orden no queda negativa.
	d, _, err := uc.Discount(context.Background(), "MENOS50", dec("20.00"), dec("5.00"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("25.00")), "descuento: %s", d)
}

func TestDiscount_EnvioGratis(t *testing.T) {
	uc := seed(t, &entity.Promotion{
		ID: "p3", Code: "ENVIOGRATIS", IsActive: true,
		DiscountType: entity.DiscountFreeDelivery,
	})

	d, _, err := uc.Discount(context.Background(), "enviogratis", dec("30.00"), dec("5.00"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("5.00")))
}

func TestDiscount_MinimoNoAlcanzado(t *testing.T) {
	uc := seed(t, &entity.Promotion{
		ID: "p4", Code: "GRANDE", IsActive: true,
		DiscountType: entity.DiscountFixed, DiscountValue: dec("5.00"),
		MinOrderAmount: dec("40.00"),
	})

	_, _, err := uc.Discount(context.Background(), "GRANDE", dec("30.00"), dec("5.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidPromotion)
}

func TestDiscount_FueraDeVentanaOInactiva(t *testing.T) {
	uc := seed(t, &entity.Promotion{
		ID: "p5", Code: "VIEJA", IsActive: true,
		DiscountType: entity.DiscountFixed, DiscountValue: dec("5.00"),
		ValidFrom:  time.Now().Add(-48 * time.Hour),
		ValidUntil: time.Now().Add(-24 * time.Hour),
	})
	_, _, err := uc.Discount(context.Background(), "VIEJA", dec("30.00"), dec("5.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidPromotion)

	uc = seed(t, &entity.Promotion{
		ID: "p6", Code: "APAGADA", IsActive: false,
		DiscountType: entity.DiscountFixed, DiscountValue: dec("5.00"),
	})
	_, _, err = uc.Discount(context.Background(), "APAGADA", dec("30.00"), dec("5.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidPromotion)
}

func TestDiscount_LimiteDeUsosAgotado(t *testing.T) {
	uc := seed(t, &entity.Promotion{
		ID: "p7", Code: "UNICO", IsActive: true,
		DiscountType: entity.DiscountFixed, DiscountValue: dec("5.00"),
		UsageLimit: 1,
	})

	d, promo, err := uc.Discount(context.Background(), "UNICO", dec("30.00"), dec("5.00"))
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("5.00")))
	require.NoError(t, uc.MarkUsed(context.Background(), promo))

	_, _, err = uc.Discount(context.Background(), "UNICO", dec("30.00"), dec("5.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidPromotion)
}

func TestDiscount_CodigoInexistente(t *testing.T) {
	uc := promotion.NewUseCase(memory.NewPromotionRepository(memory.NewStore()))
	_, _, err := uc.Discount(context.Background(), "NADA", dec("30.00"), dec("5.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidPromotion)
}

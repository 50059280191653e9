package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/memory"
)

// newSearchFixture arma el catálogo con dos pizzas y una gaseosa publicadas.
func newSearchFixture(t *testing.T) *catalog.UseCase {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)

	seed := []*entity.Product{
		{
			ID: "prod-margarita", Slug: "margarita", Name: "Pizza Margarita",
			Description: "Salsa de tomate, mozzarella y albahaca",
			BasePrice:   decimal.RequireFromString("14.99"), IsAvailable: true,
		},
		{
			ID: "prod-pepperoni", Slug: "pepperoni", Name: "Pizza Pepperoni",
			Description: "Pepperoni y mozzarella",
			BasePrice:   decimal.RequireFromString("16.99"), IsAvailable: true,
		},
		{
			ID: "prod-cola", Slug: "cola", Name: "Gaseosa Cola",
			BasePrice: decimal.RequireFromString("3.50"), IsAvailable: true,
		},
		{
			ID: "prod-retirada", Slug: "calzone", Name: "Calzone Napolitano",
			BasePrice: decimal.RequireFromString("12.99"), IsAvailable: false,
		},
	}
	for _, p := range seed {
		require.NoError(t, productRepo.Create(p))
	}
	return catalog.NewUseCase(productRepo, memory.NewCatalogRepository(store))
}

func TestSearchMenu_NombreExactoPrimero(t *testing.T) {
	uc := newSearchFixture(t)

	results, err := uc.SearchMenu(context.Background(), "Gaseosa Cola", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gaseosa Cola", results[0].View.Product.Name)
	assert.GreaterOrEqual(t, results[0].Score, 100)
}

func TestSearchMenu_ToleraErroresDeTipeo(t *testing.T) {
	uc := newSearchFixture(t)

	// "margrita" no es substring de ningún nombre; entra por similitud.
	results, err := uc.SearchMenu(context.Background(), "margrita", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Pizza Margarita", results[0].View.Product.Name)
}

func TestSearchMenu_SubstringTraeTodasLasPizzas(t *testing.T) {
	uc := newSearchFixture(t)

	results, err := uc.SearchMenu(context.Background(), "pizza", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	names := []string{results[0].View.Product.Name, results[1].View.Product.Name}
	assert.Contains(t, names, "Pizza Margarita")
	assert.Contains(t, names, "Pizza Pepperoni")
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestSearchMenu_SoloProductosPublicados(t *testing.T) {
	uc := newSearchFixture(t)

	results, err := uc.SearchMenu(context.Background(), "calzone", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchMenu_ConsultaVacia(t *testing.T) {
	uc := newSearchFixture(t)

	_, err := uc.SearchMenu(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Suggest(context.Background(), "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggest_NombresParecidos(t *testing.T) {
	uc := newSearchFixture(t)
	ctx := context.Background()

	// Prefijo gana sobre similitud difusa.
	names, err := uc.Suggest(ctx, "gas", 10)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "Gaseosa Cola", names[0])

	// Un tipeo cercano también sugiere.
	names, err = uc.Suggest(ctx, "margrita", 10)
	require.NoError(t, err)
	assert.Contains(t, names, "Pizza Margarita")
}

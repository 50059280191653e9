package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// BasePrice viaja como string decimal (shopspring serializa con comillas).
type CreateProductRequest struct {
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	TracksInventory bool            `json:"tracks_inventory"`
	ReorderLevel    int             `json:"reorder_level,omitempty"`
	SizeIDs         []string        `json:"size_ids,omitempty"`
	ToppingIDs      []string        `json:"topping_ids,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:slug.
// Campos en nil no se tocan.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
	SizeIDs     []string         `json:"size_ids,omitempty"`
	ToppingIDs  []string         `json:"topping_ids,omitempty"`
}

// ProductResponse representación de un producto del menú.
type ProductResponse struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	BasePrice       decimal.Decimal   `json:"base_price"`
	IsAvailable     bool              `json:"is_available"`
	TracksInventory bool              `json:"tracks_inventory"`
	Sizes           []SizeResponse    `json:"sizes,omitempty"`
	Toppings        []ToppingResponse `json:"toppings,omitempty"`
}

// MenuSearchResult producto encontrado con su puntaje de relevancia.
type MenuSearchResult struct {
	ProductResponse
	Score int `json:"score"`
}

// MenuSearchResponse resultado de GET /api/products/search. Suggestions trae
// nombres parecidos cuando la búsqueda no encontró productos.
type MenuSearchResponse struct {
	Query       string             `json:"query"`
	Results     []MenuSearchResult `json:"results"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// SizeResponse tamaño permitido con su modificador de precio.
type SizeResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
}

// ToppingResponse topping permitido con su precio actual de catálogo.
type ToppingResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

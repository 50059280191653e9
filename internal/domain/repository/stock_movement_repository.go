package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// StockMovementRepository puerto del libro append-only de movimientos.
// No hay Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByStockItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumDeltas suma los deltas de un ítem; debe coincidir con su Quantity.
	SumDeltas(stockItemID string) (int, error)
}

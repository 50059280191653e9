package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// StockItemRepository puerto para leer/actualizar existencias por producto.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y debe usarse dentro de una
// transacción para serializar las ventas concurrentes del mismo ítem.
type StockItemRepository interface {
	GetByProductID(productID string) (*entity.StockItem, error)
	// GetForUpdate devuelve el ítem con la fila bloqueada; si no existe, lo
	// materializa en cero con el nivel de reorden del producto.
	GetForUpdate(productID string, reorderLevel int) (*entity.StockItem, error)
	Upsert(item *entity.StockItem) error
	ListLowStock() ([]*entity.StockItem, error)
	ListOutOfStock() ([]*entity.StockItem, error)
}

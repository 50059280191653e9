package repository

import (
	"time"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// StockAlertRepository puerto para el ciclo de vida de alertas de stock bajo.
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	GetOpenByStockItem(stockItemID string) (*entity.StockAlert, error)
	// ResolveOpen resuelve todas las alertas abiertas del ítem.
	ResolveOpen(stockItemID string, at time.Time) error
	ListOpen() ([]*entity.StockAlert, error)
}

package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// OrderRepository puerto de persistencia para órdenes y sus líneas snapshot.
type OrderRepository interface {
	// Create persiste la cabecera y todas las líneas.
	Create(order *entity.Order) error
	GetByNumber(number string) (*entity.Order, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(number, status string) error
}

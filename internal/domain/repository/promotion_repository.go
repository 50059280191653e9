package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// PromotionRepository puerto de persistencia para códigos de promoción.
type PromotionRepository interface {
	GetByCode(code string) (*entity.Promotion, error)
	IncrementUsage(id string) error
}

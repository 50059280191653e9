package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

// PromotionRepo implementación de PromotionRepository sobre PostgreSQL.
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

// GetByCode obtiene una promoción por código (case-insensitive), o nil.
func (r *PromotionRepo) GetByCode(code string) (*entity.Promotion, error) {
	query := `
		SELECT id, code, name, description, discount_type, discount_value,
		       min_order_amount, max_discount, usage_limit, times_used,
		       is_active, valid_from, valid_until, created_at, updated_at
		FROM promotions WHERE LOWER(code) = LOWER($1)`
	var p entity.Promotion
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.DiscountType, &p.DiscountValue,
		&p.MinOrderAmount, &p.MaxDiscount, &p.UsageLimit, &p.TimesUsed,
		&p.IsActive, &p.ValidFrom, &p.ValidUntil, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return &p, nil
}

// IncrementUsage incrementa el contador de uso de la promoción.
func (r *PromotionRepo) IncrementUsage(id string) error {
	query := `UPDATE promotions SET times_used = times_used + 1, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("increment promotion usage: %w", err)
	}
	return nil
}

package memory

import (
	"strings"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// PromotionRepo códigos de promoción en memoria.
type PromotionRepo struct{ store *Store }

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

// NewPromotionRepository construye el repositorio.
func NewPromotionRepository(store *Store) *PromotionRepo {
	return &PromotionRepo{store: store}
}

func (r *PromotionRepo) GetByCode(code string) (*entity.Promotion, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.promotions[strings.ToLower(code)]
	if !ok {
		return nil, nil
	}
	return clonePromotion(p), nil
}

func (r *PromotionRepo) IncrementUsage(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for key, p := range r.store.promotions {
		if p.ID == id {
			next := clonePromotion(p)
			next.TimesUsed++
			r.store.promotions[key] = next
			return nil
		}
	}
	return domain.ErrNotFound
}

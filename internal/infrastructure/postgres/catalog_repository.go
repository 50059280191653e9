package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lecturas de tamaños y toppings del catálogo.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetSizeByID obtiene un tamaño por ID.
func (r *CatalogRepo) GetSizeByID(id string) (*entity.Size, error) {
	query := `SELECT id, name, price_modifier, display_order FROM sizes WHERE id = $1`
	var s entity.Size
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.PriceModifier, &s.DisplayOrder,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

// GetToppingByID obtiene un topping por ID.
func (r *CatalogRepo) GetToppingByID(id string) (*entity.Topping, error) {
	query := `SELECT id, name, price, created_at, updated_at FROM toppings WHERE id = $1`
	var t entity.Topping
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Price, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get topping: %w", err)
	}
	return &t, nil
}

// ListSizes lista los tamaños permitidos de un producto en orden de display.
func (r *CatalogRepo) ListSizes(productID string) ([]*entity.Size, error) {
	query := `
		SELECT s.id, s.name, s.price_modifier, s.display_order
		FROM sizes s
		JOIN product_sizes ps ON ps.size_id = s.id
		WHERE ps.product_id = $1
		ORDER BY s.display_order, s.name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Size
	for rows.Next() {
		var s entity.Size
		if err := rows.Scan(&s.ID, &s.Name, &s.PriceModifier, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListToppings lista los toppings permitidos de un producto.
func (r *CatalogRepo) ListToppings(productID string) ([]*entity.Topping, error) {
	query := `
		SELECT t.id, t.name, t.price, t.created_at, t.updated_at
		FROM toppings t
		JOIN product_toppings pt ON pt.topping_id = t.id
		WHERE pt.product_id = $1
		ORDER BY t.name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list toppings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Topping
	for rows.Next() {
		var t entity.Topping
		if err := rows.Scan(&t.ID, &t.Name, &t.Price, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan topping: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

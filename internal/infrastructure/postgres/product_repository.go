package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, slug, name, description, base_price, is_available, tracks_inventory, reorder_level, created_at, updated_at`

// Create persiste un producto con sus conjuntos de tamaños y toppings permitidos.
func (r *ProductRepo) Create(p *entity.Product) error {
	ctx := context.Background()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Slug, p.Name, p.Description, p.BasePrice,
		p.IsAvailable, p.TracksInventory, p.ReorderLevel,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	if err := r.replaceJunction(ctx, "product_sizes", "size_id", p.ID, p.SizeIDs); err != nil {
		return err
	}
	return r.replaceJunction(ctx, "product_toppings", "topping_id", p.ID, p.ToppingIDs)
}

// GetByID obtiene un producto con sus conjuntos permitidos.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getBy("id", id)
}

// GetBySlug obtiene un producto por su slug.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getBy("slug", slug)
}

func (r *ProductRepo) getBy(column, value string) (*entity.Product, error) {
	ctx := context.Background()
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + column + ` = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, value).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.BasePrice,
		&p.IsAvailable, &p.TracksInventory, &p.ReorderLevel,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadSets(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List lista el catálogo, opcionalmente solo los disponibles.
func (r *ProductRepo) List(onlyAvailable bool) ([]*entity.Product, error) {
	ctx := context.Background()
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyAvailable {
		query += ` WHERE is_available`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Name, &p.Description, &p.BasePrice,
			&p.IsAvailable, &p.TracksInventory, &p.ReorderLevel,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		if err := r.loadSets(ctx, p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Update actualiza el producto y reemplaza sus conjuntos permitidos.
func (r *ProductRepo) Update(p *entity.Product) error {
	ctx := context.Background()
	query := `
		UPDATE products
		SET slug = $2, name = $3, description = $4, base_price = $5,
		    is_available = $6, tracks_inventory = $7, reorder_level = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Slug, p.Name, p.Description, p.BasePrice,
		p.IsAvailable, p.TracksInventory, p.ReorderLevel,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := r.replaceJunction(ctx, "product_sizes", "size_id", p.ID, p.SizeIDs); err != nil {
		return err
	}
	return r.replaceJunction(ctx, "product_toppings", "topping_id", p.ID, p.ToppingIDs)
}

func (r *ProductRepo) loadSets(ctx context.Context, p *entity.Product) error {
	var err error
	p.SizeIDs, err = r.junctionIDs(ctx, "product_sizes", "size_id", p.ID)
	if err != nil {
		return err
	}
	p.ToppingIDs, err = r.junctionIDs(ctx, "product_toppings", "topping_id", p.ID)
	return err
}

func (r *ProductRepo) junctionIDs(ctx context.Context, table, column, productID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT `+column+` FROM `+table+` WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ProductRepo) replaceJunction(ctx context.Context, table, column, productID string, ids []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, id := range ids {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO `+table+` (product_id, `+column+`) VALUES ($1, $2)`, productID, id); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

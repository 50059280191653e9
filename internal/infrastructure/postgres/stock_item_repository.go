package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, product_id, quantity, reorder_level, reorder_quantity, last_restocked, created_at, updated_at`

// GetByProductID obtiene las existencias de un producto, o nil.
func (r *StockItemRepo) GetByProductID(productID string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE product_id = $1`
	item, err := r.scanItem(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene las existencias con la fila bloqueada (SELECT FOR
// UPDATE). Si el producto aún no tiene fila, la materializa en cero con el
// nivel de reorden indicado y la bloquea. Usar solo dentro de una transacción.
func (r *StockItemRepo) GetForUpdate(productID string, reorderLevel int) (*entity.StockItem, error) {
	ctx := context.Background()
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE product_id = $1 FOR UPDATE`
	item, err := r.scanItem(r.q.QueryRow(ctx, query, productID))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}

	insert := `
		INSERT INTO stock_items (id, product_id, quantity, reorder_level, reorder_quantity, created_at, updated_at)
		VALUES ($1, $2, 0, $3, 50, now(), now())
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), productID, reorderLevel); err != nil {
		return nil, fmt.Errorf("init stock item: %w", err)
	}
	item, err = r.scanItem(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// Upsert inserta o actualiza las existencias del producto.
func (r *StockItemRepo) Upsert(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_items (id, product_id, quantity, reorder_level, reorder_quantity, last_restocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              reorder_level = EXCLUDED.reorder_level,
		              reorder_quantity = EXCLUDED.reorder_quantity,
		              last_restocked = EXCLUDED.last_restocked,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.Quantity, item.ReorderLevel, item.ReorderQuantity, item.LastRestocked,
	)
	if err != nil {
		return fmt.Errorf("upsert stock item: %w", err)
	}
	return nil
}

// ListLowStock lista los ítems en o bajo su nivel de reorden.
func (r *StockItemRepo) ListLowStock() ([]*entity.StockItem, error) {
	return r.list(`SELECT ` + stockItemColumns + ` FROM stock_items WHERE quantity <= reorder_level ORDER BY quantity`)
}

// ListOutOfStock lista los ítems agotados.
func (r *StockItemRepo) ListOutOfStock() ([]*entity.StockItem, error) {
	return r.list(`SELECT ` + stockItemColumns + ` FROM stock_items WHERE quantity = 0 ORDER BY updated_at DESC`)
}

func (r *StockItemRepo) list(query string) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *StockItemRepo) scanItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.ReorderLevel, &s.ReorderQuantity,
		&s.LastRestocked, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

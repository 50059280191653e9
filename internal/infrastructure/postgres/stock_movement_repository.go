package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro append-only de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: los movimientos no se editan ni se borran.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create anexa un movimiento al libro.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, stock_item_id, type, quantity_change, quantity_before, quantity_after, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StockItemID, m.Type, m.QuantityChange, m.QuantityBefore, m.QuantityAfter,
		m.Reference, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByStockItem lista movimientos de un ítem, más reciente primero.
func (r *StockMovementRepo) ListByStockItem(stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_item_id, type, quantity_change, quantity_before, quantity_after, reference, notes, created_at
		FROM stock_movements WHERE stock_item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stockItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.StockItemID, &m.Type, &m.QuantityChange,
			&m.QuantityBefore, &m.QuantityAfter, &m.Reference, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumDeltas suma los deltas de un ítem; debe coincidir siempre con su Quantity.
func (r *StockMovementRepo) SumDeltas(stockItemID string) (int, error) {
	query := `SELECT COALESCE(SUM(quantity_change), 0) FROM stock_movements WHERE stock_item_id = $1`
	var sum int
	if err := r.q.QueryRow(context.Background(), query, stockItemID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

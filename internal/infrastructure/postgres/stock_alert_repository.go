package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación de StockAlertRepository sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const alertColumns = `id, stock_item_id, status, message, created_at, acknowledged_at, resolved_at`

// Create persiste una alerta nueva.
func (r *StockAlertRepo) Create(a *entity.StockAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts (id, stock_item_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.StockItemID, a.Status, a.Message, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock alert: %w", err)
	}
	return nil
}

// GetOpenByStockItem obtiene la alerta abierta de un ítem, o nil.
func (r *StockAlertRepo) GetOpenByStockItem(stockItemID string) (*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE stock_item_id = $1 AND status IN ('active', 'acknowledged')
		ORDER BY created_at DESC LIMIT 1`
	var a entity.StockAlert
	err := r.q.QueryRow(context.Background(), query, stockItemID).Scan(
		&a.ID, &a.StockItemID, &a.Status, &a.Message, &a.CreatedAt, &a.AcknowledgedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open alert: %w", err)
	}
	return &a, nil
}

// ResolveOpen resuelve todas las alertas abiertas del ítem.
func (r *StockAlertRepo) ResolveOpen(stockItemID string, at time.Time) error {
	query := `
		UPDATE stock_alerts
		SET status = 'resolved', resolved_at = $2
		WHERE stock_item_id = $1 AND status IN ('active', 'acknowledged')`
	if _, err := r.q.Exec(context.Background(), query, stockItemID, at); err != nil {
		return fmt.Errorf("resolve alerts: %w", err)
	}
	return nil
}

// ListOpen lista las alertas sin resolver, más reciente primero.
func (r *StockAlertRepo) ListOpen() ([]*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE status IN ('active', 'acknowledged')
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list open alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(&a.ID, &a.StockItemID, &a.Status, &a.Message,
			&a.CreatedAt, &a.AcknowledgedAt, &a.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

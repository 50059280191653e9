package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL. Las líneas son
// snapshots: una vez insertadas no se actualizan nunca.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, customer_name, customer_email, customer_phone, order_type, status,
	notes, delivery_address, delivery_instructions,
	subtotal, delivery_fee, discount_amount, discount_code, total,
	cart_session_key, created_at, updated_at, completed_at`

// Create persiste la cabecera y todas las líneas.
func (r *OrderRepo) Create(o *entity.Order) error {
	ctx := context.Background()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Number, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.Type, o.Status,
		o.Notes, nullable(o.DeliveryAddress), o.DeliveryInstructions,
		o.Subtotal, o.DeliveryFee, o.DiscountAmount, nullable(o.DiscountCode), o.Total,
		o.CartSessionKey, o.CreatedAt, o.UpdatedAt, o.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, size_id, size_name, toppings, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		toppingsJSON, err := json.Marshal(it.Toppings)
		if err != nil {
			return fmt.Errorf("encode toppings: %w", err)
		}
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, o.ID, it.ProductID, it.ProductName,
			nullable(it.SizeID), nullable(it.SizeName),
			toppingsJSON, it.UnitPrice, it.Quantity, it.Subtotal,
		); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// GetByNumber obtiene una orden con sus líneas, o nil.
func (r *OrderRepo) GetByNumber(number string) (*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number = $1`
	o, err := r.scanOrder(r.q.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista órdenes, opcionalmente filtradas por estado, más reciente primero.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateStatus transiciona el estado; los estados finales sellan completed_at.
// Una orden ya finalizada no se toca: el WHERE excluye los estados finales,
// así dos cancelaciones concurrentes no pueden pasar las dos (el UPDATE toma
// el lock de la fila y la segunda ve el estado ya sellado).
func (r *OrderRepo) UpdateStatus(number, status string) error {
	ctx := context.Background()
	query := `
		UPDATE orders
		SET status = $2,
		    updated_at = now(),
		    completed_at = CASE WHEN $2 IN ('delivered', 'picked_up', 'cancelled') THEN now() ELSE completed_at END
		WHERE number = $1
		  AND status NOT IN ('delivered', 'picked_up', 'cancelled')`
	tag, err := r.q.Exec(ctx, query, number, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE number = $1)`, number).Scan(&exists); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if exists {
			return domain.ErrConflict
		}
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var deliveryAddress, discountCode *string
	err := row.Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.Type, &o.Status,
		&o.Notes, &deliveryAddress, &o.DeliveryInstructions,
		&o.Subtotal, &o.DeliveryFee, &o.DiscountAmount, &discountCode, &o.Total,
		&o.CartSessionKey, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deliveryAddress != nil {
		o.DeliveryAddress = *deliveryAddress
	}
	if discountCode != nil {
		o.DiscountCode = *discountCode
	}
	return &o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, o *entity.Order) error {
	query := `
		SELECT id, order_id, product_id, product_name, size_id, size_name, toppings, unit_price, quantity, subtotal
		FROM order_items WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, o.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		var sizeID, sizeName *string
		var toppingsJSON []byte
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&sizeID, &sizeName, &toppingsJSON, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if sizeID != nil {
			it.SizeID = *sizeID
		}
		if sizeName != nil {
			it.SizeName = *sizeName
		}
		if len(toppingsJSON) > 0 {
			if err := json.Unmarshal(toppingsJSON, &it.Toppings); err != nil {
				return fmt.Errorf("decode toppings: %w", err)
			}
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

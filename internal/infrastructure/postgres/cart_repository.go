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

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación de CartRepository sobre PostgreSQL. Los toppings de
// cada línea se guardan como snapshot JSONB con el precio como string decimal.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetBySessionKey obtiene el carrito de una sesión con sus líneas, o nil.
func (r *CartRepo) GetBySessionKey(sessionKey string) (*entity.Cart, error) {
	ctx := context.Background()
	query := `SELECT id, session_key, created_at, updated_at FROM carts WHERE session_key = $1`
	var c entity.Cart
	err := r.q.QueryRow(ctx, query, sessionKey).Scan(&c.ID, &c.SessionKey, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	itemsQuery := `
		SELECT id, cart_id, product_id, product_name, size_id, size_name, toppings, quantity, unit_price, created_at
		FROM cart_items WHERE cart_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, itemsQuery, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CartItem
		var sizeID, sizeName *string
		var toppingsJSON []byte
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.ProductName,
			&sizeID, &sizeName, &toppingsJSON, &it.Quantity, &it.UnitPrice, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		if sizeID != nil {
			it.SizeID = *sizeID
		}
		if sizeName != nil {
			it.SizeName = *sizeName
		}
		if len(toppingsJSON) > 0 {
			if err := json.Unmarshal(toppingsJSON, &it.Toppings); err != nil {
				return nil, fmt.Errorf("decode toppings: %w", err)
			}
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un carrito vacío.
func (r *CartRepo) Create(c *entity.Cart) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `INSERT INTO carts (id, session_key, created_at, updated_at) VALUES ($1, $2, now(), now())`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.SessionKey)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create cart: %w", err)
	}
	return nil
}

// AddItem persiste una línea con su snapshot de precio y toppings.
func (r *CartRepo) AddItem(item *entity.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	toppingsJSON, err := json.Marshal(item.Toppings)
	if err != nil {
		return fmt.Errorf("encode toppings: %w", err)
	}
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, product_name, size_id, size_name, toppings, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err = r.q.Exec(context.Background(), query,
		item.ID, item.CartID, item.ProductID, item.ProductName,
		nullable(item.SizeID), nullable(item.SizeName),
		toppingsJSON, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return r.touch(item.CartID)
}

// UpdateItem actualiza la cantidad de una línea; el snapshot no se toca.
func (r *CartRepo) UpdateItem(item *entity.CartItem) error {
	query := `UPDATE cart_items SET quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, item.ID, item.Quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.touch(item.CartID)
}

// RemoveItem elimina una línea.
func (r *CartRepo) RemoveItem(cartID, itemID string) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`
	tag, err := r.q.Exec(context.Background(), query, itemID, cartID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.touch(cartID)
}

// ClearItems elimina todas las líneas del carrito.
func (r *CartRepo) ClearItems(cartID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return r.touch(cartID)
}

func (r *CartRepo) touch(cartID string) error {
	_, err := r.q.Exec(context.Background(), `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

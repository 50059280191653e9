package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// CartRepository puerto de persistencia para carritos por clave de sesión.
// El carrito es dueño de sus líneas: ClearItems las elimina todas.
type CartRepository interface {
	GetBySessionKey(sessionKey string) (*entity.Cart, error)
	Create(cart *entity.Cart) error
	AddItem(item *entity.CartItem) error
	UpdateItem(item *entity.CartItem) error
	RemoveItem(cartID, itemID string) error
	ClearItems(cartID string) error
}

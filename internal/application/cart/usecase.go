// Package cart implementa el carrito de compras anónimo por clave de sesión.
// El precio unitario de cada línea se calcula y congela al agregarla: cambios
// posteriores de precios en el catálogo no alteran líneas existentes.
package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/pricing"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// UseCase casos de uso del carrito.
type UseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	catalogRepo repository.CatalogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	catalogRepo repository.CatalogRepository,
) *UseCase {
	return &UseCase{cartRepo: cartRepo, productRepo: productRepo, catalogRepo: catalogRepo}
}

// GetOrCreate devuelve el carrito de la sesión, creándolo si no existe.
func (uc *UseCase) GetOrCreate(ctx context.Context, sessionKey string) (*entity.Cart, error) {
	if sessionKey == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	now := time.Now()
	c = &entity.Cart{
		ID:         uuid.New().String(),
		SessionKey: sessionKey,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.cartRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem agrega una línea al carrito. Resuelve tamaño y toppings contra el
// catálogo vivo una única vez, valida la selección y guarda el snapshot:
// UnitPrice = base + modificador + Σ toppings, con los toppings serializados
// como copias con precio propio.
func (uc *UseCase) AddItem(ctx context.Context, sessionKey, productID, sizeID string, toppingIDs []string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsAvailable {
		return nil, domain.ErrNotFound
	}

	var size *entity.Size
	if sizeID != "" {
		size, err = uc.catalogRepo.GetSizeByID(sizeID)
		if err != nil {
			return nil, err
		}
		if size == nil {
			return nil, domain.ErrInvalidSelection
		}
	}

	snapshots := make([]entity.ToppingSnapshot, 0, len(toppingIDs))
	for _, id := range toppingIDs {
		topping, err := uc.catalogRepo.GetToppingByID(id)
		if err != nil {
			return nil, err
		}
		if topping == nil {
			return nil, domain.ErrInvalidSelection
		}
		snapshots = append(snapshots, entity.ToppingSnapshot{
			ID:    topping.ID,
			Name:  topping.Name,
			Price: topping.Price,
		})
	}

	unitPrice, err := pricing.LineItemPrice(product, size, snapshots)
	if err != nil {
		return nil, err
	}

	c, err := uc.GetOrCreate(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	item := &entity.CartItem{
		ID:          uuid.New().String(),
		CartID:      c.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Toppings:    snapshots,
		UnitPrice:   unitPrice,
		CreatedAt:   time.Now(),
	}
	if size != nil {
		item.SizeID = size.ID
		item.SizeName = size.Name
	}
	if err := uc.cartRepo.AddItem(item); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetBySessionKey(sessionKey)
}

// UpdateItemQuantity cambia la cantidad de una línea. El UnitPrice snapshot
// no se recalcula: solo cambia el multiplicador.
func (uc *UseCase) UpdateItemQuantity(ctx context.Context, sessionKey, itemID string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	c, err := uc.requireCart(sessionKey)
	if err != nil {
		return nil, err
	}
	item := findItem(c, itemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Quantity = quantity
	if err := uc.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetBySessionKey(sessionKey)
}

// RemoveItem elimina una línea del carrito.
func (uc *UseCase) RemoveItem(ctx context.Context, sessionKey, itemID string) (*entity.Cart, error) {
	c, err := uc.requireCart(sessionKey)
	if err != nil {
		return nil, err
	}
	if findItem(c, itemID) == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.cartRepo.RemoveItem(c.ID, itemID); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetBySessionKey(sessionKey)
}

// Clear vacía el carrito de la sesión.
func (uc *UseCase) Clear(ctx context.Context, sessionKey string) error {
	c, err := uc.requireCart(sessionKey)
	if err != nil {
		return err
	}
	return uc.cartRepo.ClearItems(c.ID)
}

// Total devuelve el total exacto del carrito de la sesión.
func (uc *UseCase) Total(ctx context.Context, sessionKey string) (*entity.Cart, error) {
	return uc.requireCart(sessionKey)
}

func (uc *UseCase) requireCart(sessionKey string) (*entity.Cart, error) {
	if sessionKey == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func findItem(c *entity.Cart, itemID string) *entity.CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

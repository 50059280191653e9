// Package catalog implementa la administración del menú: productos con sus
// tamaños y toppings permitidos.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// ProductView producto con sus tamaños y toppings resueltos del catálogo.
type ProductView struct {
	Product  *entity.Product
	Sizes    []*entity.Size
	Toppings []*entity.Topping
}

// UseCase casos de uso del catálogo.
type UseCase struct {
	productRepo repository.ProductRepository
	catalogRepo repository.CatalogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, catalogRepo repository.CatalogRepository) *UseCase {
	return &UseCase{productRepo: productRepo, catalogRepo: catalogRepo}
}

// CreateProduct da de alta un producto del menú.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*ProductView, error) {
	if in.Slug == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:              uuid.New().String(),
		Slug:            in.Slug,
		Name:            in.Name,
		Description:     in.Description,
		BasePrice:       in.BasePrice,
		IsAvailable:     true,
		TracksInventory: in.TracksInventory,
		ReorderLevel:    in.ReorderLevel,
		SizeIDs:         in.SizeIDs,
		ToppingIDs:      in.ToppingIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return uc.expand(p)
}

// GetProduct busca por slug; si no hay match intenta por ID.
func (uc *UseCase) GetProduct(ctx context.Context, slugOrID string) (*ProductView, error) {
	if slugOrID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetBySlug(slugOrID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = uc.productRepo.GetByID(slugOrID)
		if err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.expand(p)
}

// ListMenu lista el menú. Con onlyAvailable solo los productos publicados.
func (uc *UseCase) ListMenu(ctx context.Context, onlyAvailable bool) ([]*ProductView, error) {
	products, err := uc.productRepo.List(onlyAvailable)
	if err != nil {
		return nil, err
	}
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		v, err := uc.expand(p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// UpdateProduct actualiza los campos editables de un producto existente.
func (uc *UseCase) UpdateProduct(ctx context.Context, slugOrID string, in dto.UpdateProductRequest) (*ProductView, error) {
	view, err := uc.GetProduct(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	p := view.Product
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.BasePrice != nil {
		if in.BasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.BasePrice = *in.BasePrice
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.SizeIDs != nil {
		p.SizeIDs = in.SizeIDs
	}
	if in.ToppingIDs != nil {
		p.ToppingIDs = in.ToppingIDs
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return uc.expand(p)
}

// expand resuelve los tamaños y toppings permitidos del producto.
func (uc *UseCase) expand(p *entity.Product) (*ProductView, error) {
	sizes, err := uc.catalogRepo.ListSizes(p.ID)
	if err != nil {
		return nil, err
	}
	toppings, err := uc.catalogRepo.ListToppings(p.ID)
	if err != nil {
		return nil, err
	}
	return &ProductView{Product: p, Sizes: sizes, Toppings: toppings}, nil
}

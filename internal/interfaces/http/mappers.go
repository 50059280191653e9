package http

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

func toProductResponse(v *catalog.ProductView) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:              v.Product.ID,
		Slug:            v.Product.Slug,
		Name:            v.Product.Name,
		Description:     v.Product.Description,
		BasePrice:       v.Product.BasePrice,
		IsAvailable:     v.Product.IsAvailable,
		TracksInventory: v.Product.TracksInventory,
	}
	for _, s := range v.Sizes {
		out.Sizes = append(out.Sizes, dto.SizeResponse{
			ID: s.ID, Name: s.Name, PriceModifier: s.PriceModifier,
		})
	}
	for _, t := range v.Toppings {
		out.Toppings = append(out.Toppings, dto.ToppingResponse{
			ID: t.ID, Name: t.Name, Price: t.Price,
		})
	}
	return out
}

func toCartResponse(c *entity.Cart) dto.CartResponse {
	out := dto.CartResponse{
		SessionKey: c.SessionKey,
		Items:      make([]dto.CartItemResponse, 0, len(c.Items)),
		Total:      decimal.Zero,
	}
	for _, it := range c.Items {
		out.Total = out.Total.Add(it.Subtotal())
		out.Items = append(out.Items, dto.CartItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SizeName:    it.SizeName,
			Toppings:    toToppingResponses(it.Toppings),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		Number:         o.Number,
		CustomerName:   o.CustomerName,
		OrderType:      o.Type,
		Status:         o.Status,
		Subtotal:       o.Subtotal,
		DeliveryFee:    o.DeliveryFee,
		DiscountAmount: o.DiscountAmount,
		DiscountCode:   o.DiscountCode,
		Total:          o.Total,
		Items:          make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SizeName:    it.SizeName,
			Toppings:    toToppingResponses(it.Toppings),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

func toStockItemResponse(s *entity.StockItem) dto.StockItemResponse {
	status := "in_stock"
	switch {
	case s.IsOutOfStock():
		status = "out_of_stock"
	case s.IsLowStock():
		status = "low_stock"
	}
	return dto.StockItemResponse{
		ProductID:    s.ProductID,
		Quantity:     s.Quantity,
		ReorderLevel: s.ReorderLevel,
		Status:       status,
	}
}

func toStockItemResponses(items []*entity.StockItem) []dto.StockItemResponse {
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toStockItemResponse(s))
	}
	return out
}

func toStockAlertResponse(a *entity.StockAlert) dto.StockAlertResponse {
	return dto.StockAlertResponse{
		ID:          a.ID,
		StockItemID: a.StockItemID,
		Status:      a.Status,
		Message:     a.Message,
		CreatedAt:   a.CreatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:             m.ID,
		Type:           m.Type,
		QuantityChange: m.QuantityChange,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reference:      m.Reference,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

func toToppingResponses(snapshots []entity.ToppingSnapshot) []dto.ToppingResponse {
	if len(snapshots) == 0 {
		return nil
	}
	out := make([]dto.ToppingResponse, 0, len(snapshots))
	for _, t := range snapshots {
		out = append(out, dto.ToppingResponse{ID: t.ID, Name: t.Name, Price: t.Price})
	}
	return out
}

package memory

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

func cloneProduct(p *entity.Product) *entity.Product {
	out := *p
	out.SizeIDs = append([]string(nil), p.SizeIDs...)
	out.ToppingIDs = append([]string(nil), p.ToppingIDs...)
	return &out
}

func cloneSize(s *entity.Size) *entity.Size {
	out := *s
	return &out
}

func cloneTopping(t *entity.Topping) *entity.Topping {
	out := *t
	return &out
}

func cloneCart(c *entity.Cart) *entity.Cart {
	out := *c
	out.Items = make([]entity.CartItem, len(c.Items))
	for i, it := range c.Items {
		out.Items[i] = it
		out.Items[i].Toppings = append([]entity.ToppingSnapshot(nil), it.Toppings...)
	}
	return &out
}

func cloneOrder(o *entity.Order) *entity.Order {
	out := *o
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		out.CompletedAt = &t
	}
	out.Items = make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		out.Items[i] = it
		out.Items[i].Toppings = append([]entity.ToppingSnapshot(nil), it.Toppings...)
	}
	return &out
}

func cloneStockItem(s *entity.StockItem) *entity.StockItem {
	out := *s
	if s.LastRestocked != nil {
		t := *s.LastRestocked
		out.LastRestocked = &t
	}
	return &out
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	out := *m
	return &out
}

func cloneAlert(a *entity.StockAlert) *entity.StockAlert {
	out := *a
	if a.AcknowledgedAt != nil {
		t := *a.AcknowledgedAt
		out.AcknowledgedAt = &t
	}
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		out.ResolvedAt = &t
	}
	return &out
}

func clonePromotion(p *entity.Promotion) *entity.Promotion {
	out := *p
	return &out
}

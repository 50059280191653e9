package dto

import "time"

// ReceiveStockRequest body para POST /api/inventory/receipts.
type ReceiveStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Delta con signo: positivo agrega, negativo descuenta.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
}

// ReturnStockRequest body para POST /api/inventory/returns.
type ReturnStockRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	OrderNumber string `json:"order_number"`
}

// StockItemResponse existencias actuales de un producto.
type StockItemResponse struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
	Status       string `json:"status"` // in_stock | low_stock | out_of_stock | untracked
}

// StockAlertResponse alerta de stock bajo sin resolver.
type StockAlertResponse struct {
	ID          string    `json:"id"`
	StockItemID string    `json:"stock_item_id"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// LedgerAuditResponse contraste entre el saldo y la suma del libro.
type LedgerAuditResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	SumDeltas int    `json:"sum_deltas"`
	Balanced  bool   `json:"balanced"`
}

// StockMovementResponse entrada del libro de movimientos.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reference      string    `json:"reference,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

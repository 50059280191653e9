package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidSelection  = errors.New("tamaño o topping no permitido para el producto")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidAdjustment = errors.New("el ajuste dejaría el stock en negativo")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCartEmpty         = errors.New("el carrito está vacío")
	ErrInvalidPromotion  = errors.New("código de promoción inválido")
)

package inventory

import (
	"context"

	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Junto con el bloqueo de fila en StockItem
// garantiza que actualizar la cantidad y anexar el movimiento sea una unidad
// atómica y serializable por ítem.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.StockAlertRepository,
	) error) error
}

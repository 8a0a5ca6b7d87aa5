package inventory

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los repos
// de stock y movimientos atados a esa tx. El cambio de cantidad y su registro de
// auditoría se confirman como unidad.
type TxRunner interface {
	RunMovement(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

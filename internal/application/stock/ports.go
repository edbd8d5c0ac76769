package stock

import (
	"context"

	"github.com/salvaclients/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el movimiento y la nueva proyección de stock se
// confirmen juntos o ninguno (Commit/Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

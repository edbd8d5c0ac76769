package repository

import (
	"context"
	"time"

	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger de movimientos (append-only).
// Los registros nunca se actualizan ni se eliminan después de confirmados.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct lista los movimientos de un producto en orden created_at
	// ascendente (orden de replay). from/to opcionales acotan el rango.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error)
}

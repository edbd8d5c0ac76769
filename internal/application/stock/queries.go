package stock

import (
	"context"
	"time"

	"github.com/salvaclients/stock-ledger-api/internal/domain"
	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
	"github.com/salvaclients/stock-ledger-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el ledger
// (auditoría y reconciliación; fuera del camino caliente de RecordMovement).
type MovementQueryUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// ListByProduct lista los movimientos de un producto en orden de replay (ascendente).
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.movRepo.ListByProduct(ctx, productID, from, to, limit, offset)
}

// ListAll lista todos los movimientos con paginación.
func (uc *MovementQueryUseCase) ListAll(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListAll(ctx, limit, offset)
}

// ReconcileResult comparación entre la proyección materializada y el ledger.
type ReconcileResult struct {
	ProductID  string
	Projected  int // StockQuantity materializado en products
	Ledger     int // suma neta del replay de movimientos
	Consistent bool
}

// Reconcile reproduce el ledger completo de un producto y lo compara con su
// StockQuantity materializado. Pagina el replay para no cargar todo en memoria.
func (uc *MovementQueryUseCase) Reconcile(ctx context.Context, productID string) (*ReconcileResult, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	const batch = 500
	net := 0
	for offset := 0; ; offset += batch {
		movements, err := uc.movRepo.ListByProduct(ctx, productID, nil, nil, batch, offset)
		if err != nil {
			return nil, err
		}
		net += entity.NetQuantity(movements)
		if len(movements) < batch {
			break
		}
	}

	return &ReconcileResult{
		ProductID:  productID,
		Projected:  product.StockQuantity,
		Ledger:     net,
		Consistent: product.StockQuantity == net,
	}, nil
}

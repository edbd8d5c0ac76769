package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/salvaclients/stock-ledger-api/internal/domain"
	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
	"github.com/salvaclients/stock-ledger-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock de forma transaccional:
// bloqueo de fila del producto (SELECT FOR UPDATE), validación de stock no negativo
// y escritura del movimiento + proyección en un solo Commit.
type RecordMovementUseCase struct {
	txRunner TxRunner
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento de stock.
// Actor es opcional: vacío se atribuye a "system" (política del sistema invocante).
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	UnitPrice *decimal.Decimal
	Supplier  string
	Notes     string
	Actor     string
}

// MovementResult producto actualizado y movimiento persistido tras un registro exitoso.
type MovementResult struct {
	Product  *entity.Product
	Movement *entity.StockMovement
}

// RecordMovement valida la entrada, bloquea la fila del producto, calcula la nueva
// cantidad y confirma movimiento + proyección como unidad atómica.
// Si falla cualquier paso no queda ningún estado parcial visible.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	// Entrada malformada nunca llega a tocar la proyección.
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidMovement
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidMovement
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidMovement
	}
	actor := input.Actor
	if actor == "" {
		actor = entity.ActorSystem
	}

	var result MovementResult

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo garantiza).
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: los movimientos concurrentes sobre el mismo
		// producto se serializan aquí; otros productos no se bloquean.
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		candidate := product.StockQuantity
		if input.Type == entity.MovementTypeIN {
			candidate += input.Quantity
		} else {
			candidate -= input.Quantity
		}
		if candidate < 0 {
			return &domain.InsufficientStockError{
				Available: product.StockQuantity,
				Requested: input.Quantity,
			}
		}

		now := time.Now()
		if err := productRepo.UpdateStock(ctx, product.ID, candidate); err != nil {
			return err
		}
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			UnitPrice: input.UnitPrice,
			Supplier:  input.Supplier,
			Notes:     input.Notes,
			CreatedBy: actor,
			CreatedAt: now,
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}

		product.StockQuantity = candidate
		product.UpdatedAt = now
		result.Product = product
		result.Movement = movement
		return nil
	})
	if err != nil {
		// Fallos de dominio se devuelven tal cual; cualquier otro fallo
		// (conexión, timeout, commit) se clasifica como error de persistencia.
		var insufficient *domain.InsufficientStockError
		if errors.Is(err, domain.ErrProductNotFound) || errors.As(err, &insufficient) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return &result, nil
}

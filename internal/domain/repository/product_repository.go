package repository

import (
	"context"

	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones deben soportar ejecutarse con pool o dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Dentro de una transacción serializa los movimientos concurrentes del mismo
	// producto; productos distintos no se bloquean entre sí.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza los datos del producto. No toca StockQuantity:
	// la proyección de stock solo muta vía UpdateStock dentro de la tx de un movimiento.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija la proyección de stock. Debe llamarse únicamente dentro de la
	// misma transacción que persiste el movimiento correspondiente.
	UpdateStock(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListBelowMinStock devuelve los productos con stock por debajo de su mínimo,
	// ordenados por mayor déficit primero.
	ListBelowMinStock(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

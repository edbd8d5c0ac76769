package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/salvaclients/stock-ledger-api/internal/application/stock"
	"github.com/salvaclients/stock-ledger-api/internal/domain"
	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
	"github.com/salvaclients/stock-ledger-api/internal/infrastructure/memory"
)

func TestListByProduct_OrdenDeReplayYLecturaIdempotente(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", 0)
	seedProduct(store, "p2", 0)
	record := stock.NewRecordMovementUseCase(store)
	query := stock.NewMovementQueryUseCase(store.MovementRepo(), store.ProductRepo())
	ctx := context.Background()

	for _, qty := range []int{5, 3, 2} {
		_, err := record.RecordMovement(ctx, stock.MovementInput{
			ProductID: "p1", Type: entity.MovementTypeIN, Quantity: qty,
		})
		require.NoError(t, err)
	}
	// Ruido en otro producto: no debe aparecer en el listado de p1.
	_, err := record.RecordMovement(ctx, stock.MovementInput{
		ProductID: "p2", Type: entity.MovementTypeIN, Quantity: 99,
	})
	require.NoError(t, err)

	first, err := query.ListByProduct(ctx, "p1", nil, nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Orden de replay: ascendente por fecha de creación.
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].CreatedAt.Before(first[i-1].CreatedAt),
			"los movimientos deben venir en orden ascendente")
	}
	assert.Equal(t, []int{5, 3, 2}, []int{first[0].Quantity, first[1].Quantity, first[2].Quantity})

	// Dos lecturas sin escrituras intermedias devuelven lo mismo.
	second, err := query.ListByProduct(ctx, "p1", nil, nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestListByProduct_ProductoInexistente(t *testing.T) {
	store := memory.NewStore()
	query := stock.NewMovementQueryUseCase(store.MovementRepo(), store.ProductRepo())

	_, err := query.ListByProduct(context.Background(), "no-existe", nil, nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReconcile_ProyeccionConsistenteConLedger(t *testing.T) {
	store := memory.NewStore()
	seedProduct(store, "p1", 0)
	record := stock.NewRecordMovementUseCase(store)
	query := stock.NewMovementQueryUseCase(store.MovementRepo(), store.ProductRepo())
	ctx := context.Background()

	moves := []struct {
		movType string
		qty     int
	}{
		{entity.MovementTypeIN, 12},
		{entity.MovementTypeOUT, 5},
		{entity.MovementTypeIN, 1},
	}
	for _, mv := range moves {
		_, err := record.RecordMovement(ctx, stock.MovementInput{
			ProductID: "p1", Type: mv.movType, Quantity: mv.qty,
		})
		require.NoError(t, err)
	}

	result, err := query.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, result.Projected)
	assert.Equal(t, 8, result.Ledger)
	assert.True(t, result.Consistent)
}

func TestReconcile_DetectaProyeccionDesviada(t *testing.T) {
	store := memory.NewStore()
	// Proyección sembrada a mano sin movimientos que la respalden.
	seedProduct(store, "p1", 7)
	query := stock.NewMovementQueryUseCase(store.MovementRepo(), store.ProductRepo())

	result, err := query.Reconcile(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, result.Projected)
	assert.Equal(t, 0, result.Ledger)
	assert.False(t, result.Consistent)
}

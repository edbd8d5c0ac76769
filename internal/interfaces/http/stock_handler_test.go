package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvaclients/stock-ledger-api/internal/application/dto"
	"github.com/salvaclients/stock-ledger-api/internal/application/stock"
	"github.com/salvaclients/stock-ledger-api/internal/application/usecase"
	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
	"github.com/salvaclients/stock-ledger-api/internal/infrastructure/memory"
	apphttp "github.com/salvaclients/stock-ledger-api/internal/interfaces/http"
	pkgtoken "github.com/salvaclients/stock-ledger-api/pkg/token"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "stock-ledger-test"
)

// buildTestApp construye la aplicación Fiber completa sobre el almacén en memoria.
func buildTestApp(store *memory.Store) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(store.ProductRepo()),
		RecordMovement: stock.NewRecordMovementUseCase(store),
		MovementQuery:  stock.NewMovementQueryUseCase(store.MovementRepo(), store.ProductRepo()),
		JWTSecret:      testJWTSecret,
	})
	return app
}

func seedTestProduct(store *memory.Store, id string, qty int) {
	now := time.Now()
	store.SeedProduct(&entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(10),
		StockQuantity: qty,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func postMovement(t *testing.T, app *fiber.App, body dto.RecordMovementRequest, bearer string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/stock-movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "cuerpo inesperado: %s", raw)
}

func TestRecordMovementHandler_Creado(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 10)
	app := buildTestApp(store)

	resp := postMovement(t, app, dto.RecordMovementRequest{
		ProductID: "p1", Type: "IN", Quantity: 5, Supplier: "Proveedor SA",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.RecordMovementResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "p1", body.Product.ID)
	assert.Equal(t, 15, body.Product.StockQuantity)
	assert.Equal(t, "IN", body.Movement.Type)
	assert.Equal(t, 5, body.Movement.Quantity)
	assert.Equal(t, "Proveedor SA", body.Movement.Supplier)
	assert.Equal(t, entity.ActorSystem, body.Movement.CreatedBy, "sin token el actor es system")
	assert.NotEmpty(t, body.Movement.ID)
}

func TestRecordMovementHandler_ActorDelToken(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 0)
	app := buildTestApp(store)

	tok, err := pkgtoken.Generate(testJWTSecret, "carlos", testIssuer, 60)
	require.NoError(t, err)

	resp := postMovement(t, app, dto.RecordMovementRequest{
		ProductID: "p1", Type: "IN", Quantity: 3,
	}, tok)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.RecordMovementResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "carlos", body.Movement.CreatedBy)
}

func TestRecordMovementHandler_TokenInvalido(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 0)
	app := buildTestApp(store)

	resp := postMovement(t, app, dto.RecordMovementRequest{
		ProductID: "p1", Type: "IN", Quantity: 1,
	}, "no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRecordMovementHandler_StockInsuficiente(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 4)
	app := buildTestApp(store)

	resp := postMovement(t, app, dto.RecordMovementRequest{
		ProductID: "p1", Type: "OUT", Quantity: 9,
	}, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body dto.InsufficientStockResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, 4, body.Available)
	assert.Equal(t, 9, body.Requested)

	// Nada quedó escrito.
	assert.Empty(t, store.Movements())
}

func TestRecordMovementHandler_Errores(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 10)
	app := buildTestApp(store)

	cases := []struct {
		name       string
		body       dto.RecordMovementRequest
		wantStatus int
	}{
		{"cantidad cero", dto.RecordMovementRequest{ProductID: "p1", Type: "IN", Quantity: 0}, fiber.StatusBadRequest},
		{"tipo desconocido", dto.RecordMovementRequest{ProductID: "p1", Type: "TRANSFER", Quantity: 1}, fiber.StatusBadRequest},
		{"producto inexistente", dto.RecordMovementRequest{ProductID: "ghost", Type: "IN", Quantity: 1}, fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postMovement(t, app, tc.body, "")
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestListProductMovementsHandler_ReplayAscendente(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 0)
	app := buildTestApp(store)

	for _, qty := range []int{8, 2, 5} {
		resp := postMovement(t, app, dto.RecordMovementRequest{
			ProductID: "p1", Type: "IN", Quantity: qty,
		}, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/p1/movements", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.MovementListResponse
	decodeJSON(t, resp, &body)
	require.Len(t, body.Items, 3)
	assert.Equal(t, []int{8, 2, 5}, []int{body.Items[0].Quantity, body.Items[1].Quantity, body.Items[2].Quantity})
}

func TestReconcileHandler(t *testing.T) {
	store := memory.NewStore()
	seedTestProduct(store, "p1", 0)
	app := buildTestApp(store)

	resp := postMovement(t, app, dto.RecordMovementRequest{ProductID: "p1", Type: "IN", Quantity: 6}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/products/p1/reconcile", nil)
	httpResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, httpResp.StatusCode)

	var body dto.ReconcileResponse
	decodeJSON(t, httpResp, &body)
	assert.Equal(t, 6, body.Projected)
	assert.Equal(t, 6, body.Ledger)
	assert.True(t, body.Consistent)
}

package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvaclients/stock-ledger-api/internal/application/dto"
	"github.com/salvaclients/stock-ledger-api/internal/infrastructure/memory"
)

func TestProductHandler_CrearYConsultar(t *testing.T) {
	store := memory.NewStore()
	app := buildTestApp(store)

	raw, err := json.Marshal(dto.CreateProductRequest{
		Name:     "Tinte",
		Category: "coloración",
		Price:    decimal.NewFromInt(45),
		MinStock: 3,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.ProductResponse
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.StockQuantity)

	req = httptest.NewRequest(http.MethodGet, "/api/products/"+created.ID, nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProductHandler_NoEncontrado(t *testing.T) {
	store := memory.NewStore()
	app := buildTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/products/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/salvaclients/stock-ledger-api/internal/application/dto"
	"github.com/salvaclients/stock-ledger-api/internal/application/stock"
	"github.com/salvaclients/stock-ledger-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP de movimientos de stock.
type StockHandler struct {
	record *stock.RecordMovementUseCase
	query  *stock.MovementQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(record *stock.RecordMovementUseCase, query *stock.MovementQueryUseCase) *StockHandler {
	return &StockHandler{record: record, query: query}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, type (IN|OUT), quantity, unit_price/supplier/notes opcionales"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock-movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.record.RecordMovement(c.Context(), stock.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Supplier:  in.Supplier,
		Notes:     in.Notes,
		Actor:     GetActor(c),
	})
	if err != nil {
		return mapMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Product: dto.ProductStockResponse{
			ID:            result.Product.ID,
			StockQuantity: result.Product.StockQuantity,
		},
		Movement: dto.ToMovementResponse(result.Movement),
	})
}

// ListMovements godoc
// @Summary      Listar todos los movimientos de stock
// @Tags         stock
// @Produce      json
// @Param        limit   query  int  false  "máximo de registros (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock-movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.query.ListAll(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
	}
	return c.JSON(dto.ToMovementListResponse(list, page.Limit, page.Offset))
}

// ListProductMovements godoc
// @Summary      Listar movimientos de un producto (orden de replay)
// @Tags         stock
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "RFC3339, inicio del rango"
// @Param        to      query  string  false  "RFC3339, fin del rango"
// @Param        limit   query  int     false  "máximo de registros (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListProductMovements(c *fiber.Ctx) error {
	productID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC3339)"})
	}

	list, err := h.query.ListByProduct(c.Context(), productID, from, to, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
	}
	return c.JSON(dto.ToMovementListResponse(list, page.Limit, page.Offset))
}

// ReconcileProduct godoc
// @Summary      Comparar la proyección de stock contra el replay del ledger
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile [get]
func (h *StockHandler) ReconcileProduct(c *fiber.Ctx) error {
	result, err := h.query.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:  result.ProductID,
		Projected:  result.Projected,
		Ledger:     result.Ledger,
		Consistent: result.Consistent,
	})
}

func mapMovementError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   insufficient.Error(),
			Available: insufficient.Available,
			Requested: insufficient.Requested,
		})
	}
	if errors.Is(err, domain.ErrInvalidMovement) || errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/stock-movements.
type RecordMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"` // IN | OUT
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier  string           `json:"supplier,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// MovementResponse un movimiento de stock confirmado.
type MovementResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier  string           `json:"supplier,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedBy string           `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
}

// ProductStockResponse proyección de stock del producto tras un movimiento.
type ProductStockResponse struct {
	ID            string `json:"id"`
	StockQuantity int    `json:"stock_quantity"`
}

// RecordMovementResponse respuesta de POST /api/stock-movements: el producto
// actualizado y el movimiento persistido, ambos de la misma transacción.
type RecordMovementResponse struct {
	Product  ProductStockResponse `json:"product"`
	Movement MovementResponse     `json:"movement"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReconcileResponse resultado de comparar proyección vs. ledger de un producto.
type ReconcileResponse struct {
	ProductID  string `json:"product_id"`
	Projected  int    `json:"projected"`
	Ledger     int    `json:"ledger"`
	Consistent bool   `json:"consistent"`
}

// InsufficientStockResponse error 409 con el stock disponible y el solicitado.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Supplier:  m.Supplier,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementListResponse mapea un listado de movimientos con su página.
func ToMovementListResponse(list []*entity.StockMovement, limit, offset int) MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return MovementListResponse{
		Items: items,
		Page:  PageResponse{Limit: limit, Offset: offset},
	}
}

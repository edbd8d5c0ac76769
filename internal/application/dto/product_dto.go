package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// El stock inicial siempre es 0: solo los movimientos lo modifican.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category,omitempty"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	MinStock       int             `json:"min_stock,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Supplier       string          `json:"supplier,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// No incluye stock: la proyección solo muta vía movimientos.
type UpdateProductRequest struct {
	Name           *string          `json:"name,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	MinStock       *int             `json:"min_stock,omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Supplier       *string          `json:"supplier,omitempty"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category,omitempty"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	StockQuantity  int             `json:"stock_quantity"`
	MinStock       int             `json:"min_stock"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Supplier       string          `json:"supplier,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

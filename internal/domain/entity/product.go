package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// StockQuantity es una proyección materializada: siempre igual a la suma neta de los
// movimientos confirmados del producto, y solo muta como efecto de RecordMovement.
type Product struct {
	ID             string
	Name           string
	Category       string
	Description    string
	Price          decimal.Decimal
	StockQuantity  int // nunca negativo
	MinStock       int // umbral de alerta de reposición
	ExpirationDate *time.Time
	Supplier       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

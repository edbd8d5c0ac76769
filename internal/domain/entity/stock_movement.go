package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// ActorSystem se atribuye a los movimientos registrados sin usuario autenticado.
const ActorSystem = "system"

// StockMovement representa un movimiento de stock (entrada o salida).
// Inmutable una vez confirmado: el ledger es append-only, nunca se actualiza ni borra.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string           // IN, OUT
	Quantity  int              // siempre > 0; el signo lo da Type
	UnitPrice *decimal.Decimal // informativo, no participa en el cálculo de stock
	Supplier  string
	Notes     string
	CreatedBy string // nunca vacío; "system" si no hay usuario autenticado
	CreatedAt time.Time
}

// ValidMovementType indica si el tipo de movimiento es conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// SignedQuantity cantidad con signo según el tipo (IN positiva, OUT negativa).
func (m *StockMovement) SignedQuantity() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}

// NetQuantity suma neta de una secuencia de movimientos. Reproducir el ledger de un
// producto con esta función debe dar exactamente su StockQuantity materializado.
func NetQuantity(movements []*StockMovement) int {
	total := 0
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}

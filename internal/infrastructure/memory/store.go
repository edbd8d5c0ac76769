// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en pruebas de casos de uso y handlers sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/salvaclients/stock-ledger-api/internal/application/stock"
	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
	"github.com/salvaclients/stock-ledger-api/internal/domain/repository"
)

var _ stock.TxRunner = (*Store)(nil)

// Store almacén en memoria. Un único mutex serializa las transacciones: es el
// equivalente (más restrictivo) del bloqueo de fila por producto del adaptador
// PostgreSQL, por lo que conserva la misma semántica de aislamiento.
type Store struct {
	mu sync.Mutex
	st state

	// FailMovementCreate hace fallar el próximo Create de movimiento con este
	// error. Inyección de fallas para probar el rollback atómico.
	FailMovementCreate error
}

type state struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: state{products: make(map[string]*entity.Product)}}
}

// SeedProduct inserta un producto directamente (preparación de pruebas).
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.st.products[p.ID] = &cp
}

// Run ejecuta fn sobre una copia del estado y solo publica los cambios si fn
// retorna nil y el contexto sigue vivo: commit o rollback, nunca estado parcial.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.st.clone()
	movRepo := &txMovementRepo{st: tx, store: s}
	productRepo := &txProductRepo{st: tx}
	if err := fn(movRepo, productRepo); err != nil {
		return err
	}
	// Cancelación antes del commit: se descarta la copia completa.
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = *tx
	return nil
}

// ProductRepo devuelve un repositorio de productos fuera de transacción.
func (s *Store) ProductRepo() repository.ProductRepository {
	return &lockedProductRepo{s: s}
}

// MovementRepo devuelve un repositorio del ledger fuera de transacción.
func (s *Store) MovementRepo() repository.StockMovementRepository {
	return &lockedMovementRepo{s: s}
}

// Movements devuelve una copia de todos los movimientos confirmados.
func (s *Store) Movements() []*entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.copyMovements()
}

func (st *state) clone() *state {
	products := make(map[string]*entity.Product, len(st.products))
	for id, p := range st.products {
		cp := *p
		products[id] = &cp
	}
	return &state{
		products:  products,
		movements: append([]*entity.StockMovement(nil), st.movements...),
	}
}

func (st *state) copyMovements() []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0, len(st.movements))
	for _, m := range st.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out
}

func (st *state) getProduct(id string) *entity.Product {
	p, ok := st.products[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (st *state) putProduct(p *entity.Product) {
	cp := *p
	st.products[p.ID] = &cp
}

func (st *state) updateStock(id string, quantity int) {
	if p, ok := st.products[id]; ok {
		p.StockQuantity = quantity
		p.UpdatedAt = time.Now()
	}
}

func (st *state) listProducts(limit, offset int) []*entity.Product {
	ids := make([]string, 0, len(st.products))
	for id := range st.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return st.products[ids[i]].Name < st.products[ids[j]].Name
	})
	var out []*entity.Product
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		cp := *st.products[ids[i]]
		out = append(out, &cp)
	}
	return out
}

func (st *state) listBelowMinStock() []*entity.Product {
	var out []*entity.Product
	for _, p := range st.products {
		if p.StockQuantity < p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return (out[i].MinStock - out[i].StockQuantity) > (out[j].MinStock - out[j].StockQuantity)
	})
	return out
}

func (st *state) addMovement(m *entity.StockMovement) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	st.movements = append(st.movements, &cp)
}

func (st *state) getMovement(id string) *entity.StockMovement {
	for _, m := range st.movements {
		if m.ID == id {
			cp := *m
			return &cp
		}
	}
	return nil
}

func (st *state) listByProduct(productID string, from, to *time.Time, limit, offset int) []*entity.StockMovement {
	var matched []*entity.StockMovement
	for _, m := range st.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		matched = append(matched, m)
	}
	// Orden de replay: created_at ascendente (inserción estable como desempate).
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	var out []*entity.StockMovement
	for i := offset; i < len(matched) && len(out) < limit; i++ {
		cp := *matched[i]
		out = append(out, &cp)
	}
	return out
}

func (st *state) listAll(limit, offset int) []*entity.StockMovement {
	ordered := append([]*entity.StockMovement(nil), st.movements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	var out []*entity.StockMovement
	for i := offset; i < len(ordered) && len(out) < limit; i++ {
		cp := *ordered[i]
		out = append(out, &cp)
	}
	return out
}

package memory

import (
	"context"
	"time"

	"github.com/salvaclients/stock-ledger-api/internal/domain/entity"
	"github.com/salvaclients/stock-ledger-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*txProductRepo)(nil)
	_ repository.StockMovementRepository = (*txMovementRepo)(nil)
	_ repository.ProductRepository       = (*lockedProductRepo)(nil)
	_ repository.StockMovementRepository = (*lockedMovementRepo)(nil)
)

// txProductRepo opera sobre el estado de una transacción (ya bajo el lock de Run).
type txProductRepo struct {
	st *state
}

func (r *txProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.st.putProduct(p)
	return nil
}

func (r *txProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.st.getProduct(id), nil
}

// GetForUpdate en memoria equivale a GetByID: el lock exclusivo de Run ya
// serializa toda la transacción.
func (r *txProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return r.st.getProduct(id), nil
}

func (r *txProductRepo) Update(_ context.Context, p *entity.Product) error {
	existing := r.st.getProduct(p.ID)
	if existing == nil {
		return nil
	}
	// stock_quantity no se toca en Update (regla del puerto).
	cp := *p
	cp.StockQuantity = existing.StockQuantity
	r.st.putProduct(&cp)
	return nil
}

func (r *txProductRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	r.st.updateStock(id, quantity)
	return nil
}

func (r *txProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.st.listProducts(limit, offset), nil
}

func (r *txProductRepo) ListBelowMinStock(_ context.Context) ([]*entity.Product, error) {
	return r.st.listBelowMinStock(), nil
}

func (r *txProductRepo) Delete(_ context.Context, id string) error {
	delete(r.st.products, id)
	return nil
}

// txMovementRepo opera sobre el estado de una transacción.
type txMovementRepo struct {
	st    *state
	store *Store
}

func (r *txMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if err := r.store.FailMovementCreate; err != nil {
		r.store.FailMovementCreate = nil
		return err
	}
	r.st.addMovement(m)
	return nil
}

func (r *txMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	return r.st.getMovement(id), nil
}

func (r *txMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.st.listByProduct(productID, from, to, limit, offset), nil
}

func (r *txMovementRepo) ListAll(_ context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	return r.st.listAll(limit, offset), nil
}

// lockedProductRepo repositorio fuera de transacción: toma el lock por operación.
type lockedProductRepo struct {
	s *Store
}

func (r *lockedProductRepo) tx() *txProductRepo { return &txProductRepo{st: &r.s.st} }

func (r *lockedProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().Create(ctx, p)
}

func (r *lockedProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().GetByID(ctx, id)
}

func (r *lockedProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().GetForUpdate(ctx, id)
}

func (r *lockedProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().Update(ctx, p)
}

func (r *lockedProductRepo) UpdateStock(ctx context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().UpdateStock(ctx, id, quantity)
}

func (r *lockedProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().List(ctx, limit, offset)
}

func (r *lockedProductRepo) ListBelowMinStock(ctx context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().ListBelowMinStock(ctx)
}

func (r *lockedProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.tx().Delete(ctx, id)
}

// lockedMovementRepo repositorio del ledger fuera de transacción.
type lockedMovementRepo struct {
	s *Store
}

func (r *lockedMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.addMovement(m)
	return nil
}

func (r *lockedMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.st.getMovement(id), nil
}

func (r *lockedMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.st.listByProduct(productID, from, to, limit, offset), nil
}

func (r *lockedMovementRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.st.listAll(limit, offset), nil
}

package memoryrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

// MemoryProductRepository is an in-memory product catalog, used when the
// service runs without Postgres and as a test fake. Stock decrements are
// all-or-nothing under the repository lock, so concurrent placements can
// never drive a quantity negative.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]product.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]product.Product),
	}
}

func (r *MemoryProductRepository) Insert(
	ctx context.Context,
	p product.Product,
) (*product.Product, error) {
	_ = ctx

	now := time.Now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p

	return &p, nil
}

// Seed stores a product as-is, keeping the caller's id. Test helper.
func (r *MemoryProductRepository) Seed(p product.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p
}

func (r *MemoryProductRepository) FindByName(
	ctx context.Context,
	name string,
) (*product.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Name == name {
			return &p, nil
		}
	}

	return nil, nil
}

func (r *MemoryProductRepository) FindAllByID(
	ctx context.Context,
	ids []string,
) ([]product.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *MemoryProductRepository) Query(ctx context.Context) ([]product.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, p)
	}

	return result, nil
}

// DecrementStock applies all requested decrements atomically: every line is
// checked against remaining stock before any quantity changes, and the whole
// batch fails without side effects when a line cannot be satisfied.
func (r *MemoryProductRepository) DecrementStock(
	ctx context.Context,
	requested []order.ItemQuantity,
) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range requested {
		p, ok := r.products[item.ProductID]
		if !ok || p.Quantity < item.Quantity {
			return fmt.Errorf("stock no longer available for product %s", item.ProductID)
		}
	}

	now := time.Now()
	for _, item := range requested {
		p := r.products[item.ProductID]
		p.Quantity -= item.Quantity
		p.UpdatedAt = now
		r.products[item.ProductID] = p
	}

	return nil
}

package memoryrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
)

// MemoryCustomerRepository is an in-memory customer repository, used when
// the service runs without Postgres and as a test fake.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]customer.Customer
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[string]customer.Customer),
	}
}

func (r *MemoryCustomerRepository) Insert(
	ctx context.Context,
	c customer.Customer,
) (*customer.Customer, error) {
	_ = ctx

	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[c.ID] = c

	return &c, nil
}

func (r *MemoryCustomerRepository) FindByID(
	ctx context.Context,
	id string,
) (*customer.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}

	return &c, nil
}

func (r *MemoryCustomerRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*customer.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			return &c, nil
		}
	}

	return nil, nil
}

func (r *MemoryCustomerRepository) Query(ctx context.Context) ([]customer.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]customer.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		result = append(result, c)
	}

	return result, nil
}

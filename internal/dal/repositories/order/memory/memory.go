package memoryrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	productmemory "github.com/lucianotavernard/order-svc/internal/dal/repositories/product/memory"
	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
)

// MemoryOrderStore is an in-memory order store. Stock decrements are
// delegated to the shared product repository, which applies them
// all-or-nothing under its own lock.
type MemoryOrderStore struct {
	mu       sync.RWMutex
	orders   map[string]order.Order
	products *productmemory.MemoryProductRepository
}

func NewMemoryOrderStore(products *productmemory.MemoryProductRepository) *MemoryOrderStore {
	return &MemoryOrderStore{
		orders:   make(map[string]order.Order),
		products: products,
	}
}

func (r *MemoryOrderStore) Create(
	ctx context.Context,
	c customer.Customer,
	items []orderitem.OrderItem,
) (*order.Order, error) {
	_ = ctx

	now := time.Now()
	o := order.Order{
		ID:                 uuid.NewString(),
		CustomerID:         c.ID,
		TotalPriceCurrency: currency.CurrencyBRL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].OrderID = o.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		o.TotalPriceCents += int64(items[i].Quantity) * items[i].PriceCents
		if i == 0 && items[i].PriceCurrency != "" {
			o.TotalPriceCurrency = items[i].PriceCurrency
		}
	}
	o.OrderItems = items

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID] = o

	return &o, nil
}

func (r *MemoryOrderStore) DecrementStock(
	ctx context.Context,
	requested []order.ItemQuantity,
) error {
	return r.products.DecrementStock(ctx, requested)
}

func (r *MemoryOrderStore) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []order.Order
	for _, o := range r.orders {
		if len(filter.Ids) > 0 && !contains(filter.Ids, o.ID) {
			continue
		}
		if len(filter.CustomerIds) > 0 && !contains(filter.CustomerIds, o.CustomerID) {
			continue
		}
		clone := o
		clone.OrderItems = nil
		result = append(result, clone)
	}

	return result, nil
}

func (r *MemoryOrderStore) QueryItems(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []orderitem.OrderItem
	for _, o := range r.orders {
		for _, item := range o.OrderItems {
			if len(filter.OrderIds) > 0 && !contains(filter.OrderIds, item.OrderID) {
				continue
			}
			if len(filter.ProductIds) > 0 && !contains(filter.ProductIds, item.ProductID) {
				continue
			}
			result = append(result, item)
		}
	}

	return result, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}

	return false
}

package memoryrepo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

func quantityOf(t *testing.T, r *MemoryProductRepository, id string) int {
	t.Helper()

	found, err := r.FindAllByID(context.Background(), []string{id})
	require.NoError(t, err)
	require.Len(t, found, 1)

	return found[0].Quantity
}

func TestDecrementStock(t *testing.T) {
	r := NewMemoryProductRepository()
	r.Seed(product.Product{ID: "p1", Name: "a", Quantity: 5})
	r.Seed(product.Product{ID: "p2", Name: "b", Quantity: 3})

	err := r.DecrementStock(context.Background(), []order.ItemQuantity{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, quantityOf(t, r, "p1"))
	assert.Equal(t, 0, quantityOf(t, r, "p2"))
}

func TestDecrementStock_BatchFailsWithoutSideEffects(t *testing.T) {
	r := NewMemoryProductRepository()
	r.Seed(product.Product{ID: "p1", Name: "a", Quantity: 5})
	r.Seed(product.Product{ID: "p2", Name: "b", Quantity: 1})

	err := r.DecrementStock(context.Background(), []order.ItemQuantity{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 2},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "p2")
	assert.Equal(t, 5, quantityOf(t, r, "p1"), "satisfiable lines must not be applied")
	assert.Equal(t, 1, quantityOf(t, r, "p2"))
}

func TestDecrementStock_UnknownProduct(t *testing.T) {
	r := NewMemoryProductRepository()

	err := r.DecrementStock(context.Background(), []order.ItemQuantity{
		{ProductID: "ghost", Quantity: 1},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestDecrementStock_ConcurrentNeverNegative(t *testing.T) {
	r := NewMemoryProductRepository()
	r.Seed(product.Product{ID: "p1", Name: "a", Quantity: 10})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := r.DecrementStock(context.Background(), []order.ItemQuantity{
				{ProductID: "p1", Quantity: 3},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 1, quantityOf(t, r, "p1"))
}

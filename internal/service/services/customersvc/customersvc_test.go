package customersvc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customermemory "github.com/lucianotavernard/order-svc/internal/dal/repositories/customer/memory"
	"github.com/lucianotavernard/order-svc/internal/service/services/customersvc"
)

func newService() *customersvc.CustomerService {
	return customersvc.MustNewCustomerService(
		customersvc.WithCustomerRepository(customermemory.NewMemoryCustomerRepository()),
	)
}

func TestCreateCustomer(t *testing.T) {
	svc := newService()

	created, err := svc.CreateCustomer(context.Background(), "Luciano", "luciano@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Luciano", created.Name)
	assert.Equal(t, "luciano@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateCustomer_EmailTaken(t *testing.T) {
	svc := newService()

	_, err := svc.CreateCustomer(context.Background(), "Luciano", "luciano@example.com")
	require.NoError(t, err)

	created, err := svc.CreateCustomer(context.Background(), "Other", "luciano@example.com")

	assert.ErrorIs(t, err, customersvc.ErrEmailTaken)
	assert.Nil(t, created)
}

func TestGetCustomers(t *testing.T) {
	svc := newService()

	_, err := svc.CreateCustomer(context.Background(), "Luciano", "luciano@example.com")
	require.NoError(t, err)
	_, err = svc.CreateCustomer(context.Background(), "Joana", "joana@example.com")
	require.NoError(t, err)

	customers, err := svc.GetCustomers(context.Background())

	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

package icustomerrepo

import (
	"context"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
)

// ICustomerRepository is an interface for the customer repository.
// FindByID and FindByEmail return (nil, nil) when no record matches.
type ICustomerRepository interface {
	Insert(ctx context.Context, c customer.Customer) (*customer.Customer, error)
	FindByID(ctx context.Context, id string) (*customer.Customer, error)
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)
	Query(ctx context.Context) ([]customer.Customer, error)
}

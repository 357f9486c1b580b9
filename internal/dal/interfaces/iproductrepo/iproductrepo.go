package iproductrepo

import (
	"context"

	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

// IProductRepository is an interface for the product catalog repository.
// FindAllByID may return fewer records than requested ids; a missing id is
// not an error.
type IProductRepository interface {
	Insert(ctx context.Context, p product.Product) (*product.Product, error)
	FindByName(ctx context.Context, name string) (*product.Product, error)
	FindAllByID(ctx context.Context, ids []string) ([]product.Product, error)
	Query(ctx context.Context) ([]product.Product, error)
}

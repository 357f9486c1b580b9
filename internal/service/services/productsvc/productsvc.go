package productsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

var (
	// ErrProductExists is returned when a product with the same name already exists.
	ErrProductExists = errors.New("product already exists")

	// ErrInvalidPrice is returned when the price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidQuantity is returned when the initial stock is negative.
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

// ProductService is a service for managing the product catalog.
type ProductService struct {
	productRepo iproductrepo.IProductRepository
}

// option is a function that configures the ProductService.
type option func(*ProductService)

// MustNewProductService creates a new ProductService.
func MustNewProductService(opts ...option) *ProductService {
	s := &ProductService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.productRepo == nil {
		panic("productsvc: product repository is required")
	}

	return s
}

// WithProductRepository sets the product repository for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *ProductService) {
		s.productRepo = repo
	}
}

// CreateProductModel is the input for CreateProduct.
type CreateProductModel struct {
	Name          string
	PriceCents    int64
	PriceCurrency currency.Currency
	Quantity      int
}

// CreateProduct adds a new product to the catalog. Names are unique.
func (s *ProductService) CreateProduct(
	ctx context.Context,
	model CreateProductModel,
) (*product.Product, error) {
	if model.PriceCents < 0 {
		return nil, ErrInvalidPrice
	}
	if model.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	existing, err := s.productRepo.FindByName(ctx, model.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product by name: %w", err)
	}
	if existing != nil {
		return nil, ErrProductExists
	}

	created, err := s.productRepo.Insert(ctx, product.Product{
		Name:          model.Name,
		PriceCents:    model.PriceCents,
		PriceCurrency: model.PriceCurrency,
		Quantity:      model.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return created, nil
}

// GetProducts retrieves the whole catalog.
func (s *ProductService) GetProducts(ctx context.Context) ([]product.Product, error) {
	products, err := s.productRepo.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return products, nil
}

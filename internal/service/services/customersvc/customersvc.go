package customersvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
)

// ErrEmailTaken is returned when a customer with the same email already exists.
var ErrEmailTaken = errors.New("email already taken")

// CustomerService is a service for managing customers.
type CustomerService struct {
	customerRepo icustomerrepo.ICustomerRepository
}

// option is a function that configures the CustomerService.
type option func(*CustomerService)

// MustNewCustomerService creates a new CustomerService.
func MustNewCustomerService(opts ...option) *CustomerService {
	s := &CustomerService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.customerRepo == nil {
		panic("customersvc: customer repository is required")
	}

	return s
}

// WithCustomerRepository sets the customer repository for the CustomerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *CustomerService) {
		s.customerRepo = repo
	}
}

// CreateCustomer registers a new customer. Emails are unique.
func (s *CustomerService) CreateCustomer(
	ctx context.Context,
	name, email string,
) (*customer.Customer, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	created, err := s.customerRepo.Insert(ctx, customer.Customer{
		Name:  name,
		Email: email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	return created, nil
}

// GetCustomers retrieves all registered customers.
func (s *CustomerService) GetCustomers(ctx context.Context) ([]customer.Customer, error) {
	customers, err := s.customerRepo.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	return customers, nil
}

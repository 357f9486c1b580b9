package createcustomer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
	"github.com/lucianotavernard/order-svc/internal/service/services/customersvc"
)

// service is an interface for the service layer.
type service interface {
	CreateCustomer(ctx context.Context, name, email string) (*customer.Customer, error)
}

// createCustomerRequest represents a create customer request.
type createCustomerRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Validate validates the create customer request.
func (r *createCustomerRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateCustomer handles the create customer request.
func CreateCustomer(w http.ResponseWriter, r *http.Request, service service) {
	customerReq := createCustomerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&customerReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create customer", "error", err)

		return
	}

	if err := customerReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create customer", "error", err)

		return
	}

	created, err := service.CreateCustomer(r.Context(), customerReq.Name, customerReq.Email)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, customersvc.ErrEmailTaken) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		slog.Error("Error creating customer", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create customer", "error", err)
	}
}

package createproduct

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
	"github.com/lucianotavernard/order-svc/internal/service/services/productsvc"
)

// service is an interface for the service layer.
type service interface {
	CreateProduct(
		ctx context.Context,
		model productsvc.CreateProductModel,
	) (*product.Product, error)
}

// createProductRequest represents a create product request.
type createProductRequest struct {
	Name          string `json:"name"          validate:"required"`
	PriceCents    int64  `json:"priceCents"    validate:"gte=0"`
	PriceCurrency string `json:"priceCurrency" validate:"required"`
	Quantity      int    `json:"quantity"      validate:"gte=0"`
}

// Validate validates the create product request.
func (r *createProductRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createProductRequest to the service layer model.
func (r *createProductRequest) toModel() (*productsvc.CreateProductModel, error) {
	cur, err := currency.ParseCurrency(r.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &productsvc.CreateProductModel{
		Name:          r.Name,
		PriceCents:    r.PriceCents,
		PriceCurrency: cur,
		Quantity:      r.Quantity,
	}, nil
}

// CreateProduct handles the create product request.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	productReq := createProductRequest{}
	if err := json.NewDecoder(r.Body).Decode(&productReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create product", "error", err)

		return
	}

	if err := productReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create product", "error", err)

		return
	}

	model, err := productReq.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error converting create product request to model", "error", err)

		return
	}

	created, err := service.CreateProduct(r.Context(), *model)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, productsvc.ErrProductExists) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		slog.Error("Error creating product", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create product", "error", err)
	}
}

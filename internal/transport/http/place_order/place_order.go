package placeorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/services/ordersvc"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, model ordersvc.PlaceOrderModel) (*order.Order, error)
}

// itemInPlaceOrderRequest represents a requested product in a place order request.
type itemInPlaceOrderRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"gt=0"`
}

// placeOrderRequest represents a place order request.
type placeOrderRequest struct {
	CustomerID string                    `json:"customerId" validate:"required"`
	Products   []itemInPlaceOrderRequest `json:"products"   validate:"required,min=1,dive"`
}

// Validate validates the place order request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts placeOrderRequest to the service layer model.
func (r *placeOrderRequest) toModel() ordersvc.PlaceOrderModel {
	items := make([]ordersvc.RequestedItem, len(r.Products))
	for i, p := range r.Products {
		items[i] = ordersvc.RequestedItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		}
	}

	return ordersvc.PlaceOrderModel{
		CustomerID: r.CustomerID,
		Items:      items,
	}
}

// PlaceOrder handles the place order request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), orderReq.toModel())
	if err != nil {
		http.Error(w, err.Error(), placementStatus(err))
		slog.Error("Error placing order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(placed); err != nil {
		slog.Error("Error sending response for place order", "error", err)
	}
}

// placementStatus maps placement failures to HTTP status codes.
func placementStatus(err error) int {
	switch {
	case errors.Is(err, ordersvc.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ordersvc.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ordersvc.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

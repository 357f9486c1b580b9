package listcustomers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
)

type service interface {
	GetCustomers(ctx context.Context) ([]customer.Customer, error)
}

func ListCustomers(w http.ResponseWriter, r *http.Request, service service) {
	customers, err := service.GetCustomers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting customers", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(customers); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

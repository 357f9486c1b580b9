package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

type service interface {
	GetProducts(ctx context.Context) ([]product.Product, error)
}

func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	products, err := service.GetProducts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting products", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

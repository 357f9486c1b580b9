package product

import (
	"time"

	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
)

// Product represents a catalog entry. Quantity is the stock currently
// available for sale and decreases as orders are placed.
type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	Quantity      int               `json:"quantity"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

package orderitem

import (
	"time"

	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
)

// OrderItem represents an item within an order. PriceCents is a snapshot
// of the catalog price at the moment the order was placed.
type OrderItem struct {
	ID            string            `json:"id"`
	OrderID       string            `json:"orderId"`
	ProductID     string            `json:"productId"`
	Quantity      int               `json:"quantity"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

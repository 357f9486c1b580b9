package order

import (
	"time"

	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
)

// Order represents a placed order with its priced line items.
// Orders are immutable once created.
type Order struct {
	ID                 string                `json:"id"`
	CustomerID         string                `json:"customerId"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderItems         []orderitem.OrderItem `json:"orderItems"`
}

// ItemQuantity is a requested (product, quantity) pair, used for stock
// decrements after an order is committed.
type ItemQuantity struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

package iorderstore

import (
	"context"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
)

// IOrderStore persists orders and applies the matching stock decrements.
// Create and DecrementStock must together guarantee that available stock
// never goes negative: DecrementStock fails without applying any change
// when the requested quantities can no longer be satisfied.
type IOrderStore interface {
	Create(
		ctx context.Context,
		c customer.Customer,
		items []orderitem.OrderItem,
	) (*order.Order, error)
	DecrementStock(ctx context.Context, requested []order.ItemQuantity) error

	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	QueryItems(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
}

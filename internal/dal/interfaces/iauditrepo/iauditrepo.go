package iauditrepo

import (
	"context"

	"github.com/lucianotavernard/order-svc/internal/service/models/order"
)

// IAuditRepository is an interface for the order audit trail.
type IAuditRepository interface {
	LogOrderCreated(ctx context.Context, o order.Order) error
}

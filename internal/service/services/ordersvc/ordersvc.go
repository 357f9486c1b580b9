package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iauditrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iorderstore"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
	"github.com/lucianotavernard/order-svc/internal/service/models/outbox"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

const (
	auditQueueName   = "oms.order.created"
	auditContentType = "application/json"
	auditMaxRetries  = 5
)

var (
	// ErrCustomerNotFound is returned when the customer id has no matching record.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrCatalogUnavailable is returned when the product catalog cannot answer.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrInsufficientStock is returned when a requested quantity is not
	// strictly less than the available stock.
	ErrInsufficientStock = errors.New("insufficient product stock")

	// ErrPersistence is returned when the order store fails to create the
	// order or to decrement stock.
	ErrPersistence = errors.New("order persistence failure")
)

// InsufficientStockError names the products whose stock cannot cover the
// requested quantities. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	ProductIDs []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient product stock: %s", strings.Join(e.ProductIDs, ", "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// OrderService is a service for placing and querying orders.
type OrderService struct {
	customerRepo icustomerrepo.ICustomerRepository
	productRepo  iproductrepo.IProductRepository
	orderStore   iorderstore.IOrderStore
	auditRepo    iauditrepo.IAuditRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.customerRepo == nil || s.productRepo == nil || s.orderStore == nil {
		panic("ordersvc: customer repository, product repository and order store are required")
	}

	return s
}

// WithCustomerRepository sets the customer lookup for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *OrderService) {
		s.customerRepo = repo
	}
}

// WithProductRepository sets the catalog lookup for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *OrderService) {
		s.productRepo = repo
	}
}

// WithOrderStore sets the order store for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderStore(store iorderstore.IOrderStore) option {
	return func(s *OrderService) {
		s.orderStore = store
	}
}

// WithAuditRepository sets the optional audit trail for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.auditRepo = repo
	}
}

// WithOutboxRepository sets the optional outbox fallback used when audit
// publishing fails.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *OrderService) {
		s.outboxRepo = repo
	}
}

// RequestedItem is a (product, quantity) pair in a placement request.
type RequestedItem struct {
	ProductID string
	Quantity  int
}

// PlaceOrderModel is the input for PlaceOrder.
type PlaceOrderModel struct {
	CustomerID string
	Items      []RequestedItem
}

// PlaceOrder validates the customer and stock, prices the order from the
// current catalog, persists it and decrements inventory.
//
// The stock check is strict less-than: a request for exactly the available
// quantity is rejected. A product id absent from the catalog is treated as
// zero stock and zero price rather than a distinct not-found error.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	model PlaceOrderModel,
) (*order.Order, error) {
	found, err := s.customerRepo.FindByID(ctx, model.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if found == nil {
		return nil, ErrCustomerNotFound
	}

	catalog, err := s.productRepo.FindAllByID(ctx, distinctProductIDs(model.Items))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	byID := make(map[string]product.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	var outOfStock []string
	for _, item := range model.Items {
		available := 0
		if p, ok := byID[item.ProductID]; ok {
			available = p.Quantity
		}
		if item.Quantity >= available {
			outOfStock = append(outOfStock, item.ProductID)
		}
	}
	if len(outOfStock) > 0 {
		return nil, &InsufficientStockError{ProductIDs: outOfStock}
	}

	items := make([]orderitem.OrderItem, len(model.Items))
	requested := make([]order.ItemQuantity, len(model.Items))
	for i, item := range model.Items {
		items[i] = orderitem.OrderItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PriceCents:    byID[item.ProductID].PriceCents,
			PriceCurrency: byID[item.ProductID].PriceCurrency,
		}
		requested[i] = order.ItemQuantity{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	created, err := s.orderStore.Create(ctx, *found, items)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create order: %w", ErrPersistence, err)
	}

	if err := s.orderStore.DecrementStock(ctx, requested); err != nil {
		return nil, fmt.Errorf("%w: failed to decrement stock: %w", ErrPersistence, err)
	}

	s.logOrderCreated(ctx, *created)

	return created, nil
}

// GetOrders retrieves orders with their order items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	model orderitem.QueryOrderItemsModel,
) ([]order.Order, error) {
	orderQuery := &order.QueryOrdersModel{
		Ids:         model.Ids,
		CustomerIds: model.CustomerIds,
		Limit:       model.PageSize,
	}
	if model.Page > 0 {
		orderQuery.Offset = (model.Page - 1) * model.PageSize
	}

	orders, err := s.orderStore.Query(ctx, orderQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}
	items, err := s.orderStore.QueryItems(ctx, itemQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// logOrderCreated sends the created order to the audit trail. Auditing is
// best-effort after the commit point: a publish failure lands in the outbox
// for the worker to retry, it never fails the placement.
func (s *OrderService) logOrderCreated(ctx context.Context, o order.Order) {
	if s.auditRepo == nil {
		return
	}

	err := s.auditRepo.LogOrderCreated(ctx, o)
	if err == nil {
		return
	}
	slog.Warn("Failed to publish order created audit event", "order_id", o.ID, "error", err)

	if s.outboxRepo == nil {
		return
	}

	payload, merr := json.Marshal(o)
	if merr != nil {
		slog.Error("Failed to marshal order for outbox", "order_id", o.ID, "error", merr)

		return
	}

	now := time.Now()
	msg := outboxMessage(payload, err.Error(), now)
	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		slog.Error("Failed to insert audit event into outbox", "order_id", o.ID, "error", err)
	}
}

func outboxMessage(payload []byte, lastError string, now time.Time) outbox.Message {
	return outbox.Message{
		QueueName:   auditQueueName,
		RoutingKey:  auditQueueName,
		Payload:     payload,
		ContentType: auditContentType,
		MaxRetries:  auditMaxRetries,
		LastError:   lastError,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
}

func distinctProductIDs(items []RequestedItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

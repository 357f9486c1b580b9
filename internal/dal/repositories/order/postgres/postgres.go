package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lucianotavernard/order-svc/internal/dal/postgres"
	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
)

var (
	orderColumns = []string{
		"id",
		"customer_id",
		"total_price_cents",
		"total_price_currency",
		"created_at",
		"updated_at",
	}
	orderItemColumns = []string{
		"id",
		"order_id",
		"product_id",
		"quantity",
		"price_cents",
		"price_currency",
		"created_at",
		"updated_at",
	}
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                 string
	CustomerId         string
	TotalPriceCents    int64
	TotalPriceCurrency string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalPriceCurrency)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                 o.Id,
		CustomerID:         o.CustomerId,
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: cur,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		OrderItems:         []orderitem.OrderItem{},
	}, nil
}

// PostgresOrderStore persists orders with their items and applies stock
// decrements. Each write runs in its own transaction; DecrementStock is
// guarded so that product quantity can never go negative, which makes
// concurrent placements against the same stock safe.
type PostgresOrderStore struct {
	client *postgres.Client
}

func NewPostgresOrderStore(client *postgres.Client) *PostgresOrderStore {
	return &PostgresOrderStore{
		client: client,
	}
}

// Create inserts the order and its items in a single transaction and
// returns the persisted order.
func (r *PostgresOrderStore) Create(
	ctx context.Context,
	c customer.Customer,
	items []orderitem.OrderItem,
) (*order.Order, error) {
	now := time.Now()

	o := order.Order{
		ID:                 uuid.NewString(),
		CustomerID:         c.ID,
		TotalPriceCurrency: currency.CurrencyBRL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].OrderID = o.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		o.TotalPriceCents += int64(items[i].Quantity) * items[i].PriceCents
		if i == 0 && items[i].PriceCurrency != "" {
			o.TotalPriceCurrency = items[i].PriceCurrency
		}
	}
	o.OrderItems = items

	tx, err := r.client.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	orderQuery, orderArgs, err := sq.Insert("orders").
		Columns(orderColumns...).
		Values(o.ID, o.CustomerID, o.TotalPriceCents, o.TotalPriceCurrency.String(), o.CreatedAt, o.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order insert query: %w", err)
	}

	if _, err := tx.Exec(ctx, orderQuery, orderArgs...); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if len(items) > 0 {
		builder := sq.Insert("order_items").
			Columns(orderItemColumns...).
			PlaceholderFormat(sq.Dollar)
		for _, item := range items {
			builder = builder.Values(
				item.ID,
				item.OrderID,
				item.ProductID,
				item.Quantity,
				item.PriceCents,
				item.PriceCurrency.String(),
				item.CreatedAt,
				item.UpdatedAt,
			)
		}

		itemQuery, itemArgs, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build order item insert query: %w", err)
		}

		if _, err := tx.Exec(ctx, itemQuery, itemArgs...); err != nil {
			return nil, fmt.Errorf("failed to insert order items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &o, nil
}

// DecrementStock reduces each product's available quantity by the requested
// amount in a single transaction. The update is conditional on sufficient
// remaining stock; when any line cannot be satisfied the whole transaction
// rolls back and no quantity changes.
func (r *PostgresOrderStore) DecrementStock(
	ctx context.Context,
	requested []order.ItemQuantity,
) error {
	tx, err := r.client.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, item := range requested {
		query, args, err := sq.Update("products").
			Set("quantity", sq.Expr("quantity - ?", item.Quantity)).
			Set("updated_at", time.Now()).
			Where(sq.Eq{"id": item.ProductID}).
			Where(sq.GtOrEq{"quantity": item.Quantity}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build stock update query: %w", err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("stock no longer available for product %s", item.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit stock decrement: %w", err)
	}

	return nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderStore) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.CustomerId,
			&dal.TotalPriceCents,
			&dal.TotalPriceCurrency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryItems retrieves order items based on filter criteria.
func (r *PostgresOrderStore) QueryItems(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	builder := sq.Select(orderItemColumns...).
		From("order_items").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
	}
	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"product_id": filter.ProductIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var (
			item orderitem.OrderItem
			cur  string
		)
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.PriceCents,
			&cur,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.PriceCurrency, err = currency.ParseCurrency(cur)
		if err != nil {
			return nil, fmt.Errorf("failed to parse order item currency: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

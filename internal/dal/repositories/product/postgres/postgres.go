package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lucianotavernard/order-svc/internal/dal/postgres"
	"github.com/lucianotavernard/order-svc/internal/service/models/currency"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
)

var productColumns = []string{
	"id",
	"name",
	"price_cents",
	"price_currency",
	"quantity",
	"created_at",
	"updated_at",
}

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id            string
	Name          string
	PriceCents    int64
	PriceCurrency string
	Quantity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		PriceCents:    p.PriceCents,
		PriceCurrency: cur,
		Quantity:      p.Quantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// PostgresProductRepository is a Postgres-backed product catalog repository.
type PostgresProductRepository struct {
	conn postgres.Querier
}

func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

// Insert stores a new product and returns it with its assigned id.
func (r *PostgresProductRepository) Insert(
	ctx context.Context,
	p product.Product,
) (*product.Product, error) {
	now := time.Now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	query, args, err := sq.Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.Name, p.PriceCents, p.PriceCurrency.String(), p.Quantity, p.CreatedAt, p.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &p, nil
}

// FindByName returns the product with the given name, or (nil, nil) when absent.
func (r *PostgresProductRepository) FindByName(
	ctx context.Context,
	name string,
) (*product.Product, error) {
	query, args, err := sq.Select(productColumns...).
		From("products").
		Where(sq.Eq{"name": name}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal ProductDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.Quantity,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return dal.ToModel()
}

// FindAllByID retrieves the products matching the given ids. Ids without a
// matching record are simply absent from the result.
func (r *PostgresProductRepository) FindAllByID(
	ctx context.Context,
	ids []string,
) ([]product.Product, error) {
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	query, args, err := sq.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryProducts(ctx, query, args)
}

// Query retrieves the whole catalog.
func (r *PostgresProductRepository) Query(ctx context.Context) ([]product.Product, error) {
	query, args, err := sq.Select(productColumns...).
		From("products").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryProducts(ctx, query, args)
}

func (r *PostgresProductRepository) queryProducts(
	ctx context.Context,
	query string,
	args []interface{},
) ([]product.Product, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.Quantity,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

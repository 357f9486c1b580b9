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
	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
)

// CustomerDal represents the customer data access layer model.
type CustomerDal struct {
	Id        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToModel converts CustomerDal to the service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// PostgresCustomerRepository is a Postgres-backed customer repository.
type PostgresCustomerRepository struct {
	conn postgres.Querier
}

func NewPostgresCustomerRepository(conn postgres.Querier) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
	}
}

// Insert stores a new customer and returns it with its assigned id.
func (r *PostgresCustomerRepository) Insert(
	ctx context.Context,
	c customer.Customer,
) (*customer.Customer, error) {
	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	query, args, err := sq.Insert("customers").
		Columns("id", "name", "email", "created_at", "updated_at").
		Values(c.ID, c.Name, c.Email, c.CreatedAt, c.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	return &c, nil
}

// FindByID returns the customer with the given id, or (nil, nil) when absent.
func (r *PostgresCustomerRepository) FindByID(
	ctx context.Context,
	id string,
) (*customer.Customer, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// FindByEmail returns the customer with the given email, or (nil, nil) when absent.
func (r *PostgresCustomerRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*customer.Customer, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *PostgresCustomerRepository) findOne(
	ctx context.Context,
	pred sq.Eq,
) (*customer.Customer, error) {
	query, args, err := sq.Select("id", "name", "email", "created_at", "updated_at").
		From("customers").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal CustomerDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return dal.ToModel(), nil
}

// Query retrieves all customers.
func (r *PostgresCustomerRepository) Query(ctx context.Context) ([]customer.Customer, error) {
	query, args, err := sq.Select("id", "name", "email", "created_at", "updated_at").
		From("customers").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var result []customer.Customer
	for rows.Next() {
		var dal CustomerDal
		err := rows.Scan(&dal.Id, &dal.Name, &dal.Email, &dal.CreatedAt, &dal.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles order persistence using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const orderColumns = `id, customer_id, lines, total_cents, currency, status, charge_id, created_at, updated_at, paid_at`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindByCustomer(ctx context.Context, customerID string, page Page) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, customerID, page.Offset, normalizeLimit(page.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PostgresRepository) FindAll(ctx context.Context, page Page) ([]*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, page.Offset, normalizeLimit(page.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PostgresRepository) Insert(ctx context.Context, order *Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal order lines: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_id, lines, total_cents, currency, status, charge_id, created_at, updated_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		lines,
		order.TotalCents,
		order.Currency,
		order.Status,
		order.ChargeID,
		order.CreatedAt,
		order.UpdatedAt,
		order.PaidAt,
	)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, order *Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal order lines: %w", err)
	}

	query := `
		UPDATE orders
		SET lines = $2, total_cents = $3, currency = $4, status = $5,
		    charge_id = $6, paid_at = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		order.ID,
		lines,
		order.TotalCents,
		order.Currency,
		order.Status,
		order.ChargeID,
		order.PaidAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Order, error) {
	var (
		o         Order
		lines     []byte
		createdAt time.Time
		updatedAt time.Time
		paidAt    *time.Time
	)

	err := row.Scan(&o.ID, &o.CustomerID, &lines, &o.TotalCents,
		&o.Currency, &o.Status, &o.ChargeID, &createdAt, &updatedAt, &paidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order lines: %w", err)
	}

	o.CreatedAt = createdAt
	o.UpdatedAt = updatedAt
	o.PaidAt = paidAt
	return &o, nil
}

func (r *PostgresRepository) scanAll(rows pgx.Rows) ([]*Order, error) {
	orders := make([]*Order, 0)
	for rows.Next() {
		order, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles product persistence using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, slug, sku, translations, price_cents, currency, stock, status, created_at, updated_at`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, slug))
}

func (r *PostgresRepository) FindActive(ctx context.Context, page Page) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, ProductStatusActive, page.Offset, normalizeLimit(page.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PostgresRepository) FindAll(ctx context.Context, page Page) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
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

func (r *PostgresRepository) Insert(ctx context.Context, product *Product) error {
	translations, err := json.Marshal(product.Translations)
	if err != nil {
		return fmt.Errorf("failed to marshal translations: %w", err)
	}

	query := `
		INSERT INTO products (id, slug, sku, translations, price_cents, currency, stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.pool.Exec(ctx, query,
		product.ID,
		product.Slug,
		product.SKU,
		translations,
		product.PriceCents,
		product.Currency,
		product.Stock,
		product.Status,
		product.CreatedAt,
		product.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, product *Product) error {
	translations, err := json.Marshal(product.Translations)
	if err != nil {
		return fmt.Errorf("failed to marshal translations: %w", err)
	}

	query := `
		UPDATE products
		SET slug = $2, sku = $3, translations = $4, price_cents = $5,
		    currency = $6, stock = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Slug,
		product.SKU,
		translations,
		product.PriceCents,
		product.Currency,
		product.Stock,
		product.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status ProductStatus) error {
	query := `UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	// The stock >= -delta guard keeps the adjustment atomic without a
	// separate read
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
	`
	tag, err := r.pool.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the product is missing or stock would go negative
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func (r *PostgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE slug = $1`, slug).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE id = $1`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Product, error) {
	var (
		p            Product
		translations []byte
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&p.ID, &p.Slug, &p.SKU, &translations, &p.PriceCents,
		&p.Currency, &p.Stock, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(translations, &p.Translations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal translations: %w", err)
	}

	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}

func (r *PostgresRepository) scanAll(rows pgx.Rows) ([]*Product, error) {
	products := make([]*Product, 0)
	for rows.Next() {
		product, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

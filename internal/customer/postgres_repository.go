package customer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles customer persistence using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const customerColumns = `id, email, name, password_hash, role, locale, active, created_at, updated_at`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, NormalizeEmail(email)))
}

func (r *PostgresRepository) Insert(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (id, email, name, password_hash, role, locale, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Email, c.Name, c.PasswordHash, c.Role, c.Locale, c.Active, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET email = $2, name = $3, password_hash = $4, role = $5,
		    locale = $6, active = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.Email, c.Name, c.PasswordHash, c.Role, c.Locale, c.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE email = $1`,
		NormalizeEmail(email)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.Role,
		&c.Locale, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

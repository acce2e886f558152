package magazine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles article persistence using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const articleColumns = `id, slug, author_id, translations, status, publish_at, published_at, created_at, updated_at`

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, slug))
}

func (r *PostgresRepository) FindPublished(ctx context.Context, page Page) ([]*Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE status = $1
		ORDER BY published_at DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, StatusPublished, page.Offset, normalizeLimit(page.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PostgresRepository) FindAll(ctx context.Context, page Page) ([]*Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
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

func (r *PostgresRepository) Insert(ctx context.Context, article *Article) error {
	translations, err := json.Marshal(article.Translations)
	if err != nil {
		return fmt.Errorf("failed to marshal translations: %w", err)
	}

	query := `
		INSERT INTO articles (id, slug, author_id, translations, status, publish_at, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.pool.Exec(ctx, query,
		article.ID,
		article.Slug,
		article.AuthorID,
		translations,
		article.Status,
		article.PublishAt,
		article.PublishedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, article *Article) error {
	translations, err := json.Marshal(article.Translations)
	if err != nil {
		return fmt.Errorf("failed to marshal translations: %w", err)
	}

	query := `
		UPDATE articles
		SET slug = $2, author_id = $3, translations = $4, status = $5,
		    publish_at = $6, published_at = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		article.ID,
		article.Slug,
		article.AuthorID,
		translations,
		article.Status,
		article.PublishAt,
		article.PublishedAt,
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
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	return count, err
}

func (r *PostgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE slug = $1`, slug).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Schedule(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE articles
		SET status = $3, publish_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	return r.transition(ctx, id, query, id, at, StatusScheduled, StatusDraft)
}

func (r *PostgresRepository) CancelSchedule(ctx context.Context, id string) error {
	query := `
		UPDATE articles
		SET status = $2, publish_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`
	return r.transition(ctx, id, query, id, StatusDraft, StatusScheduled)
}

func (r *PostgresRepository) FindDue(ctx context.Context, now time.Time, page Page) ([]*Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE status = $1 AND publish_at <= $2
		ORDER BY publish_at ASC
		OFFSET $3 LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, StatusScheduled, now, page.Offset, normalizeLimit(page.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PostgresRepository) MarkPublished(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE articles
		SET status = $3, published_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	return r.transition(ctx, id, query, id, at, StatusPublished, StatusScheduled)
}

func (r *PostgresRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE articles
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND published_at < $3
	`
	tag, err := r.pool.Exec(ctx, query, StatusArchived, StatusPublished, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// transition runs a conditional status UPDATE and disambiguates a
// zero-row result into not-found vs wrong-status
func (r *PostgresRepository) transition(ctx context.Context, id, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInvalidTransition
	}
	return nil
}

func (r *PostgresRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE id = $1`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Article, error) {
	var (
		a            Article
		translations []byte
	)

	err := row.Scan(&a.ID, &a.Slug, &a.AuthorID, &translations, &a.Status,
		&a.PublishAt, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(translations, &a.Translations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal translations: %w", err)
	}

	return &a, nil
}

func (r *PostgresRepository) scanAll(rows pgx.Rows) ([]*Article, error) {
	articles := make([]*Article, 0)
	for rows.Next() {
		article, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

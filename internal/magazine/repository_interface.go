package magazine

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an article does not exist
var ErrNotFound = errors.New("article not found")

// ErrInvalidTransition is returned when a conditional status change
// matched the article but not its current status
var ErrInvalidTransition = errors.New("article not in expected status")

// Page describes pagination input
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the interface for article data access.
//
// The status transition methods issue a single conditional UPDATE so
// concurrent schedulers and admin actions can never double-apply a
// transition.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Article, error)
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	FindPublished(ctx context.Context, page Page) ([]*Article, error)
	FindAll(ctx context.Context, page Page) ([]*Article, error)
	Insert(ctx context.Context, article *Article) error
	Update(ctx context.Context, article *Article) error
	Count(ctx context.Context) (int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Schedule transitions DRAFT -> SCHEDULED with the publish time.
	Schedule(ctx context.Context, id string, at time.Time) error

	// CancelSchedule transitions SCHEDULED -> DRAFT and clears the
	// publish time.
	CancelSchedule(ctx context.Context, id string) error

	// FindDue returns scheduled articles whose publish time has passed,
	// oldest first.
	FindDue(ctx context.Context, now time.Time, page Page) ([]*Article, error)

	// MarkPublished transitions SCHEDULED -> PUBLISHED, stamping the
	// publication time.
	MarkPublished(ctx context.Context, id string, at time.Time) error

	// ArchiveOlderThan transitions published articles older than cutoff
	// to ARCHIVED, returning how many were archived.
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

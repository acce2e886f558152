package operations

import (
	"context"
	"time"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/metrics"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/magazine"
)

// ArchiveOldArticlesUseCase moves published articles older than a
// cutoff to the archive
type ArchiveOldArticlesUseCase struct {
	repo      magazine.Repository
	publisher events.Publisher
}

// NewArchiveOldArticlesUseCase creates a new ArchiveOldArticlesUseCase
func NewArchiveOldArticlesUseCase(repo magazine.Repository, publisher events.Publisher) *ArchiveOldArticlesUseCase {
	return &ArchiveOldArticlesUseCase{repo: repo, publisher: publisher}
}

// Execute archives published articles older than cutoff and returns
// how many were archived
func (uc *ArchiveOldArticlesUseCase) Execute(ctx context.Context, cutoff time.Time) result.Result[int64] {
	if cutoff.IsZero() {
		return result.Err[int64](
			apperr.Validation(apperr.CodeRequired, "An archive cutoff is required"),
		)
	}

	count, err := uc.repo.ArchiveOlderThan(ctx, cutoff)
	if err != nil {
		return result.Err[int64](
			apperr.Internal(apperr.CodeDBError, "Failed to archive articles").WithCause(err),
		)
	}

	if count > 0 {
		metrics.ArticlesArchived.Add(float64(count))
		if uc.publisher != nil {
			_ = uc.publisher.Publish(ctx, events.New(events.SubjectArticleArchived, map[string]any{
				"count":  count,
				"cutoff": cutoff,
			}))
		}
	}

	return result.Ok(count)
}

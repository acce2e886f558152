package operations

import (
	"context"
	"log/slog"
	"time"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/metrics"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/events"
	"go.velora.shop/internal/magazine"
)

// PublishDueArticlesUseCase flips scheduled articles whose publish time
// has passed to published. The scheduler runs it on every poll.
type PublishDueArticlesUseCase struct {
	repo      magazine.Repository
	publisher events.Publisher
	batchSize int
}

// NewPublishDueArticlesUseCase creates a new PublishDueArticlesUseCase
func NewPublishDueArticlesUseCase(repo magazine.Repository, publisher events.Publisher, batchSize int) *PublishDueArticlesUseCase {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &PublishDueArticlesUseCase{repo: repo, publisher: publisher, batchSize: batchSize}
}

// Execute publishes everything due at now and returns the count.
// Articles are flipped one row at a time: a failing row is logged and
// skipped so one bad article never blocks the rest of the batch.
func (uc *PublishDueArticlesUseCase) Execute(ctx context.Context, now time.Time) result.Result[int] {
	published := 0
	failed := 0

	for {
		// Published rows leave the due set, so the failure count is the
		// offset past the rows that are stuck in it
		batch, err := uc.repo.FindDue(ctx, now, magazine.Page{Offset: failed, Limit: uc.batchSize})
		if err != nil {
			return result.Err[int](
				apperr.Internal(apperr.CodeDBError, "Failed to load due articles").WithCause(err),
			)
		}
		if len(batch) == 0 {
			break
		}

		for _, article := range batch {
			if err := ctx.Err(); err != nil {
				return result.Ok(published)
			}

			if err := uc.repo.MarkPublished(ctx, article.ID, now); err != nil {
				// Another instance may have flipped it already
				if err == magazine.ErrInvalidTransition {
					continue
				}
				failed++
				slog.Error("Failed to publish scheduled article",
					"article_id", article.ID,
					"slug", article.Slug,
					"error", err)
				continue
			}

			published++
			metrics.ArticlesPublished.Inc()
			if uc.publisher != nil {
				_ = uc.publisher.Publish(ctx, events.New(events.SubjectArticlePublished, map[string]any{
					"articleId": article.ID,
					"slug":      article.Slug,
				}))
			}
		}
	}

	return result.Ok(published)
}

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

// PublishNowCommand publishes an article immediately
type PublishNowCommand struct {
	ArticleID string `json:"articleId"`
}

// PublishNowUseCase handles immediate publication from the admin
type PublishNowUseCase struct {
	repo      magazine.Repository
	publisher events.Publisher
}

// NewPublishNowUseCase creates a new PublishNowUseCase
func NewPublishNowUseCase(repo magazine.Repository, publisher events.Publisher) *PublishNowUseCase {
	return &PublishNowUseCase{repo: repo, publisher: publisher}
}

// Execute publishes a draft or scheduled article right away
func (uc *PublishNowUseCase) Execute(ctx context.Context, cmd PublishNowCommand) result.Result[*magazine.Article] {
	if cmd.ArticleID == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "Article id is required"),
		)
	}

	article, err := uc.repo.FindByID(ctx, cmd.ArticleID)
	if err != nil {
		if err == magazine.ErrNotFound {
			return result.Err[*magazine.Article](
				apperr.NotFound(apperr.CodeArticleNotFound, "Article not found"),
			)
		}
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to load article").WithCause(err),
		)
	}

	if article.Status != magazine.StatusDraft && article.Status != magazine.StatusScheduled {
		return result.Err[*magazine.Article](
			apperr.BusinessRule(apperr.CodeInvalidState, "Only drafts and scheduled articles can be published").
				WithDetail("status", string(article.Status)),
		)
	}

	now := time.Now().UTC()
	article.Status = magazine.StatusPublished
	article.PublishAt = nil
	article.PublishedAt = &now

	if err := uc.repo.Update(ctx, article); err != nil {
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to publish article").WithCause(err),
		)
	}

	metrics.ArticlesPublished.Inc()
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, events.New(events.SubjectArticlePublished, map[string]any{
			"articleId": article.ID,
			"slug":      article.Slug,
		}))
	}

	return result.Ok(article)
}

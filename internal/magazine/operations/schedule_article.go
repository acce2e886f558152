package operations

import (
	"context"
	"time"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/magazine"
)

// ScheduleArticleCommand schedules a draft for future publication
type ScheduleArticleCommand struct {
	ArticleID string    `json:"articleId"`
	PublishAt time.Time `json:"publishAt"`
}

// ScheduleArticleUseCase handles scheduling articles
type ScheduleArticleUseCase struct {
	repo magazine.Repository

	// now is injectable for tests
	now func() time.Time
}

// NewScheduleArticleUseCase creates a new ScheduleArticleUseCase
func NewScheduleArticleUseCase(repo magazine.Repository) *ScheduleArticleUseCase {
	return &ScheduleArticleUseCase{repo: repo, now: time.Now}
}

// Execute schedules the article. The publish time must be at least
// five minutes out and at most a year out; only drafts can be
// scheduled.
func (uc *ScheduleArticleUseCase) Execute(ctx context.Context, cmd ScheduleArticleCommand) result.Result[*magazine.Article] {
	if cmd.ArticleID == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "Article id is required"),
		)
	}
	if cmd.PublishAt.IsZero() {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "A publish time is required"),
		)
	}

	lead := cmd.PublishAt.Sub(uc.now())
	if lead < magazine.MinScheduleLead {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeInvalidValue, "Publish time must be at least 5 minutes in the future").
				WithDetail("publishAt", cmd.PublishAt),
		)
	}
	if lead > magazine.MaxScheduleLead {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeInvalidValue, "Publish time must be within one year").
				WithDetail("publishAt", cmd.PublishAt),
		)
	}

	if err := uc.repo.Schedule(ctx, cmd.ArticleID, cmd.PublishAt.UTC()); err != nil {
		return result.Err[*magazine.Article](mapTransitionErr(err, "Only drafts can be scheduled"))
	}

	return uc.reload(ctx, cmd.ArticleID)
}

func (uc *ScheduleArticleUseCase) reload(ctx context.Context, id string) result.Result[*magazine.Article] {
	article, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to reload article").WithCause(err),
		)
	}
	return result.Ok(article)
}

// mapTransitionErr converts repository transition errors to apperr
func mapTransitionErr(err error, wrongStateMsg string) error {
	switch err {
	case magazine.ErrNotFound:
		return apperr.NotFound(apperr.CodeArticleNotFound, "Article not found")
	case magazine.ErrInvalidTransition:
		return apperr.BusinessRule(apperr.CodeInvalidState, wrongStateMsg)
	default:
		return apperr.Internal(apperr.CodeDBError, "Failed to change article status").WithCause(err)
	}
}

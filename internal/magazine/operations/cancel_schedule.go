package operations

import (
	"context"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/magazine"
)

// CancelScheduleCommand returns a scheduled article to draft
type CancelScheduleCommand struct {
	ArticleID string `json:"articleId"`
}

// CancelScheduleUseCase handles unscheduling articles
type CancelScheduleUseCase struct {
	repo magazine.Repository
}

// NewCancelScheduleUseCase creates a new CancelScheduleUseCase
func NewCancelScheduleUseCase(repo magazine.Repository) *CancelScheduleUseCase {
	return &CancelScheduleUseCase{repo: repo}
}

// Execute cancels the schedule; only scheduled articles qualify
func (uc *CancelScheduleUseCase) Execute(ctx context.Context, cmd CancelScheduleCommand) result.Result[*magazine.Article] {
	if cmd.ArticleID == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "Article id is required"),
		)
	}

	if err := uc.repo.CancelSchedule(ctx, cmd.ArticleID); err != nil {
		return result.Err[*magazine.Article](mapTransitionErr(err, "Only scheduled articles can be unscheduled"))
	}

	article, err := uc.repo.FindByID(ctx, cmd.ArticleID)
	if err != nil {
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to reload article").WithCause(err),
		)
	}
	return result.Ok(article)
}

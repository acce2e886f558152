package operations

import (
	"context"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/magazine"
)

// GetArticleQuery loads an article by slug. The storefront only sees
// published articles; admin lookups set IncludeUnpublished.
type GetArticleQuery struct {
	Slug               string `json:"slug"`
	IncludeUnpublished bool   `json:"-"`
}

// GetArticleUseCase handles loading a single article
type GetArticleUseCase struct {
	repo magazine.Repository
}

// NewGetArticleUseCase creates a new GetArticleUseCase
func NewGetArticleUseCase(repo magazine.Repository) *GetArticleUseCase {
	return &GetArticleUseCase{repo: repo}
}

// Execute loads the article. Unpublished articles look like a missing
// page to the storefront.
func (uc *GetArticleUseCase) Execute(ctx context.Context, query GetArticleQuery) result.Result[*magazine.Article] {
	if query.Slug == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "Article slug is required"),
		)
	}

	article, err := uc.repo.FindBySlug(ctx, query.Slug)
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

	if !article.IsPublished() && !query.IncludeUnpublished {
		return result.Err[*magazine.Article](
			apperr.NotFound(apperr.CodeArticleNotFound, "Article not found"),
		)
	}

	return result.Ok(article)
}

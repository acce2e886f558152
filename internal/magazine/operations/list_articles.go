package operations

import (
	"context"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/magazine"
)

// ListArticlesQuery lists articles. All=true is the admin view and
// includes drafts, scheduled and archived articles.
type ListArticlesQuery struct {
	Offset int  `json:"offset"`
	Limit  int  `json:"limit"`
	All    bool `json:"-"`
}

// ArticlePage is one page of articles
type ArticlePage struct {
	Articles []*magazine.Article `json:"articles"`
	Offset   int                 `json:"offset"`
	Limit    int                 `json:"limit"`
	Total    int64               `json:"total,omitempty"`
}

// ListArticlesUseCase handles listing articles
type ListArticlesUseCase struct {
	repo magazine.Repository
}

// NewListArticlesUseCase creates a new ListArticlesUseCase
func NewListArticlesUseCase(repo magazine.Repository) *ListArticlesUseCase {
	return &ListArticlesUseCase{repo: repo}
}

// Execute lists published articles, or everything for the admin view
func (uc *ListArticlesUseCase) Execute(ctx context.Context, query ListArticlesQuery) result.Result[*ArticlePage] {
	page := magazine.Page{Offset: query.Offset, Limit: query.Limit}

	var (
		articles []*magazine.Article
		err      error
	)
	if query.All {
		articles, err = uc.repo.FindAll(ctx, page)
	} else {
		articles, err = uc.repo.FindPublished(ctx, page)
	}
	if err != nil {
		return result.Err[*ArticlePage](
			apperr.Internal(apperr.CodeDBError, "Failed to list articles").WithCause(err),
		)
	}

	out := &ArticlePage{Articles: articles, Offset: query.Offset, Limit: query.Limit}
	if query.All {
		total, err := uc.repo.Count(ctx)
		if err != nil {
			return result.Err[*ArticlePage](
				apperr.Internal(apperr.CodeDBError, "Failed to count articles").WithCause(err),
			)
		}
		out.Total = total
	}

	return result.Ok(out)
}

package operations

import (
	"context"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/magazine"
)

// UpdateArticleCommand updates an article's content. Nil fields are
// left unchanged; translations are merged per locale.
type UpdateArticleCommand struct {
	ArticleID    string                                  `json:"articleId"`
	Slug         *string                                 `json:"slug,omitempty"`
	Translations map[catalog.Locale]magazine.Translation `json:"translations,omitempty"`
}

// UpdateArticleUseCase handles editing articles
type UpdateArticleUseCase struct {
	repo magazine.Repository
}

// NewUpdateArticleUseCase creates a new UpdateArticleUseCase
func NewUpdateArticleUseCase(repo magazine.Repository) *UpdateArticleUseCase {
	return &UpdateArticleUseCase{repo: repo}
}

// Execute applies the edits. Archived articles are read-only.
func (uc *UpdateArticleUseCase) Execute(ctx context.Context, cmd UpdateArticleCommand) result.Result[*magazine.Article] {
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
	if article.Status == magazine.StatusArchived {
		return result.Err[*magazine.Article](
			apperr.BusinessRule(apperr.CodeInvalidState, "Archived articles cannot be edited"),
		)
	}

	if cmd.Slug != nil && *cmd.Slug != article.Slug {
		if !slugPattern.MatchString(*cmd.Slug) {
			return result.Err[*magazine.Article](
				apperr.Validation(apperr.CodeInvalidFormat, "Article slug must be lowercase alphanumeric with hyphens").
					WithDetail("slug", *cmd.Slug),
			)
		}
		exists, err := uc.repo.ExistsBySlug(ctx, *cmd.Slug)
		if err != nil {
			return result.Err[*magazine.Article](
				apperr.Internal(apperr.CodeDBError, "Failed to check for existing article").WithCause(err),
			)
		}
		if exists {
			return result.Err[*magazine.Article](
				apperr.BusinessRule(apperr.CodeDuplicateSlug, "An article with this slug already exists").
					WithDetail("slug", *cmd.Slug),
			)
		}
		article.Slug = *cmd.Slug
	}

	for locale, t := range cmd.Translations {
		if t.Title == "" && t.Body == "" {
			delete(article.Translations, locale)
			continue
		}
		if article.Translations == nil {
			article.Translations = make(map[catalog.Locale]magazine.Translation)
		}
		article.Translations[locale] = t
	}
	if t, ok := article.Translations[catalog.DefaultLocale]; !ok || t.Title == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "The default-locale translation cannot be removed"),
		)
	}

	if err := uc.repo.Update(ctx, article); err != nil {
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to update article").WithCause(err),
		)
	}

	return result.Ok(article)
}

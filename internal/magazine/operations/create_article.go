// Package operations contains the magazine use cases
package operations

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/magazine"
)

// Slug format: lowercase alphanumeric with hyphens
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreateArticleCommand contains the data needed to create an article
type CreateArticleCommand struct {
	Slug         string                                   `json:"slug"`
	AuthorID     string                                   `json:"authorId"`
	Translations map[catalog.Locale]magazine.Translation  `json:"translations"`
}

// CreateArticleUseCase handles creating a new article
type CreateArticleUseCase struct {
	repo magazine.Repository
}

// NewCreateArticleUseCase creates a new CreateArticleUseCase
func NewCreateArticleUseCase(repo magazine.Repository) *CreateArticleUseCase {
	return &CreateArticleUseCase{repo: repo}
}

// Execute creates a new article in DRAFT status
func (uc *CreateArticleUseCase) Execute(ctx context.Context, cmd CreateArticleCommand) result.Result[*magazine.Article] {
	if cmd.Slug == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "Article slug is required"),
		)
	}
	if !slugPattern.MatchString(cmd.Slug) {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeInvalidFormat, "Article slug must be lowercase alphanumeric with hyphens").
				WithDetail("slug", cmd.Slug),
		)
	}
	if len(cmd.Translations) == 0 {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "At least one translation is required"),
		)
	}
	if t, ok := cmd.Translations[catalog.DefaultLocale]; !ok || t.Title == "" || t.Body == "" {
		return result.Err[*magazine.Article](
			apperr.Validation(apperr.CodeRequired, "A default-locale translation with title and body is required"),
		)
	}

	exists, err := uc.repo.ExistsBySlug(ctx, cmd.Slug)
	if err != nil {
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to check for existing article").WithCause(err),
		)
	}
	if exists {
		return result.Err[*magazine.Article](
			apperr.BusinessRule(apperr.CodeDuplicateSlug, "An article with this slug already exists").
				WithDetail("slug", cmd.Slug),
		)
	}

	now := time.Now().UTC()
	article := &magazine.Article{
		ID:           uuid.NewString(),
		Slug:         cmd.Slug,
		AuthorID:     cmd.AuthorID,
		Translations: cmd.Translations,
		Status:       magazine.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Insert(ctx, article); err != nil {
		return result.Err[*magazine.Article](
			apperr.Internal(apperr.CodeDBError, "Failed to create article").WithCause(err),
		)
	}

	return result.Ok(article)
}

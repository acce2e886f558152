// Package operations contains the customer account use cases
package operations

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/customer"
	"go.velora.shop/internal/events"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterCommand creates a new customer account
type RegisterCommand struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Locale   string `json:"locale,omitempty"`
}

// RegisterUseCase handles customer registration
type RegisterUseCase struct {
	repo      customer.Repository
	passwords *customer.PasswordService
	publisher events.Publisher
}

// NewRegisterUseCase creates a new RegisterUseCase
func NewRegisterUseCase(repo customer.Repository, passwords *customer.PasswordService, publisher events.Publisher) *RegisterUseCase {
	return &RegisterUseCase{repo: repo, passwords: passwords, publisher: publisher}
}

// Execute registers the account. Field errors are collected so the
// storefront form can show them all at once.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) result.Result[*customer.Customer] {
	email := customer.NormalizeEmail(cmd.Email)

	fieldErrs := apperr.Validation(apperr.CodeInvalidValue, "Registration data is invalid")
	hasFieldErr := false

	if email == "" {
		fieldErrs.WithFieldError("email", "Email is required")
		hasFieldErr = true
	} else if !emailPattern.MatchString(email) {
		fieldErrs.WithFieldError("email", "Email address is not valid")
		hasFieldErr = true
	}
	if cmd.Name == "" {
		fieldErrs.WithFieldError("name", "Name is required")
		hasFieldErr = true
	}
	if err := uc.passwords.ValidatePasswordStrength(cmd.Password); err != nil {
		fieldErrs.WithFieldError("password",
			"Password must be at least 8 characters and mix letter cases, numbers or symbols")
		hasFieldErr = true
	}
	if hasFieldErr {
		return result.Err[*customer.Customer](fieldErrs)
	}

	exists, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return result.Err[*customer.Customer](
			apperr.Internal(apperr.CodeDBError, "Failed to check for existing account").WithCause(err),
		)
	}
	if exists {
		return result.Err[*customer.Customer](
			apperr.BusinessRule(apperr.CodeDuplicateEmail, "An account with this email already exists").
				WithFieldError("email", "This email is already registered"),
		)
	}

	hash, err := uc.passwords.HashPassword(cmd.Password)
	if err != nil {
		return result.Err[*customer.Customer](
			apperr.Internal(apperr.CodeDBError, "Failed to hash password").WithCause(err),
		)
	}

	now := time.Now().UTC()
	c := &customer.Customer{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         cmd.Name,
		PasswordHash: hash,
		Role:         customer.RoleCustomer,
		Locale:       cmd.Locale,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Insert(ctx, c); err != nil {
		return result.Err[*customer.Customer](
			apperr.Internal(apperr.CodeDBError, "Failed to create account").WithCause(err),
		)
	}

	if uc.publisher != nil {
		uc.publisher.Publish(ctx, events.New(events.SubjectCustomerCreated, map[string]any{
			"customerId": c.ID,
		}))
	}

	return result.Ok(c)
}

package operations

import (
	"context"

	"go.velora.shop/internal/common/apperr"
	"go.velora.shop/internal/common/result"
	"go.velora.shop/internal/customer"
)

// AuthenticateCommand verifies login credentials
type AuthenticateCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticateUseCase handles credential verification
type AuthenticateUseCase struct {
	repo      customer.Repository
	passwords *customer.PasswordService
}

// NewAuthenticateUseCase creates a new AuthenticateUseCase
func NewAuthenticateUseCase(repo customer.Repository, passwords *customer.PasswordService) *AuthenticateUseCase {
	return &AuthenticateUseCase{repo: repo, passwords: passwords}
}

// Execute verifies the credentials. A missing account and a wrong
// password produce the same error so the endpoint does not leak which
// emails are registered.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, cmd AuthenticateCommand) result.Result[*customer.Customer] {
	invalid := apperr.Unauthorized(apperr.CodeInvalidCredentials, "Invalid email or password")

	if cmd.Email == "" || cmd.Password == "" {
		return result.Err[*customer.Customer](invalid)
	}

	c, err := uc.repo.FindByEmail(ctx, customer.NormalizeEmail(cmd.Email))
	if err != nil {
		if err == customer.ErrNotFound {
			return result.Err[*customer.Customer](invalid)
		}
		return result.Err[*customer.Customer](
			apperr.Internal(apperr.CodeDBError, "Failed to load account").WithCause(err),
		)
	}

	if !c.Active {
		return result.Err[*customer.Customer](
			apperr.Unauthorized(apperr.CodeAccessDenied, "Account is deactivated"),
		)
	}

	if err := uc.passwords.VerifyPassword(cmd.Password, c.PasswordHash); err != nil {
		return result.Err[*customer.Customer](invalid)
	}

	return result.Ok(c)
}

package services

import (
	"context"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/dto"
)

// RegistrationSvc defines account creation and email verification.
type RegistrationSvc interface {
	// Register creates the user and its role profile and emails a verification code.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// VerifyEmail clears the verification code when it matches.
	VerifyEmail(ctx context.Context, email, code string) error

	// ResendVerification issues and emails a fresh verification code.
	ResendVerification(ctx context.Context, email string) error
}

// CredentialSvc defines login and password recovery.
type CredentialSvc interface {
	// Authenticate checks credentials and rejects unverified accounts.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// RequestPasswordReset stores a reset token and emails a reset link. Unknown emails are
	// silently ignored.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password if the token is valid and unexpired.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthSvcFacade combines all account lifecycle service interfaces
type AuthSvcFacade interface {
	RegistrationSvc
	CredentialSvc
}

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// NewAccount is a user together with the role-specific profile created with it.
// Exactly one of Donor and Charity is set for donor and charity accounts.
type NewAccount struct {
	User    domain.User
	Donor   *domain.DonorProfile
	Charity *domain.CharityProfile
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByResetToken retrieves the user holding a password reset token.
	FindUserByResetToken(ctx context.Context, token string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// CreateAccount inserts the user and its profile in one transaction, calling beforeCommit
	// (if not nil) before committing.
	CreateAccount(ctx context.Context, account NewAccount, beforeCommit BeforeCommitFunc) error

	// UpdateVerificationCode sets (or clears, with nil) the email verification code.
	UpdateVerificationCode(ctx context.Context, userID string, code *string, updatedAt time.Time, beforeCommit BeforeCommitFunc) error

	// UpdateResetToken stores a password reset token and its expiry.
	UpdateResetToken(ctx context.Context, userID string, token string, expiry time.Time, beforeCommit BeforeCommitFunc) error

	// UpdatePassword sets a new password hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error
}

// DonorProfileStore covers donor profile persistence.
type DonorProfileStore interface {
	// FindDonorByUserID retrieves the donor profile attached to a user.
	FindDonorByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error)

	// UpdateDonorProfile updates an existing donor profile.
	UpdateDonorProfile(ctx context.Context, profile domain.DonorProfile) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	DonorProfileStore
}

package repositories

import (
	"context"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// CharityFilter narrows charity listings.
type CharityFilter struct {
	Search string
	Status *domain.CharityStatus
	Limit  int
	Offset int
}

// CharityReader defines read operations for charity profiles
type CharityReader interface {
	// FindCharityByID retrieves a charity profile by its ID.
	FindCharityByID(ctx context.Context, charityID string) (*domain.CharityProfile, error)

	// FindCharityByUserID retrieves the charity profile attached to a user.
	FindCharityByUserID(ctx context.Context, userID string) (*domain.CharityProfile, error)

	// ListCharities returns one page of charities with donation aggregates and the total match count.
	ListCharities(ctx context.Context, filter CharityFilter) ([]domain.CharitySummary, int, error)

	// ListCharitiesByStatus returns all charities in a given application status.
	ListCharitiesByStatus(ctx context.Context, status domain.CharityStatus) ([]domain.CharityProfile, error)
}

// CharityWriter defines write operations for charity profiles
type CharityWriter interface {
	// UpdateCharityStatus changes the application status, calling beforeCommit before committing.
	UpdateCharityStatus(ctx context.Context, charityID string, status domain.CharityStatus, beforeCommit BeforeCommitFunc) error

	// UpdateCharityProfile updates the editable fields of a charity profile.
	UpdateCharityProfile(ctx context.Context, profile domain.CharityProfile) error

	// DeleteCharity removes a charity and all of its content. Fails with ErrConflict if
	// donations reference it.
	DeleteCharity(ctx context.Context, charityID string) error
}

// CharityRepositoryFacade combines all charity-related repository interfaces
type CharityRepositoryFacade interface {
	CharityReader
	CharityWriter
}

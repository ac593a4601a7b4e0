package services

import (
	"context"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/dto"
)

// CharityReaderSvc defines public charity browsing.
type CharityReaderSvc interface {
	// ListCharities lists charities; non-admin viewers only see approved ones.
	ListCharities(ctx context.Context, params dto.ListCharitiesParams, viewer domain.UserType) (*dto.ListCharitiesResponse, error)

	// GetCharityDetails returns a charity with its stories and beneficiaries.
	GetCharityDetails(ctx context.Context, charityID string) (*dto.CharityDetailResponse, error)
}

// CharityAdminSvc defines the admin approval workflow.
type CharityAdminSvc interface {
	// ListApplications lists charities in the given application status.
	ListApplications(ctx context.Context, status domain.CharityStatus) ([]domain.CharityProfile, error)

	// ReviewApplication approves or rejects a charity and notifies it.
	ReviewApplication(ctx context.Context, charityID string, action domain.ReviewAction) (*domain.CharityProfile, error)

	// DeleteCharity removes a charity that never received donations.
	DeleteCharity(ctx context.Context, charityID string) error
}

// CharitySvcFacade combines all charity service interfaces
type CharitySvcFacade interface {
	CharityReaderSvc
	CharityAdminSvc
}

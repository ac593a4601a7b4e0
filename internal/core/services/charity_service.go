package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/utils/pagination"
)

type charityService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	notifier clients.Notifier
}

// NewCharityService creates the service for charity browsing and admin review.
func NewCharityService(repos portsrepo.RepositoryProvider, notifier clients.Notifier, options ...ServiceOption) portssvc.CharitySvcFacade {
	return &charityService{
		BaseService: newBaseService(options...),
		repos:       repos,
		notifier:    notifier,
	}
}

var _ portssvc.CharitySvcFacade = (*charityService)(nil)

func (s *charityService) findCharity(ctx context.Context, charityID string) (*domain.CharityProfile, error) {
	if !validID(charityID) {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Charity not found")
	}
	charity, err := s.repos.CharityRepo.FindCharityByID(ctx, charityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "Charity not found")
		}
		return nil, fmt.Errorf("failed to find charity: %w", err)
	}
	return charity, nil
}

// ListCharities lists one page of charities. Only admins may see or filter by other statuses.
func (s *charityService) ListCharities(ctx context.Context, params dto.ListCharitiesParams, viewer domain.UserType) (*dto.ListCharitiesResponse, error) {
	page, perPage := pagination.Normalize(params.Page, params.PerPage)

	status := domain.CharityApproved
	filter := portsrepo.CharityFilter{
		Search: strings.TrimSpace(params.Search),
		Status: &status,
		Limit:  perPage,
		Offset: pagination.Offset(page, perPage),
	}
	if viewer == domain.UserTypeAdmin {
		filter.Status = nil
		if params.Status != "" {
			parsed, ok := domain.ParseCharityStatus(params.Status)
			if !ok {
				return nil, apperrors.Newf(apperrors.ErrValidation, "Invalid status filter")
			}
			filter.Status = &parsed
		}
	}

	summaries, total, err := s.repos.CharityRepo.ListCharities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list charities")
		return nil, fmt.Errorf("failed to list charities: %w", err)
	}

	resp := &dto.ListCharitiesResponse{
		Charities:  make([]dto.CharitySummaryResponse, len(summaries)),
		Pagination: pagination.NewMeta(page, perPage, total),
	}
	for i, summary := range summaries {
		resp.Charities[i] = dto.ToCharitySummaryResponse(summary)
	}
	return resp, nil
}

// GetCharityDetails returns a charity with its stories and beneficiaries.
func (s *charityService) GetCharityDetails(ctx context.Context, charityID string) (*dto.CharityDetailResponse, error) {
	charity, err := s.findCharity(ctx, charityID)
	if err != nil {
		return nil, err
	}

	stories, err := s.repos.StoryRepo.ListStoriesByCharity(ctx, charityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	beneficiaries, err := s.repos.BeneficiaryRepo.ListBeneficiariesByCharity(ctx, charityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}

	return &dto.CharityDetailResponse{
		CharityResponse: dto.ToCharityResponse(*charity),
		Stories:         dto.ToStoryResponses(stories),
		Beneficiaries:   dto.ToBeneficiaryResponses(beneficiaries),
	}, nil
}

// ListApplications lists charities in the given application status.
func (s *charityService) ListApplications(ctx context.Context, status domain.CharityStatus) ([]domain.CharityProfile, error) {
	charities, err := s.repos.CharityRepo.ListCharitiesByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return charities, nil
}

// ReviewApplication approves or rejects a charity. The status change is rolled back if the
// charity's account cannot be notified.
func (s *charityService) ReviewApplication(ctx context.Context, charityID string, action domain.ReviewAction) (*domain.CharityProfile, error) {
	status, ok := action.ResultingStatus()
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Invalid action")
	}

	charity, err := s.findCharity(ctx, charityID)
	if err != nil {
		return nil, err
	}
	owner, err := s.repos.UserRepo.FindUserByID(ctx, charity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find charity account: %w", err)
	}

	err = s.repos.CharityRepo.UpdateCharityStatus(ctx, charityID, status,
		notifyBeforeCommit(s.notifier, applicationReviewedEmail(owner.Email, charity.Name, status)))
	if err != nil {
		s.LogError(ctx, err, "Failed to review charity application", "charity_id", charityID)
		if errors.Is(err, errNotificationFailed) {
			return nil, fmt.Errorf("failed to notify charity: %w", err)
		}
		return nil, fmt.Errorf("failed to update charity status: %w", err)
	}

	charity.Status = status
	s.LogInfo(ctx, "Charity application reviewed", "charity_id", charityID, "status", string(status))
	return charity, nil
}

// DeleteCharity removes a charity that never received donations.
func (s *charityService) DeleteCharity(ctx context.Context, charityID string) error {
	if _, err := s.findCharity(ctx, charityID); err != nil {
		return err
	}
	if err := s.repos.CharityRepo.DeleteCharity(ctx, charityID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to delete charity: %w", err)
	}
	s.LogInfo(ctx, "Charity deleted", "charity_id", charityID)
	return nil
}

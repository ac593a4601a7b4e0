package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/utils"
)

type profileService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewProfileService creates the service behind the /profile endpoints.
func NewProfileService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ProfileSvcFacade {
	return &profileService{
		BaseService: newBaseService(options...),
		repos:       repos,
	}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

func (s *profileService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repos.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetProfileDetails returns the profile with the lists that belong to the user's role.
func (s *profileService) GetProfileDetails(ctx context.Context, userID string) (*dto.ProfileDetailsResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileDetailsResponse{
		UserType: string(user.UserType),
		Profile: dto.ProfileResponse{
			Email:    user.Email,
			Username: user.Username,
		},
	}

	switch user.UserType {
	case domain.UserTypeDonor:
		err = s.fillDonorDetails(ctx, user.UserID, resp)
	case domain.UserTypeCharity:
		err = s.fillCharityDetails(ctx, user.UserID, resp)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load profile", "user_id", userID)
		return nil, err
	}
	return resp, nil
}

func (s *profileService) fillDonorDetails(ctx context.Context, userID string, resp *dto.ProfileDetailsResponse) error {
	donor, err := s.repos.UserRepo.FindDonorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrNotFound, "Donor profile not found")
		}
		return fmt.Errorf("failed to find donor profile: %w", err)
	}

	p := &resp.Profile
	p.FullName = donor.FullName
	p.Phone = donor.Phone
	p.IsAnonymous = &donor.IsAnonymous
	p.NotificationPreference = &donor.NotificationPreference

	donations, err := s.repos.DonationRepo.ListDonationsByDonor(ctx, donor.DonorID)
	if err != nil {
		return fmt.Errorf("failed to list donations: %w", err)
	}
	recurring, err := s.repos.DonationRepo.ListRecurringDonationsByDonor(ctx, donor.DonorID)
	if err != nil {
		return fmt.Errorf("failed to list recurring donations: %w", err)
	}
	resp.Donations = dto.ToDonationResponses(donations)
	resp.RecurringDonations = dto.ToRecurringDonationResponses(recurring)
	return nil
}

func (s *profileService) fillCharityDetails(ctx context.Context, userID string, resp *dto.ProfileDetailsResponse) error {
	charity, err := s.repos.CharityRepo.FindCharityByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrNotFound, "Charity profile not found")
		}
		return fmt.Errorf("failed to find charity profile: %w", err)
	}

	p := &resp.Profile
	p.CharityID = charity.CharityID
	p.Name = charity.Name
	p.Description = charity.Description
	p.RegistrationNumber = charity.RegistrationNumber
	p.Status = string(charity.Status)
	p.ContactEmail = charity.ContactEmail
	p.ContactPhone = charity.ContactPhone
	p.BankAccount = charity.BankAccount

	donations, err := s.repos.DonationRepo.ListDonationsByCharity(ctx, charity.CharityID)
	if err != nil {
		return fmt.Errorf("failed to list donations: %w", err)
	}
	beneficiaries, err := s.repos.BeneficiaryRepo.ListBeneficiariesByCharity(ctx, charity.CharityID)
	if err != nil {
		return fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	stories, err := s.repos.StoryRepo.ListStoriesByCharity(ctx, charity.CharityID)
	if err != nil {
		return fmt.Errorf("failed to list stories: %w", err)
	}
	inventory, err := s.repos.InventoryRepo.ListInventoryByCharity(ctx, charity.CharityID)
	if err != nil {
		return fmt.Errorf("failed to list inventory: %w", err)
	}

	resp.Donations = dto.ToDonationResponses(donations)
	resp.Beneficiaries = dto.ToBeneficiaryResponses(beneficiaries)
	resp.Stories = dto.ToStoryResponses(stories)
	resp.Inventory = dto.ToInventoryItemResponses(inventory)
	return nil
}

// UpdateProfile applies the non-nil fields relevant to the user's role; the rest are ignored.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	switch user.UserType {
	case domain.UserTypeDonor:
		donor, err := s.repos.UserRepo.FindDonorByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to find donor profile: %w", err)
		}
		if req.FullName != nil {
			name := strings.TrimSpace(*req.FullName)
			if name == "" {
				return apperrors.Newf(apperrors.ErrValidation, "Full name cannot be empty")
			}
			donor.FullName = name
		}
		if req.Phone != nil {
			phone, err := utils.NormalizeMSISDN(*req.Phone)
			if err != nil {
				return apperrors.Newf(apperrors.ErrValidation, "Invalid phone number")
			}
			donor.Phone = phone
		}
		if req.IsAnonymous != nil {
			donor.IsAnonymous = *req.IsAnonymous
		}
		if req.NotificationPreference != nil {
			donor.NotificationPreference = *req.NotificationPreference
		}
		if err := s.repos.UserRepo.UpdateDonorProfile(ctx, *donor); err != nil {
			return fmt.Errorf("failed to update donor profile: %w", err)
		}

	case domain.UserTypeCharity:
		charity, err := s.repos.CharityRepo.FindCharityByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to find charity profile: %w", err)
		}
		if req.Description != nil {
			charity.Description = strings.TrimSpace(*req.Description)
		}
		if req.ContactEmail != nil {
			charity.ContactEmail = normalizeEmail(*req.ContactEmail)
		}
		if req.ContactPhone != nil {
			charity.ContactPhone = strings.TrimSpace(*req.ContactPhone)
		}
		if req.BankAccount != nil {
			charity.BankAccount = strings.TrimSpace(*req.BankAccount)
		}
		if err := s.repos.CharityRepo.UpdateCharityProfile(ctx, *charity); err != nil {
			return fmt.Errorf("failed to update charity profile: %w", err)
		}

	default:
		return apperrors.Newf(apperrors.ErrValidation, "This account has no editable profile")
	}

	s.LogInfo(ctx, "Profile updated", "user_id", userID)
	return nil
}

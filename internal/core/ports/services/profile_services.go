package services

import (
	"context"

	"github.com/msaadaplus/msaada_backend/internal/dto"
)

// ProfileSvcFacade serves the signed-in user's own profile.
type ProfileSvcFacade interface {
	// GetProfileDetails returns the profile with the role-specific activity lists.
	GetProfileDetails(ctx context.Context, userID string) (*dto.ProfileDetailsResponse, error)

	// UpdateProfile updates the editable fields of the caller's role profile.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) error
}

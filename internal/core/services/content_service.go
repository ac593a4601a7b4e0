package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
)

// MaxImageSize is the largest story image accepted, in bytes.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// contentService manages the stories, beneficiaries and inventory of the caller's charity.
type contentService struct {
	BaseService
	repos  portsrepo.RepositoryProvider
	images clients.ImageStore
}

// NewContentService creates a new content service.
func NewContentService(repos portsrepo.RepositoryProvider, images clients.ImageStore, options ...ServiceOption) portssvc.ContentSvcFacade {
	return &contentService{
		BaseService: newBaseService(options...),
		repos:       repos,
		images:      images,
	}
}

var _ portssvc.ContentSvcFacade = (*contentService)(nil)

func (s *contentService) ownCharity(ctx context.Context, userID string) (*domain.CharityProfile, error) {
	charity, err := s.repos.CharityRepo.FindCharityByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrForbidden, "Only charities can manage content")
		}
		return nil, fmt.Errorf("failed to find charity: %w", err)
	}
	return charity, nil
}

// --- Stories ---

func (s *contentService) CreateStory(ctx context.Context, userID string, req dto.CreateStoryRequest) (*domain.Story, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Title and content are required")
	}

	story := domain.Story{
		StoryID:   uuid.NewString(),
		CharityID: charity.CharityID,
		Title:     title,
		Content:   content,
		CreatedAt: s.Now(),
	}

	if req.Image != nil {
		ext, contentType, err := checkImage(req.Image)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("stories/%s/%s%s", charity.CharityID, story.StoryID, ext)
		url, err := s.images.Upload(ctx, key, contentType, req.Image.Body, req.Image.Size)
		if err != nil {
			s.LogError(ctx, err, "Failed to upload story image", "charity_id", charity.CharityID)
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		story.ImageURL = url
	}

	if err := s.repos.StoryRepo.SaveStory(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to save story: %w", err)
	}
	s.LogInfo(ctx, "Story created", "story_id", story.StoryID, "charity_id", charity.CharityID)
	return &story, nil
}

// checkImage validates size and extension and returns the extension with its content type.
func checkImage(img *dto.ImageUpload) (string, string, error) {
	if img.Size <= 0 || img.Size > MaxImageSize {
		return "", "", apperrors.Newf(apperrors.ErrValidation, "Image must be at most 5MB")
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return "", "", apperrors.Newf(apperrors.ErrValidation, "Image must be a png, jpg, jpeg or gif file")
	}
	return ext, contentType, nil
}

func (s *contentService) ListStories(ctx context.Context, userID string) ([]domain.Story, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repos.StoryRepo.ListStoriesByCharity(ctx, charity.CharityID)
}

func (s *contentService) DeleteStory(ctx context.Context, userID, storyID string) error {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return err
	}
	if !validID(storyID) {
		return apperrors.Newf(apperrors.ErrNotFound, "Story not found")
	}
	if err := s.repos.StoryRepo.DeleteStory(ctx, charity.CharityID, storyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrNotFound, "Story not found")
		}
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

// --- Beneficiaries ---

func (s *contentService) CreateBeneficiary(ctx context.Context, userID string, req dto.BeneficiaryRequest) (*domain.Beneficiary, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}
	b := domain.Beneficiary{
		BeneficiaryID: uuid.NewString(),
		CharityID:     charity.CharityID,
	}
	if err := applyBeneficiary(&b, req); err != nil {
		return nil, err
	}
	if err := s.repos.BeneficiaryRepo.SaveBeneficiary(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save beneficiary: %w", err)
	}
	return &b, nil
}

func applyBeneficiary(b *domain.Beneficiary, req dto.BeneficiaryRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperrors.Newf(apperrors.ErrValidation, "Name is required")
	}
	b.Name = name
	b.Age = req.Age
	b.School = strings.TrimSpace(req.School)
	b.Location = strings.TrimSpace(req.Location)
	return nil
}

func (s *contentService) ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repos.BeneficiaryRepo.ListBeneficiariesByCharity(ctx, charity.CharityID)
}

// ownBeneficiary loads a beneficiary of charityID. Those of other charities are reported as
// not found.
func (s *contentService) ownBeneficiary(ctx context.Context, charityID, beneficiaryID string) (*domain.Beneficiary, error) {
	if !validID(beneficiaryID) {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Beneficiary not found")
	}
	b, err := s.repos.BeneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "Beneficiary not found")
		}
		return nil, fmt.Errorf("failed to find beneficiary: %w", err)
	}
	if b.CharityID != charityID {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Beneficiary not found")
	}
	return b, nil
}

func (s *contentService) UpdateBeneficiary(ctx context.Context, userID, beneficiaryID string, req dto.BeneficiaryRequest) (*domain.Beneficiary, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}
	b, err := s.ownBeneficiary(ctx, charity.CharityID, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if err := applyBeneficiary(b, req); err != nil {
		return nil, err
	}
	if err := s.repos.BeneficiaryRepo.UpdateBeneficiary(ctx, *b); err != nil {
		return nil, fmt.Errorf("failed to update beneficiary: %w", err)
	}
	return b, nil
}

func (s *contentService) DeleteBeneficiary(ctx context.Context, userID, beneficiaryID string) error {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return err
	}
	if !validID(beneficiaryID) {
		return apperrors.Newf(apperrors.ErrNotFound, "Beneficiary not found")
	}
	err = s.repos.BeneficiaryRepo.DeleteBeneficiary(ctx, charity.CharityID, beneficiaryID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		return apperrors.Newf(apperrors.ErrNotFound, "Beneficiary not found")
	case errors.Is(err, apperrors.ErrConflict):
		return apperrors.Newf(apperrors.ErrConflict, "Beneficiary has distributed inventory and cannot be deleted")
	default:
		return fmt.Errorf("failed to delete beneficiary: %w", err)
	}
}

// --- Inventory ---

func (s *contentService) CreateInventoryItem(ctx context.Context, userID string, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Quantity < 1 {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Name and a positive quantity are required")
	}

	item := domain.InventoryItem{
		ItemID:    uuid.NewString(),
		CharityID: charity.CharityID,
		Name:      name,
		Quantity:  req.Quantity,
		CreatedAt: s.Now(),
	}
	if err := s.repos.InventoryRepo.SaveInventoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}
	return &item, nil
}

func (s *contentService) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repos.InventoryRepo.ListInventoryByCharity(ctx, charity.CharityID)
}

// DistributeItem assigns an undistributed item to one of the charity's beneficiaries.
func (s *contentService) DistributeItem(ctx context.Context, userID, itemID string, req dto.DistributeItemRequest) (*domain.InventoryItem, error) {
	charity, err := s.ownCharity(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !validID(itemID) {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Inventory item not found")
	}
	item, err := s.repos.InventoryRepo.FindInventoryItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "Inventory item not found")
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	if item.CharityID != charity.CharityID {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Inventory item not found")
	}
	if item.IsDistributed() {
		return nil, apperrors.Newf(apperrors.ErrConflict, "Item has already been distributed")
	}

	if !validID(req.BeneficiaryID) {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Beneficiary not found")
	}
	beneficiary, err := s.repos.BeneficiaryRepo.FindBeneficiaryByID(ctx, req.BeneficiaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrValidation, "Beneficiary not found")
		}
		return nil, fmt.Errorf("failed to find beneficiary: %w", err)
	}
	if beneficiary.CharityID != charity.CharityID {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Beneficiary does not belong to this charity")
	}

	distributedAt := req.DistributionTime(s.Now())
	if err := s.repos.InventoryRepo.MarkDistributed(ctx, item.ItemID, beneficiary.BeneficiaryID, distributedAt); err != nil {
		return nil, fmt.Errorf("failed to distribute item: %w", err)
	}

	item.BeneficiaryID = &beneficiary.BeneficiaryID
	item.DistributionDate = &distributedAt
	s.LogInfo(ctx, "Inventory item distributed", "item_id", item.ItemID, "beneficiary_id", beneficiary.BeneficiaryID)
	return item, nil
}

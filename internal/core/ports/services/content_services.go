package services

import (
	"context"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/dto"
)

// StorySvc manages the caller charity's stories.
type StorySvc interface {
	CreateStory(ctx context.Context, userID string, req dto.CreateStoryRequest) (*domain.Story, error)
	ListStories(ctx context.Context, userID string) ([]domain.Story, error)
	DeleteStory(ctx context.Context, userID, storyID string) error
}

// BeneficiarySvc manages the caller charity's beneficiaries.
type BeneficiarySvc interface {
	CreateBeneficiary(ctx context.Context, userID string, req dto.BeneficiaryRequest) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, userID, beneficiaryID string, req dto.BeneficiaryRequest) (*domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, userID, beneficiaryID string) error
}

// InventorySvc manages the caller charity's inventory.
type InventorySvc interface {
	CreateInventoryItem(ctx context.Context, userID string, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	DistributeItem(ctx context.Context, userID, itemID string, req dto.DistributeItemRequest) (*domain.InventoryItem, error)
}

// ContentSvcFacade combines all charity content services
type ContentSvcFacade interface {
	StorySvc
	BeneficiarySvc
	InventorySvc
}

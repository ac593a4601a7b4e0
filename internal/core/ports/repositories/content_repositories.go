package repositories

import (
	"context"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// StoryRepository persists charity stories.
type StoryRepository interface {
	SaveStory(ctx context.Context, story domain.Story) error
	ListStoriesByCharity(ctx context.Context, charityID string) ([]domain.Story, error)
	// DeleteStory removes a story owned by charityID.
	DeleteStory(ctx context.Context, charityID, storyID string) error
}

// BeneficiaryRepository persists charity beneficiaries.
type BeneficiaryRepository interface {
	SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiariesByCharity(ctx context.Context, charityID string) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	// DeleteBeneficiary removes a beneficiary owned by charityID. Fails with ErrConflict if
	// inventory was distributed to it.
	DeleteBeneficiary(ctx context.Context, charityID, beneficiaryID string) error
}

// InventoryRepository persists charity inventory.
type InventoryRepository interface {
	SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error
	FindInventoryItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListInventoryByCharity(ctx context.Context, charityID string) ([]domain.InventoryItem, error)
	// MarkDistributed assigns an item to a beneficiary on the given date.
	MarkDistributed(ctx context.Context, itemID, beneficiaryID string, distributedAt time.Time) error
}

package domain

import "time"

// Story is a charity's published update, optionally illustrated.
type Story struct {
	StoryID   string    `json:"storyID"`
	CharityID string    `json:"charityID"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Beneficiary is a person supported by a charity.
type Beneficiary struct {
	BeneficiaryID string `json:"beneficiaryID"`
	CharityID     string `json:"charityID"`
	Name          string `json:"name"`
	Age           *int   `json:"age,omitempty"`
	School        string `json:"school,omitempty"`
	Location      string `json:"location,omitempty"`
}

// InventoryItem is a stock line held by a charity, optionally distributed to a beneficiary.
type InventoryItem struct {
	ItemID           string     `json:"itemID"`
	CharityID        string     `json:"charityID"`
	Name             string     `json:"name"`
	Quantity         int        `json:"quantity"`
	BeneficiaryID    *string    `json:"beneficiaryID,omitempty"`
	DistributionDate *time.Time `json:"distributionDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// IsDistributed reports whether the item has been handed to a beneficiary.
func (i *InventoryItem) IsDistributed() bool {
	return i.BeneficiaryID != nil
}

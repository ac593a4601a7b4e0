package dto

import (
	"io"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// ImageUpload is an image received with a request, ready to be streamed to the image store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateStoryRequest is a story submitted as multipart form data.
type CreateStoryRequest struct {
	Title   string       `form:"title" binding:"required"`
	Content string       `form:"content" binding:"required"`
	Image   *ImageUpload `form:"-"`
}

// StoryResponse is a published story.
type StoryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt Date   `json:"created_at"`
}

// BeneficiaryRequest creates or replaces a beneficiary.
type BeneficiaryRequest struct {
	Name     string `json:"name" binding:"required"`
	Age      *int   `json:"age" binding:"omitempty,min=0,max=150"`
	School   string `json:"school"`
	Location string `json:"location"`
}

// BeneficiaryResponse is a beneficiary.
type BeneficiaryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Age      *int   `json:"age"`
	School   string `json:"school"`
	Location string `json:"location"`
}

// CreateInventoryItemRequest adds stock.
type CreateInventoryItemRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// DistributeItemRequest hands an item to a beneficiary. The date defaults to today.
type DistributeItemRequest struct {
	BeneficiaryID    string `json:"beneficiary_id" binding:"required"`
	DistributionDate *Date  `json:"distribution_date"`
}

// InventoryItemResponse is an inventory line.
type InventoryItemResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	BeneficiaryID    *string `json:"beneficiary_id"`
	DistributionDate *Date   `json:"distribution_date"`
	CreatedAt        Date    `json:"created_at"`
}

// ToStoryResponses converts stories.
func ToStoryResponses(stories []domain.Story) []StoryResponse {
	out := make([]StoryResponse, len(stories))
	for i, s := range stories {
		out[i] = ToStoryResponse(s)
	}
	return out
}

// ToStoryResponse converts a story.
func ToStoryResponse(s domain.Story) StoryResponse {
	return StoryResponse{ID: s.StoryID, Title: s.Title, Content: s.Content, ImageURL: s.ImageURL, CreatedAt: Date(s.CreatedAt)}
}

// ToBeneficiaryResponse converts a beneficiary.
func ToBeneficiaryResponse(b domain.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{ID: b.BeneficiaryID, Name: b.Name, Age: b.Age, School: b.School, Location: b.Location}
}

// ToBeneficiaryResponses converts beneficiaries.
func ToBeneficiaryResponses(bs []domain.Beneficiary) []BeneficiaryResponse {
	out := make([]BeneficiaryResponse, len(bs))
	for i, b := range bs {
		out[i] = ToBeneficiaryResponse(b)
	}
	return out
}

// ToInventoryItemResponse converts an inventory item.
func ToInventoryItemResponse(it domain.InventoryItem) InventoryItemResponse {
	resp := InventoryItemResponse{
		ID:            it.ItemID,
		Name:          it.Name,
		Quantity:      it.Quantity,
		BeneficiaryID: it.BeneficiaryID,
		CreatedAt:     Date(it.CreatedAt),
	}
	if it.DistributionDate != nil {
		d := Date(*it.DistributionDate)
		resp.DistributionDate = &d
	}
	return resp
}

// ToInventoryItemResponses converts inventory items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i, it := range items {
		out[i] = ToInventoryItemResponse(it)
	}
	return out
}

// DistributionTime resolves the requested distribution date, defaulting to now.
func (r DistributeItemRequest) DistributionTime(now time.Time) time.Time {
	if r.DistributionDate == nil {
		return now
	}
	return r.DistributionDate.Time()
}

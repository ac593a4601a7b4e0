package mapping

import (
	"database/sql"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/models"
)

// ToModelStory converts a domain Story to a model Story
func ToModelStory(d domain.Story) models.Story {
	return models.Story{
		StoryID:   d.StoryID,
		CharityID: d.CharityID,
		Title:     d.Title,
		Content:   d.Content,
		ImageURL:  sql.NullString{String: d.ImageURL, Valid: d.ImageURL != ""},
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainStory converts a model Story to a domain Story
func ToDomainStory(m models.Story) domain.Story {
	return domain.Story{
		StoryID:   m.StoryID,
		CharityID: m.CharityID,
		Title:     m.Title,
		Content:   m.Content,
		ImageURL:  m.ImageURL.String,
		CreatedAt: m.CreatedAt,
	}
}

// ToModelBeneficiary converts a domain Beneficiary to a model Beneficiary
func ToModelBeneficiary(d domain.Beneficiary) models.Beneficiary {
	m := models.Beneficiary{
		BeneficiaryID: d.BeneficiaryID,
		CharityID:     d.CharityID,
		Name:          d.Name,
		School:        sql.NullString{String: d.School, Valid: d.School != ""},
		Location:      sql.NullString{String: d.Location, Valid: d.Location != ""},
	}
	if d.Age != nil {
		m.Age = sql.NullInt32{Int32: int32(*d.Age), Valid: true}
	}
	return m
}

// ToDomainBeneficiary converts a model Beneficiary to a domain Beneficiary
func ToDomainBeneficiary(m models.Beneficiary) domain.Beneficiary {
	d := domain.Beneficiary{
		BeneficiaryID: m.BeneficiaryID,
		CharityID:     m.CharityID,
		Name:          m.Name,
		School:        m.School.String,
		Location:      m.Location.String,
	}
	if m.Age.Valid {
		age := int(m.Age.Int32)
		d.Age = &age
	}
	return d
}

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:           d.ItemID,
		CharityID:        d.CharityID,
		Name:             d.Name,
		Quantity:         d.Quantity,
		BeneficiaryID:    toNullString(d.BeneficiaryID),
		DistributionDate: toNullTime(d.DistributionDate),
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:           m.ItemID,
		CharityID:        m.CharityID,
		Name:             m.Name,
		Quantity:         m.Quantity,
		BeneficiaryID:    fromNullString(m.BeneficiaryID),
		DistributionDate: fromNullTime(m.DistributionDate),
		CreatedAt:        m.CreatedAt,
	}
}

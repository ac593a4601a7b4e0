package models

import (
	"database/sql"
	"time"
)

// Story is a row of the stories table.
type Story struct {
	StoryID   string         `db:"story_id"`
	CharityID string         `db:"charity_id"`
	Title     string         `db:"title"`
	Content   string         `db:"content"`
	ImageURL  sql.NullString `db:"image_url"`
	CreatedAt time.Time      `db:"created_at"`
}

// Beneficiary is a row of the beneficiaries table.
type Beneficiary struct {
	BeneficiaryID string         `db:"beneficiary_id"`
	CharityID     string         `db:"charity_id"`
	Name          string         `db:"name"`
	Age           sql.NullInt32  `db:"age"`
	School        sql.NullString `db:"school"`
	Location      sql.NullString `db:"location"`
}

// InventoryItem is a row of the inventory table.
type InventoryItem struct {
	ItemID           string         `db:"item_id"`
	CharityID        string         `db:"charity_id"`
	Name             string         `db:"name"`
	Quantity         int            `db:"quantity"`
	BeneficiaryID    sql.NullString `db:"beneficiary_id"`
	DistributionDate sql.NullTime   `db:"distribution_date"`
	CreatedAt        time.Time      `db:"created_at"`
}

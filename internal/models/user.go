package models

import (
	"database/sql"
	"time"
)

// Timestamps are the audit columns shared by mutable tables.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// User is a row of the users table.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	UserType     string `db:"user_type"`
	// Cleared once the email address is verified.
	VerificationCode sql.NullString `db:"verification_code"`

	// Reset Token Fields
	ResetTokenHash   sql.NullString `db:"reset_token_hash"`   // Store hash of the reset token
	ResetTokenExpiry sql.NullTime   `db:"reset_token_expiry"` // Expiry of the stored reset token
	Timestamps
}

// DonorProfile is a row of the donors table.
type DonorProfile struct {
	DonorID                string         `db:"donor_id"`
	UserID                 string         `db:"user_id"`
	FullName               string         `db:"full_name"`
	Phone                  sql.NullString `db:"phone"`
	IsAnonymous            bool           `db:"is_anonymous"`
	NotificationPreference bool           `db:"notification_preference"`
}

// CharityProfile is a row of the charities table.
type CharityProfile struct {
	CharityID          string         `db:"charity_id"`
	UserID             string         `db:"user_id"`
	Name               string         `db:"name"`
	Description        string         `db:"description"`
	RegistrationNumber string         `db:"registration_number"`
	Status             string         `db:"status"`
	ContactEmail       string         `db:"contact_email"`
	ContactPhone       string         `db:"contact_phone"`
	BankAccount        sql.NullString `db:"bank_account"`
}

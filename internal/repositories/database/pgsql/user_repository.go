package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	"github.com/msaadaplus/msaada_backend/internal/models"
	"github.com/msaadaplus/msaada_backend/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	user_id, email, username, password_hash, user_type, verification_code,
	reset_token_hash, reset_token_expiry, created_at, updated_at
FROM users
`

// findUser runs the select with a single-row filter.
func (r *PgxUserRepository) findUser(ctx context.Context, filter string, arg any) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+filter, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "WHERE user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "WHERE email = $1", email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "WHERE username = $1", username)
}

func (r *PgxUserRepository) FindUserByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.findUser(ctx, "WHERE reset_token_hash = $1", tokenHash)
}

// CreateAccount inserts the user and its profile in a single transaction.
func (r *PgxUserRepository) CreateAccount(ctx context.Context, account portsrepo.NewAccount, beforeCommit portsrepo.BeforeCommitFunc) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		u := mapping.ToModelUser(account.User)
		_, err := tx.Exec(ctx, `
			INSERT INTO users (
				user_id, email, username, password_hash, user_type, verification_code,
				reset_token_hash, reset_token_expiry, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`,
			u.UserID, u.Email, u.Username, u.PasswordHash, u.UserType, u.VerificationCode,
			u.ResetTokenHash, u.ResetTokenExpiry, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return mapWriteError(err, "user")
		}

		if account.Donor != nil {
			d := mapping.ToModelDonorProfile(*account.Donor)
			_, err = tx.Exec(ctx, `
				INSERT INTO donors (donor_id, user_id, full_name, phone, is_anonymous, notification_preference)
				VALUES ($1, $2, $3, $4, $5, $6);
			`, d.DonorID, d.UserID, d.FullName, d.Phone, d.IsAnonymous, d.NotificationPreference)
			if err != nil {
				return mapWriteError(err, "donor profile")
			}
		}

		if account.Charity != nil {
			c := mapping.ToModelCharityProfile(*account.Charity)
			_, err = tx.Exec(ctx, `
				INSERT INTO charities (
					charity_id, user_id, name, description, registration_number, status,
					contact_email, contact_phone, bank_account, created_at
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
			`,
				c.CharityID, c.UserID, c.Name, c.Description, c.RegistrationNumber, c.Status,
				c.ContactEmail, c.ContactPhone, c.BankAccount, u.CreatedAt,
			)
			if err != nil {
				return mapWriteError(err, "charity profile")
			}
		}
		return nil
	}, beforeCommit)
}

func (r *PgxUserRepository) UpdateVerificationCode(ctx context.Context, userID string, code *string, updatedAt time.Time, beforeCommit portsrepo.BeforeCommitFunc) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE users SET verification_code = $1, updated_at = $2 WHERE user_id = $3;`,
			code, updatedAt, userID)
		if err != nil {
			return fmt.Errorf("failed to update verification code: %w", err)
		}
		return expectOneRow(tag, "user")
	}, beforeCommit)
}

func (r *PgxUserRepository) UpdateResetToken(ctx context.Context, userID string, tokenHash string, expiry time.Time, beforeCommit portsrepo.BeforeCommitFunc) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE users SET reset_token_hash = $1, reset_token_expiry = $2 WHERE user_id = $3;`,
			tokenHash, expiry, userID)
		if err != nil {
			return fmt.Errorf("failed to store reset token: %w", err)
		}
		return expectOneRow(tag, "user")
	}, beforeCommit)
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = $2
		WHERE user_id = $3;
	`, passwordHash, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectOneRow(tag, "user")
}

func (r *PgxUserRepository) FindDonorByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT donor_id, user_id, full_name, phone, is_anonymous, notification_preference
		FROM donors
		WHERE user_id = $1;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query donor: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.DonorProfile])
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan donor: %w", err)
	}
	d := mapping.ToDomainDonorProfile(m)
	return &d, nil
}

func (r *PgxUserRepository) UpdateDonorProfile(ctx context.Context, profile domain.DonorProfile) error {
	m := mapping.ToModelDonorProfile(profile)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE donors
		SET full_name = $1, phone = $2, is_anonymous = $3, notification_preference = $4
		WHERE donor_id = $5;
	`, m.FullName, m.Phone, m.IsAnonymous, m.NotificationPreference, m.DonorID)
	if err != nil {
		return fmt.Errorf("failed to update donor profile: %w", err)
	}
	return expectOneRow(tag, "donor")
}

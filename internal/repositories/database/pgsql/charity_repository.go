package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	"github.com/msaadaplus/msaada_backend/internal/models"
	"github.com/msaadaplus/msaada_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxCharityRepository struct {
	BaseRepository
}

func newPgxCharityRepository(pool *pgxpool.Pool) portsrepo.CharityRepositoryFacade {
	return &PgxCharityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CharityRepositoryFacade = (*PgxCharityRepository)(nil)

const charityColumns = `
	c.charity_id, c.user_id, c.name, c.description, c.registration_number, c.status,
	c.contact_email, c.contact_phone, c.bank_account`

// charitySummaryRow is a charity row with its aggregate columns.
type charitySummaryRow struct {
	models.CharityProfile
	TotalDonations   decimal.Decimal `db:"total_donations"`
	DonorCount       int             `db:"donor_count"`
	BeneficiaryCount int             `db:"beneficiary_count"`
}

// listFilter is shared by the page and the count query; $1 is the search term, $2 the status.
const listFilter = `
WHERE ($1::text = '' OR c.name ILIKE '%' || $1::text || '%' OR c.description ILIKE '%' || $1::text || '%')
  AND ($2::text IS NULL OR c.status = $2::text)
`

func (r *PgxCharityRepository) findCharity(ctx context.Context, filter string, arg any) (*domain.CharityProfile, error) {
	rows, err := r.Pool.Query(ctx, "SELECT"+charityColumns+" FROM charities c "+filter, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query charity: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CharityProfile])
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan charity: %w", err)
	}
	c := mapping.ToDomainCharityProfile(m)
	return &c, nil
}

func (r *PgxCharityRepository) FindCharityByID(ctx context.Context, charityID string) (*domain.CharityProfile, error) {
	return r.findCharity(ctx, "WHERE c.charity_id = $1", charityID)
}

func (r *PgxCharityRepository) FindCharityByUserID(ctx context.Context, userID string) (*domain.CharityProfile, error) {
	return r.findCharity(ctx, "WHERE c.user_id = $1", userID)
}

// ListCharities returns one page of charities ordered by name, together with the number of
// charities matching the filter.
func (r *PgxCharityRepository) ListCharities(ctx context.Context, filter portsrepo.CharityFilter) ([]domain.CharitySummary, int, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM charities c"+listFilter, filter.Search, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count charities: %w", err)
	}

	query := `
SELECT` + charityColumns + `,
	COALESCE(d.total, 0) AS total_donations,
	COALESCE(d.donors, 0) AS donor_count,
	COALESCE(b.beneficiaries, 0) AS beneficiary_count
FROM charities c
LEFT JOIN (
	SELECT charity_id, SUM(amount) AS total, COUNT(DISTINCT donor_id) AS donors
	FROM donations
	GROUP BY charity_id
) d ON d.charity_id = c.charity_id
LEFT JOIN (
	SELECT charity_id, COUNT(*) AS beneficiaries
	FROM beneficiaries
	GROUP BY charity_id
) b ON b.charity_id = c.charity_id
` + listFilter + `
ORDER BY c.name, c.charity_id
LIMIT $3 OFFSET $4;
`
	rows, err := r.Pool.Query(ctx, query, filter.Search, status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query charities: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[charitySummaryRow])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect charity rows: %w", err)
	}

	out := make([]domain.CharitySummary, len(summaries))
	for i, s := range summaries {
		out[i] = domain.CharitySummary{
			CharityProfile:   mapping.ToDomainCharityProfile(s.CharityProfile),
			TotalDonations:   s.TotalDonations,
			DonorCount:       s.DonorCount,
			BeneficiaryCount: s.BeneficiaryCount,
		}
	}
	return out, total, nil
}

func (r *PgxCharityRepository) ListCharitiesByStatus(ctx context.Context, status domain.CharityStatus) ([]domain.CharityProfile, error) {
	rows, err := r.Pool.Query(ctx, "SELECT"+charityColumns+" FROM charities c WHERE c.status = $1 ORDER BY c.created_at;", string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query charities by status: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CharityProfile])
	if err != nil {
		return nil, fmt.Errorf("failed to collect charity rows: %w", err)
	}
	return mapping.ToDomainCharityProfileSlice(ms), nil
}

func (r *PgxCharityRepository) UpdateCharityStatus(ctx context.Context, charityID string, status domain.CharityStatus, beforeCommit portsrepo.BeforeCommitFunc) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE charities SET status = $1 WHERE charity_id = $2;`, string(status), charityID)
		if err != nil {
			return fmt.Errorf("failed to update charity status: %w", err)
		}
		return expectOneRow(tag, "charity")
	}, beforeCommit)
}

func (r *PgxCharityRepository) UpdateCharityProfile(ctx context.Context, profile domain.CharityProfile) error {
	m := mapping.ToModelCharityProfile(profile)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE charities
		SET description = $1, contact_email = $2, contact_phone = $3, bank_account = $4
		WHERE charity_id = $5;
	`, m.Description, m.ContactEmail, m.ContactPhone, m.BankAccount, m.CharityID)
	if err != nil {
		return fmt.Errorf("failed to update charity profile: %w", err)
	}
	return expectOneRow(tag, "charity")
}

// DeleteCharity removes the charity, its content and its user account. Charities that
// received donations are kept, since donations are never deleted.
func (r *PgxCharityRepository) DeleteCharity(ctx context.Context, charityID string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var userID string
		err := tx.QueryRow(ctx, `SELECT user_id FROM charities WHERE charity_id = $1 FOR UPDATE;`, charityID).Scan(&userID)
		if err != nil {
			if isMissingRow(err) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock charity: %w", err)
		}

		var hasDonations bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM donations WHERE charity_id = $1)
			    OR EXISTS (SELECT 1 FROM recurring_donations WHERE charity_id = $1);
		`, charityID).Scan(&hasDonations)
		if err != nil {
			return fmt.Errorf("failed to check charity donations: %w", err)
		}
		if hasDonations {
			return apperrors.Newf(apperrors.ErrConflict, "Cannot delete a charity that has received donations")
		}

		for _, stmt := range []string{
			`DELETE FROM inventory WHERE charity_id = $1;`,
			`DELETE FROM beneficiaries WHERE charity_id = $1;`,
			`DELETE FROM stories WHERE charity_id = $1;`,
			`DELETE FROM charities WHERE charity_id = $1;`,
		} {
			if _, err := tx.Exec(ctx, stmt, charityID); err != nil {
				return fmt.Errorf("failed to delete charity: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID); err != nil {
			return fmt.Errorf("failed to delete charity account: %w", err)
		}
		return nil
	}, nil)
}

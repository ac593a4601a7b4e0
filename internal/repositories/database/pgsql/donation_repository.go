package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	"github.com/msaadaplus/msaada_backend/internal/models"
	"github.com/msaadaplus/msaada_backend/internal/utils/mapping"
)

type PgxDonationRepository struct {
	BaseRepository
}

func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepositoryFacade {
	return &PgxDonationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonationRepositoryFacade = (*PgxDonationRepository)(nil)

// donationViewRow is a donation joined with both parties' display names.
type donationViewRow struct {
	models.Donation
	CharityName      string `db:"charity_name"`
	DonorName        string `db:"donor_name"`
	DonorIsAnonymous bool   `db:"donor_is_anonymous"`
}

type recurringDonationViewRow struct {
	models.RecurringDonation
	CharityName string `db:"charity_name"`
}

const donationViewQuery = `
SELECT
	d.donation_id, d.donor_id, d.charity_id, d.amount, d.donation_type, d.payment_status, d.created_at,
	c.name AS charity_name, dn.full_name AS donor_name, dn.is_anonymous AS donor_is_anonymous
FROM donations d
JOIN charities c ON c.charity_id = d.charity_id
JOIN donors dn ON dn.donor_id = d.donor_id
`

func toDonationView(row donationViewRow) domain.DonationView {
	donor := domain.DonorProfile{FullName: row.DonorName, IsAnonymous: row.DonorIsAnonymous}
	return domain.DonationView{
		Donation:    mapping.ToDomainDonation(row.Donation),
		CharityName: row.CharityName,
		DonorName:   donor.DisplayName(),
	}
}

func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO donations (donation_id, donor_id, charity_id, amount, donation_type, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.DonationID, m.DonorID, m.CharityID, m.Amount, m.DonationType, m.PaymentStatus, m.CreatedAt)
	if err != nil {
		return mapWriteError(err, "donation")
	}
	return nil
}

func (r *PgxDonationRepository) SaveRecurringDonation(ctx context.Context, recurring domain.RecurringDonation) error {
	m := mapping.ToModelRecurringDonation(recurring)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO recurring_donations (
			recurring_donation_id, donor_id, charity_id, amount, frequency, next_donation_date, is_active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, m.RecurringDonationID, m.DonorID, m.CharityID, m.Amount, m.Frequency, m.NextDonationDate, m.IsActive, m.CreatedAt)
	if err != nil {
		return mapWriteError(err, "recurring donation")
	}
	return nil
}

func (r *PgxDonationRepository) listDonations(ctx context.Context, filter string, arg any) ([]domain.DonationView, error) {
	rows, err := r.Pool.Query(ctx, donationViewQuery+filter, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	viewRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[donationViewRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect donation rows: %w", err)
	}
	views := make([]domain.DonationView, len(viewRows))
	for i, row := range viewRows {
		views[i] = toDonationView(row)
	}
	return views, nil
}

func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.DonationView, error) {
	views, err := r.listDonations(ctx, "WHERE d.donation_id = $1", donationID)
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &views[0], nil
}

func (r *PgxDonationRepository) ListDonationsByDonor(ctx context.Context, donorID string) ([]domain.DonationView, error) {
	return r.listDonations(ctx, "WHERE d.donor_id = $1 ORDER BY d.created_at DESC", donorID)
}

func (r *PgxDonationRepository) ListDonationsByCharity(ctx context.Context, charityID string) ([]domain.DonationView, error) {
	return r.listDonations(ctx, "WHERE d.charity_id = $1 ORDER BY d.created_at DESC", charityID)
}

func (r *PgxDonationRepository) ListRecurringDonationsByDonor(ctx context.Context, donorID string) ([]domain.RecurringDonationView, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT
			rd.recurring_donation_id, rd.donor_id, rd.charity_id, rd.amount, rd.frequency,
			rd.next_donation_date, rd.is_active, rd.created_at, c.name AS charity_name
		FROM recurring_donations rd
		JOIN charities c ON c.charity_id = rd.charity_id
		WHERE rd.donor_id = $1
		ORDER BY rd.created_at DESC;
	`, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring donations: %w", err)
	}
	viewRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[recurringDonationViewRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.RecurringDonationView{}, nil
		}
		return nil, fmt.Errorf("failed to collect recurring donation rows: %w", err)
	}
	views := make([]domain.RecurringDonationView, len(viewRows))
	for i, row := range viewRows {
		views[i] = domain.RecurringDonationView{
			RecurringDonation: mapping.ToDomainRecurringDonation(row.RecurringDonation),
			CharityName:       row.CharityName,
		}
	}
	return views, nil
}

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

// --- Stories ---

type PgxStoryRepository struct {
	BaseRepository
}

func newPgxStoryRepository(pool *pgxpool.Pool) portsrepo.StoryRepository {
	return &PgxStoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StoryRepository = (*PgxStoryRepository)(nil)

func (r *PgxStoryRepository) SaveStory(ctx context.Context, story domain.Story) error {
	m := mapping.ToModelStory(story)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO stories (story_id, charity_id, title, content, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.StoryID, m.CharityID, m.Title, m.Content, m.ImageURL, m.CreatedAt)
	if err != nil {
		return mapWriteError(err, "story")
	}
	return nil
}

func (r *PgxStoryRepository) ListStoriesByCharity(ctx context.Context, charityID string) ([]domain.Story, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT story_id, charity_id, title, content, image_url, created_at
		FROM stories
		WHERE charity_id = $1
		ORDER BY created_at DESC;
	`, charityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Story])
	if err != nil {
		return nil, fmt.Errorf("failed to collect story rows: %w", err)
	}
	stories := make([]domain.Story, len(ms))
	for i, m := range ms {
		stories[i] = mapping.ToDomainStory(m)
	}
	return stories, nil
}

func (r *PgxStoryRepository) DeleteStory(ctx context.Context, charityID, storyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM stories WHERE story_id = $1 AND charity_id = $2;`, storyID, charityID)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return expectOneRow(tag, "story")
}

// --- Beneficiaries ---

type PgxBeneficiaryRepository struct {
	BaseRepository
}

func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepository {
	return &PgxBeneficiaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BeneficiaryRepository = (*PgxBeneficiaryRepository)(nil)

const beneficiarySelectQuery = `
SELECT beneficiary_id, charity_id, name, age, school, location
FROM beneficiaries
`

func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(beneficiary)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO beneficiaries (beneficiary_id, charity_id, name, age, school, location)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.BeneficiaryID, m.CharityID, m.Name, m.Age, m.School, m.Location)
	if err != nil {
		return mapWriteError(err, "beneficiary")
	}
	return nil
}

func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	rows, err := r.Pool.Query(ctx, beneficiarySelectQuery+"WHERE beneficiary_id = $1", beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiary: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Beneficiary])
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
	}
	b := mapping.ToDomainBeneficiary(m)
	return &b, nil
}

func (r *PgxBeneficiaryRepository) ListBeneficiariesByCharity(ctx context.Context, charityID string) ([]domain.Beneficiary, error) {
	rows, err := r.Pool.Query(ctx, beneficiarySelectQuery+"WHERE charity_id = $1 ORDER BY name", charityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query beneficiaries: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Beneficiary])
	if err != nil {
		return nil, fmt.Errorf("failed to collect beneficiary rows: %w", err)
	}
	out := make([]domain.Beneficiary, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainBeneficiary(m)
	}
	return out, nil
}

func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(beneficiary)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE beneficiaries
		SET name = $1, age = $2, school = $3, location = $4
		WHERE beneficiary_id = $5 AND charity_id = $6;
	`, m.Name, m.Age, m.School, m.Location, m.BeneficiaryID, m.CharityID)
	if err != nil {
		return fmt.Errorf("failed to update beneficiary: %w", err)
	}
	return expectOneRow(tag, "beneficiary")
}

func (r *PgxBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, charityID, beneficiaryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM beneficiaries WHERE beneficiary_id = $1 AND charity_id = $2;`, beneficiaryID, charityID)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return apperrors.Newf(apperrors.ErrConflict, "Cannot delete a beneficiary that has received inventory")
		}
		return fmt.Errorf("failed to delete beneficiary: %w", err)
	}
	return expectOneRow(tag, "beneficiary")
}

// --- Inventory ---

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

const inventorySelectQuery = `
SELECT item_id, charity_id, name, quantity, beneficiary_id, distribution_date, created_at
FROM inventory
`

func (r *PgxInventoryRepository) SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO inventory (item_id, charity_id, name, quantity, beneficiary_id, distribution_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.ItemID, m.CharityID, m.Name, m.Quantity, m.BeneficiaryID, m.DistributionDate, m.CreatedAt)
	if err != nil {
		return mapWriteError(err, "inventory item")
	}
	return nil
}

func (r *PgxInventoryRepository) FindInventoryItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, inventorySelectQuery+"WHERE item_id = $1", itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory item: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.InventoryItem])
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan inventory item: %w", err)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

func (r *PgxInventoryRepository) ListInventoryByCharity(ctx context.Context, charityID string) ([]domain.InventoryItem, error) {
	rows, err := r.Pool.Query(ctx, inventorySelectQuery+"WHERE charity_id = $1 ORDER BY created_at DESC", charityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InventoryItem])
	if err != nil {
		return nil, fmt.Errorf("failed to collect inventory rows: %w", err)
	}
	out := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainInventoryItem(m)
	}
	return out, nil
}

func (r *PgxInventoryRepository) MarkDistributed(ctx context.Context, itemID, beneficiaryID string, distributedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE inventory SET beneficiary_id = $1, distribution_date = $2 WHERE item_id = $3;
	`, beneficiaryID, distributedAt, itemID)
	if err != nil {
		return mapWriteError(err, "inventory distribution")
	}
	return expectOneRow(tag, "inventory item")
}

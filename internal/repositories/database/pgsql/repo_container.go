package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		CharityRepo:     newPgxCharityRepository(dbPool),
		DonationRepo:    newPgxDonationRepository(dbPool),
		StoryRepo:       newPgxStoryRepository(dbPool),
		BeneficiaryRepo: newPgxBeneficiaryRepository(dbPool),
		InventoryRepo:   newPgxInventoryRepository(dbPool),
	}
}

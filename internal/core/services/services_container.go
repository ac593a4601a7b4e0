package services

import (
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// options are applied to every service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, outbound clients.ClientProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:     NewAuthService(cfg, repos.UserRepo, outbound.Notifier, options...),
		Token:    NewTokenService(cfg, options...),
		Profile:  NewProfileService(repos, options...),
		Charity:  NewCharityService(repos, outbound.Notifier, options...),
		Donation: NewDonationService(repos.UserRepo, repos.CharityRepo, repos.DonationRepo, outbound.Payments, options...),
		Content:  NewContentService(repos, outbound.Images, options...),
	}
}

package services

import (
	portsrepo "github.com/rostech/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/platform/config"
)

// NewServiceContainer wires every service from the repository provider.
// mailer may be nil when outbound mail is not configured.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config, mailer portssvc.Mailer) *portssvc.ServiceContainer {
	safeSvc := NewSafeService(repos.Safe)

	return &portssvc.ServiceContainer{
		Auth:        NewAuthService(repos.User, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
		User:        NewUserService(repos.User),
		Customer:    NewCustomerService(repos.Customer),
		Product:     NewProductService(repos.Product),
		Sale:        NewSaleService(repos.Sale, repos.Customer, repos.Product),
		Installment: NewInstallmentService(repos.Installment, repos.Sale, repos.Customer),
		Safe:        safeSvc,
		Partner:     NewPartnerService(repos.Partner, safeSvc),
		Reporting:   NewReportingService(repos, safeSvc, mailer, cfg.LowStockThreshold),
	}
}

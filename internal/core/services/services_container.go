package services

import (
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/platform/config"
)

// NewServiceContainer wires all services in dependency order.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	tenantSvc := NewTenantService(repos.TenantRepo, userSvc)
	accountSvc := NewAccountService(repos.AccountRepo, tenantSvc)
	assetTypeSvc := NewAssetTypeService(repos.AssetTypeRepo, tenantSvc)
	journalEntrySvc := NewJournalEntryService(repos.JournalEntryRepo, repos.AccountRepo, repos.AssetTypeRepo, tenantSvc)
	invoiceSvc := NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo, repos.TimeEntryRepo, tenantSvc)
	paymentSvc := NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, tenantSvc)
	timeEntrySvc := NewTimeEntryService(repos.TimeEntryRepo, tenantSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo, tenantSvc)
	tokenSvc := NewTokenService(cfg, repos.UserRepo)
	googleOAuthSvc := NewGoogleOAuthHandlerService(cfg)

	return &portssvc.ServiceContainer{
		User:         userSvc,
		Token:        tokenSvc,
		GoogleOAuth:  googleOAuthSvc,
		Tenant:       tenantSvc,
		Account:      accountSvc,
		AssetType:    assetTypeSvc,
		JournalEntry: journalEntrySvc,
		Invoice:      invoiceSvc,
		Payment:      paymentSvc,
		TimeEntry:    timeEntrySvc,
		Reporting:    reportingSvc,
	}
}

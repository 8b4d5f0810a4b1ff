package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := newPgxTenantRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	assetTypeRepo := newPgxAssetTypeRepository(dbPool)
	journalEntryRepo := newPgxJournalEntryRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	timeEntryRepo := newPgxTimeEntryRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TenantRepo:       tenantRepo,
		UserRepo:         userRepo,
		AccountRepo:      accountRepo,
		AssetTypeRepo:    assetTypeRepo,
		JournalEntryRepo: journalEntryRepo,
		InvoiceRepo:      invoiceRepo,
		PaymentRepo:      paymentRepo,
		TimeEntryRepo:    timeEntryRepo,
		ReportingRepo:    reportingRepo,
	}
}

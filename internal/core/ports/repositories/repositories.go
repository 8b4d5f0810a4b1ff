package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TenantRepo       TenantRepositoryFacade
	UserRepo         UserRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	AssetTypeRepo    AssetTypeRepositoryFacade
	JournalEntryRepo JournalEntryRepositoryWithTx
	InvoiceRepo      InvoiceRepositoryFacade
	PaymentRepo      PaymentRepositoryFacade
	TimeEntryRepo    TimeEntryRepositoryFacade
	ReportingRepo    ReportingReader
}

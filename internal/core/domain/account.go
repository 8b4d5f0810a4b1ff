package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one node of a tenant's chart of accounts.
type Account struct {
	AccountID     string      `json:"accountID"` // Primary Key (UUID)
	TenantID      string      `json:"tenantID"`  // FK -> tenants.tenant_id
	Name          string      `json:"name"`
	AccountNumber string      `json:"accountNumber"` // User-facing ordinal within the chart
	AccountType   AccountType `json:"accountType"`
	Description   string      `json:"description"`
	IsActive      bool        `json:"isActive"`
	AuditFields
}

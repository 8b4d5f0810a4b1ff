package models

// AccountType defines the fundamental accounting type of an account row.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account mirrors one row of accounts.
type Account struct {
	AccountID     string      `json:"accountID"`
	TenantID      string      `json:"tenantID"`
	Name          string      `json:"name"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   AccountType `json:"accountType"`
	Description   string      `json:"description"`
	IsActive      bool        `json:"isActive"`
	AuditFields
}

// AssetType mirrors one row of asset_types.
type AssetType struct {
	AssetTypeID string `json:"assetTypeID"`
	TenantID    string `json:"tenantID"`
	Name        string `json:"name"`
	Suffix      string `json:"suffix"`
	Precision   int16  `json:"precision"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

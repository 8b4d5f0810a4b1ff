package domain

// AssetType represents the unit a journal-entry line is denominated in for a
// tenant, e.g. a currency ("USD") or a non-monetary unit ("HOURS").
type AssetType struct {
	AssetTypeID string `json:"assetTypeID"` // Primary Key (UUID)
	TenantID    string `json:"tenantID"`    // FK -> tenants.tenant_id
	Name        string `json:"name"`
	Suffix      string `json:"suffix"` // Display suffix, e.g. "$" or "hrs"
	Precision   int16  `json:"precision"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToDomainAccount converts a model account row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		TenantID:      m.TenantID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		AccountType:   domain.AccountType(m.AccountType),
		Description:   m.Description,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccount converts a domain account to a model row.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		TenantID:      d.TenantID,
		Name:          d.Name,
		AccountNumber: d.AccountNumber,
		AccountType:   models.AccountType(d.AccountType),
		Description:   d.Description,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAssetType converts a model asset-type row to the domain representation.
func ToDomainAssetType(m models.AssetType) domain.AssetType {
	return domain.AssetType{
		AssetTypeID: m.AssetTypeID,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Suffix:      m.Suffix,
		Precision:   m.Precision,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAssetType converts a domain asset type to a model row.
func ToModelAssetType(d domain.AssetType) models.AssetType {
	return models.AssetType{
		AssetTypeID: d.AssetTypeID,
		TenantID:    d.TenantID,
		Name:        d.Name,
		Suffix:      d.Suffix,
		Precision:   d.Precision,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

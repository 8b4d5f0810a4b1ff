package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		TenantID:       d.TenantID,
		EntryID:        d.EntryID,
		EntryDate:      d.EntryDate,
		PostDate:       d.PostDate,
		Status:         models.EntryStatus(d.Status),
		Note:           d.Note,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		PostedAt:       d.PostedAt,
		PostedBy:       d.PostedBy,
		CanceledAt:     d.CanceledAt,
		CanceledBy:     d.CanceledBy,
	}
}

// ToDomainJournalEntry converts a model row to a domain JournalEntry header.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		TenantID:       m.TenantID,
		EntryID:        m.EntryID,
		EntryDate:      m.EntryDate,
		PostDate:       m.PostDate,
		Status:         domain.EntryStatus(m.Status),
		Note:           m.Note,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		PostedAt:       m.PostedAt,
		PostedBy:       m.PostedBy,
		CanceledAt:     m.CanceledAt,
		CanceledBy:     m.CanceledBy,
	}
}

// ToModelJournalEntryAccount converts a domain line to a model row.
func ToModelJournalEntryAccount(d domain.JournalEntryAccount) models.JournalEntryAccount {
	return models.JournalEntryAccount{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		AssetTypeID:    d.AssetTypeID,
		EntryType:      models.EntryType(d.EntryType),
		Amount:         d.Amount,
		Memo:           d.Memo,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryAccount converts a model row to a domain line.
func ToDomainJournalEntryAccount(m models.JournalEntryAccount) domain.JournalEntryAccount {
	return domain.JournalEntryAccount{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		AssetTypeID:    m.AssetTypeID,
		EntryType:      domain.EntryType(m.EntryType),
		Amount:         m.Amount,
		Memo:           m.Memo,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntryAccountSlice converts model line rows to domain lines.
func ToDomainJournalEntryAccountSlice(ms []models.JournalEntryAccount) []domain.JournalEntryAccount {
	ds := make([]domain.JournalEntryAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryAccount(m)
	}
	return ds
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents one account's totals in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// AccountAmount pairs an account with a net amount for P&L / balance sheet rows.
type AccountAmount struct {
	AccountID string
	Name      string
	NetAmount decimal.Decimal
}

// PAndLReport aggregates revenue and expense accounts over a period.
type PAndLReport struct {
	Revenue   []AccountAmount
	Expenses  []AccountAmount
	NetProfit decimal.Decimal
}

// BalanceSheetReport aggregates asset, liability and equity accounts as of a date.
type BalanceSheetReport struct {
	Assets           []AccountAmount
	Liabilities      []AccountAmount
	Equity           []AccountAmount
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// JournalExportRow is one journal-entry line flattened with its entry header
// for CSV export.
type JournalExportRow struct {
	EntryID       int64
	EffectiveDate time.Time
	Status        EntryStatus
	Note          string
	AccountNumber string
	AccountName   string
	EntryType     EntryType
	Amount        decimal.Decimal
	Memo          string
}

// LedgerRow is one line of an account ledger: a journal-entry line joined with
// its entry header.
type LedgerRow struct {
	JournalEntryID string
	EntryID        int64
	EntryDate      time.Time // Effective date of the owning entry
	Note           string
	EntryType      EntryType
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal
}

package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

func line(accountID string, entryType domain.EntryType, amount string) domain.JournalEntryAccount {
	return domain.JournalEntryAccount{
		AccountID: accountID,
		EntryType: entryType,
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestSumByType(t *testing.T) {
	lines := []domain.JournalEntryAccount{
		line("cash", domain.Debit, "100.50"),
		line("fees", domain.Debit, "9.50"),
		line("revenue", domain.Credit, "110"),
	}

	debits, credits := SumByType(lines)
	assert.True(t, debits.Equal(decimal.RequireFromString("110")))
	assert.True(t, credits.Equal(decimal.RequireFromString("110")))
}

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalEntryAccount
		wantErr string
	}{
		{
			name: "balanced entry",
			lines: []domain.JournalEntryAccount{
				line("cash", domain.Debit, "250"),
				line("revenue", domain.Credit, "250"),
			},
		},
		{
			name: "balanced entry with split credits",
			lines: []domain.JournalEntryAccount{
				line("cash", domain.Debit, "100"),
				line("revenue", domain.Credit, "80"),
				line("tax-payable", domain.Credit, "20"),
			},
		},
		{
			name: "fractional amounts balance exactly",
			lines: []domain.JournalEntryAccount{
				line("cash", domain.Debit, "0.1"),
				line("cash", domain.Debit, "0.2"),
				line("revenue", domain.Credit, "0.3"),
			},
		},
		{
			name:    "single line is rejected",
			lines:   []domain.JournalEntryAccount{line("cash", domain.Debit, "100")},
			wantErr: "at least two lines",
		},
		{
			name: "zero amount is rejected",
			lines: []domain.JournalEntryAccount{
				line("cash", domain.Debit, "0"),
				line("revenue", domain.Credit, "0"),
			},
			wantErr: "must be positive",
		},
		{
			name: "negative amount is rejected",
			lines: []domain.JournalEntryAccount{
				line("cash", domain.Debit, "-50"),
				line("revenue", domain.Credit, "-50"),
			},
			wantErr: "must be positive",
		},
		{
			name: "unbalanced entry is rejected",
			lines: []domain.JournalEntryAccount{
				line("cash", domain.Debit, "100"),
				line("revenue", domain.Credit, "99.99"),
			},
			wantErr: "not balanced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryBalance(tt.lines)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		entryType   domain.EntryType
		accountType domain.AccountType
		want        string
	}{
		{"debit to asset is positive", domain.Debit, domain.Asset, "100"},
		{"credit to asset is negative", domain.Credit, domain.Asset, "-100"},
		{"debit to expense is positive", domain.Debit, domain.Expense, "100"},
		{"credit to liability is positive", domain.Credit, domain.Liability, "100"},
		{"debit to liability is negative", domain.Debit, domain.Liability, "-100"},
		{"credit to revenue is positive", domain.Credit, domain.Revenue, "100"},
		{"debit to revenue is negative", domain.Debit, domain.Revenue, "-100"},
		{"credit to equity is positive", domain.Credit, domain.Equity, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := SignedAmount(line("acct", tt.entryType, "100"), tt.accountType)
			require.NoError(t, err)
			assert.True(t, signed.Equal(decimal.RequireFromString(tt.want)), "got %s", signed)
		})
	}
}

func TestSignedAmountUnknownAccountType(t *testing.T) {
	_, err := SignedAmount(line("acct", domain.Debit, "100"), domain.AccountType("BOGUS"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

package accounting

import (
	"fmt"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumByType returns the debit and credit totals of a set of entry lines.
func SumByType(lines []domain.JournalEntryAccount) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		if line.EntryType == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	return debits, credits
}

// ValidateEntryBalance checks that an entry's lines form a balanced
// double-entry transaction: at least two lines, every amount positive, and
// debit total equal to credit total.
func ValidateEntryBalance(lines []domain.JournalEntryAccount) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	zero := decimal.NewFromInt(0)
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("line amount must be positive for account %s", line.AccountID)
		}
	}

	debits, credits := SumByType(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("journal entry is not balanced: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}

	return nil
}

// SignedAmount applies the accounting sign convention to a line amount based
// on the account type:
// DEBIT to ASSET/EXPENSE -> positive, CREDIT to ASSET/EXPENSE -> negative,
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative, CREDIT -> positive.
func SignedAmount(line domain.JournalEntryAccount, accountType domain.AccountType) (decimal.Decimal, error) {
	signed := line.Amount
	isDebit := line.EntryType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signed = signed.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signed = signed.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	return signed, nil
}

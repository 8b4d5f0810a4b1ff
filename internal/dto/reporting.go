package dto

import (
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// TrialBalanceRowResponse defines one account row of a trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse wraps the trial balance rows with their totals.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// AccountAmountResponse pairs an account with a net amount.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLResponse defines the profit-and-loss report payload.
type PAndLResponse struct {
	Revenue   []AccountAmountResponse `json:"revenue"`
	Expenses  []AccountAmountResponse `json:"expenses"`
	NetProfit decimal.Decimal         `json:"netProfit"`
}

// BalanceSheetResponse defines the balance-sheet report payload.
type BalanceSheetResponse struct {
	Assets           []AccountAmountResponse `json:"assets"`
	Liabilities      []AccountAmountResponse `json:"liabilities"`
	Equity           []AccountAmountResponse `json:"equity"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal         `json:"totalEquity"`
}

// ToTrialBalanceResponse converts trial balance rows, accumulating totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Rows:        make([]TrialBalanceRowResponse, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
		resp.TotalDebit = resp.TotalDebit.Add(row.Debit)
		resp.TotalCredit = resp.TotalCredit.Add(row.Credit)
	}
	return resp
}

func toAccountAmountResponses(rows []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(rows))
	for i, row := range rows {
		res[i] = AccountAmountResponse{AccountID: row.AccountID, Name: row.Name, NetAmount: row.NetAmount}
	}
	return res
}

// ToPAndLResponse converts a domain P&L report to its response DTO.
func ToPAndLResponse(r *domain.PAndLReport) PAndLResponse {
	return PAndLResponse{
		Revenue:   toAccountAmountResponses(r.Revenue),
		Expenses:  toAccountAmountResponses(r.Expenses),
		NetProfit: r.NetProfit,
	}
}

// ToBalanceSheetResponse converts a domain balance sheet to its response DTO.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:           toAccountAmountResponses(r.Assets),
		Liabilities:      toAccountAmountResponses(r.Liabilities),
		Equity:           toAccountAmountResponses(r.Equity),
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		TotalEquity:      r.TotalEquity,
	}
}

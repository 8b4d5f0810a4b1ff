package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
)

// CreateInvoiceLineRequest defines one billed item in an invoice creation request.
type CreateInvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
// TimeEntryIDs optionally pulls unbilled time entries in as generated lines.
type CreateInvoiceRequest struct {
	CustomerName    string                     `json:"customerName" binding:"required"`
	CustomerAddress string                     `json:"customerAddress"`
	InvoiceDate     time.Time                  `json:"invoiceDate" binding:"required"`
	DueDate         time.Time                  `json:"dueDate" binding:"required"`
	Lines           []CreateInvoiceLineRequest `json:"lines" binding:"dive"`
	TimeEntryIDs    []string                   `json:"timeEntryIDs"`
	HourlyRate      *decimal.Decimal           `json:"hourlyRate"` // Required when TimeEntryIDs is non-empty
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status *string `form:"status" binding:"omitempty,oneof=DRAFT SENT PAID VOID"`
	Page   int     `form:"page,default=1"`
	Size   int     `form:"size,default=20"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string                `json:"invoiceID"`
	TenantID        string                `json:"tenantID"`
	InvoiceNumber   int64                 `json:"invoiceNumber"`
	CustomerName    string                `json:"customerName"`
	CustomerAddress string                `json:"customerAddress,omitempty"`
	InvoiceDate     time.Time             `json:"invoiceDate"`
	DueDate         time.Time             `json:"dueDate"`
	Status          string                `json:"status"`
	Total           decimal.Decimal       `json:"total"`
	AmountPaid      *decimal.Decimal      `json:"amountPaid,omitempty"`
	Balance         *decimal.Decimal      `json:"balance,omitempty"`
	Lines           []InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
}

// RecordPaymentRequest defines the data for recording a payment.
type RecordPaymentRequest struct {
	InvoiceID   string          `json:"invoiceID" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=CASH CHECK CARD TRANSFER"`
	Memo        string          `json:"memo"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	InvoiceID   string          `json:"invoiceID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Memo        string          `json:"memo,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		TenantID:        inv.TenantID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Status:          string(inv.Status),
		Total:           inv.Total,
		CreatedAt:       inv.CreatedAt,
		CreatedBy:       inv.CreatedBy,
	}
	if len(inv.Lines) > 0 {
		resp.Lines = make([]InvoiceLineResponse, len(inv.Lines))
		for i, line := range inv.Lines {
			resp.Lines[i] = InvoiceLineResponse{
				LineID:      line.LineID,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Amount:      line.Amount,
			}
		}
	}
	return resp
}

// ToInvoiceWithBalanceResponse converts a balance-decorated invoice.
func ToInvoiceWithBalanceResponse(inv *domain.InvoiceWithBalance) InvoiceResponse {
	resp := ToInvoiceResponse(&inv.Invoice)
	paid := inv.AmountPaid
	balance := inv.Balance
	resp.AmountPaid = &paid
	resp.Balance = &balance
	return resp
}

// ToListInvoicesResponse converts a page of balance-decorated invoices.
func ToListInvoicesResponse(invoices []domain.InvoiceWithBalance, totalCount int64, page, size int) *ListInvoicesResponse {
	resp := &ListInvoicesResponse{
		Invoices:   make([]InvoiceResponse, len(invoices)),
		TotalCount: totalCount,
		Page:       page,
		Size:       size,
	}
	for i := range invoices {
		resp.Invoices[i] = ToInvoiceWithBalanceResponse(&invoices[i])
	}
	return resp
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		InvoiceID:   p.InvoiceID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Method:      string(p.Method),
		Memo:        p.Memo,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of payments to response DTOs.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

// ToDomainInvoice converts a model invoice row to the domain representation.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:       m.InvoiceID,
		TenantID:        m.TenantID,
		InvoiceNumber:   m.InvoiceNumber,
		CustomerName:    m.CustomerName,
		CustomerAddress: m.CustomerAddress,
		InvoiceDate:     m.InvoiceDate,
		DueDate:         m.DueDate,
		Status:          domain.InvoiceStatus(m.Status),
		Total:           m.Total,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceLine converts a model invoice-line row to the domain representation.
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// ToDomainPayment converts a model payment row to the domain representation.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		TenantID:    m.TenantID,
		InvoiceID:   m.InvoiceID,
		PaymentDate: m.PaymentDate,
		Amount:      m.Amount,
		Method:      domain.PaymentMethod(m.Method),
		Memo:        m.Memo,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTimeEntry converts a model time-entry row to the domain representation.
func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		TimeEntryID: m.TimeEntryID,
		TenantID:    m.TenantID,
		UserID:      m.UserID,
		WorkDate:    m.WorkDate,
		Hours:       m.Hours,
		Description: m.Description,
		Billable:    m.Billable,
		InvoiceID:   m.InvoiceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

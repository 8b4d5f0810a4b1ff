package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// invoiceHandler handles HTTP requests related to invoices and payments.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, ps portssvc.PaymentSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
		paymentService: ps,
	}
}

// registerInvoiceRoutes registers invoice and payment routes under a tenant group.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newInvoiceHandler(invoiceService, paymentService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/by-number/:invoice_number", h.getInvoiceByNumber)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.POST("/:invoice_id/send", h.sendInvoice)
		invoices.POST("/:invoice_id/void", h.voidInvoice)
		invoices.GET("/:invoice_id/payments", h.listInvoicePayments)
	}

	rg.POST("/payments", h.recordPayment)
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a draft invoice with explicit lines and/or lines generated from unbilled time entries.
// @Tags invoices
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Time entry already invoiced"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves a page of the tenant's invoices with balances, optionally filtered by status.
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param status query string false "Status filter" Enums(DRAFT, SENT, PAID, VOID)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its lines, amount paid and outstanding balance.
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	invoiceID := c.Param("invoice_id")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), tenantID, invoiceID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve invoice")
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceWithBalanceResponse(invoice))
}

// getInvoiceByNumber godoc
// @Summary Get an invoice by number
// @Description Retrieves an invoice by its tenant-scoped sequential number.
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_number path int true "Invoice Number"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices/by-number/{invoice_number} [get]
func (h *invoiceHandler) getInvoiceByNumber(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	invoiceNumber, err := strconv.ParseInt(c.Param("invoice_number"), 10, 64)
	if err != nil || invoiceNumber < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invoice number must be a positive integer"})
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByNumber(c.Request.Context(), tenantID, invoiceNumber, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve invoice")
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceWithBalanceResponse(invoice))
}

// sendInvoice godoc
// @Summary Send an invoice
// @Description Transitions a draft invoice to sent.
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invoice is not draft"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices/{invoice_id}/send [post]
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	invoiceID := c.Param("invoice_id")

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), tenantID, invoiceID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to send invoice")
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// voidInvoice godoc
// @Summary Void an invoice
// @Description Transitions a draft or sent invoice to void. Paid invoices cannot be voided.
// @Tags invoices
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invoice is paid"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices/{invoice_id}/void [post]
func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	invoiceID := c.Param("invoice_id")

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), tenantID, invoiceID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to void invoice")
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoicePayments godoc
// @Summary List an invoice's payments
// @Description Retrieves the payments recorded against an invoice, oldest first.
// @Tags payments
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/invoices/{invoice_id}/payments [get]
func (h *invoiceHandler) listInvoicePayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	invoiceID := c.Param("invoice_id")

	payments, err := h.paymentService.ListPaymentsByInvoice(c.Request.Context(), tenantID, invoiceID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment against a sent invoice. The invoice becomes paid when the balance reaches zero.
// @Tags payments
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment exceeds outstanding balance"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

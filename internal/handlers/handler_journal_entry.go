package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// journalEntryHandler handles HTTP requests related to journal entries.
type journalEntryHandler struct {
	journalEntryService portssvc.JournalEntrySvcFacade
}

// newJournalEntryHandler creates a new journalEntryHandler.
func newJournalEntryHandler(js portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{journalEntryService: js}
}

// registerJournalEntryRoutes registers journal entry routes under a tenant
// group, plus the per-account ledger route.
func registerJournalEntryRoutes(rg *gin.RouterGroup, journalEntryService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(journalEntryService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/pending", h.listPendingJournalEntries)
		entries.GET("/next-number", h.peekNextEntryNumber)
		entries.GET("/by-number/:entry_number", h.getJournalEntryByNumber)
		entries.GET("/:journal_entry_id", h.getJournalEntry)
		entries.POST("/:journal_entry_id/post", h.postJournalEntry)
		entries.POST("/:journal_entry_id/cancel", h.cancelJournalEntry)
	}

	rg.GET("/accounts/:account_id/ledger", h.listAccountLedger)
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced pending journal entry with its lines and assigns the next sequential entry number.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced or invalid entry"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries [post]
func (h *journalEntryHandler) createJournalEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	entry, err := h.journalEntryService.CreateJournalEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Retrieves a page of the tenant's entries whose effective date falls within the range, excluding canceled entries.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries [get]
func (h *journalEntryHandler) listJournalEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalEntryService.ListJournalEntries(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listPendingJournalEntries godoc
// @Summary List pending journal entries
// @Description Retrieves a page of the tenant's pending entries.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/pending [get]
func (h *journalEntryHandler) listPendingJournalEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.journalEntryService.ListPendingJournalEntries(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list pending journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// peekNextEntryNumber godoc
// @Summary Peek the next entry number
// @Description Reports the entry number the next created entry would receive. Advisory only.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.NextEntryNumberResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/next-number [get]
func (h *journalEntryHandler) peekNextEntryNumber(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	next, err := h.journalEntryService.PeekNextEntryNumber(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute next entry number")
		return
	}

	c.JSON(http.StatusOK, dto.NextEntryNumberResponse{NextEntryID: next})
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines, accounts, asset types and audit users.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param journal_entry_id path string true "Journal Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{journal_entry_id} [get]
func (h *journalEntryHandler) getJournalEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	journalEntryID := c.Param("journal_entry_id")

	entry, err := h.journalEntryService.GetJournalEntryByID(c.Request.Context(), tenantID, journalEntryID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// getJournalEntryByNumber godoc
// @Summary Get a journal entry by number
// @Description Retrieves a journal entry by its tenant-scoped sequential number.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param entry_number path int true "Entry Number"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/by-number/{entry_number} [get]
func (h *journalEntryHandler) getJournalEntryByNumber(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	entryNumber, err := strconv.ParseInt(c.Param("entry_number"), 10, 64)
	if err != nil || entryNumber < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Entry number must be a positive integer"})
		return
	}

	entry, err := h.journalEntryService.GetJournalEntryByNumber(c.Request.Context(), tenantID, entryNumber, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postJournalEntry godoc
// @Summary Post a journal entry
// @Description Transitions a pending entry to posted, defaulting the post date to today.
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param journal_entry_id path string true "Journal Entry ID"
// @Param post body dto.PostJournalEntryRequest false "Post date and note"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{journal_entry_id}/post [post]
func (h *journalEntryHandler) postJournalEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	journalEntryID := c.Param("journal_entry_id")

	var req dto.PostJournalEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	entry, err := h.journalEntryService.PostJournalEntry(c.Request.Context(), tenantID, journalEntryID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// cancelJournalEntry godoc
// @Summary Cancel a journal entry
// @Description Transitions a pending entry to canceled.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param journal_entry_id path string true "Journal Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/{journal_entry_id}/cancel [post]
func (h *journalEntryHandler) cancelJournalEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	journalEntryID := c.Param("journal_entry_id")

	entry, err := h.journalEntryService.CancelJournalEntry(c.Request.Context(), tenantID, journalEntryID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel journal entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listAccountLedger godoc
// @Summary List an account's ledger
// @Description Retrieves posted entry lines for one account with running balances, newest first, cursor-paginated.
// @Tags journal-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Account ID"
// @Param limit query int false "Max rows" default(50)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse "Invalid continuation token"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/{account_id}/ledger [get]
func (h *journalEntryHandler) listAccountLedger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	accountID := c.Param("account_id")

	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.journalEntryService.ListAccountLedger(c.Request.Context(), tenantID, accountID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list account ledger")
		return
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes under a tenant group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/trial-balance/export", h.exportTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/profit-and-loss/export", h.exportProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/balance-sheet/export", h.exportBalanceSheet)
	}

	rg.GET("/journal-entries/export", h.exportJournalEntries)
}

// parseDateParam reads a YYYY-MM-DD query parameter, defaulting to now (UTC)
// when the parameter is absent.
func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now().UTC(), true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid %s: expected YYYY-MM-DD", name)})
		return time.Time{}, false
	}
	return t, true
}

// parseRequiredDateParam reads a YYYY-MM-DD query parameter and rejects the
// request when it is absent.
func parseRequiredDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Missing required parameter %s", name)})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid %s: expected YYYY-MM-DD", name)})
		return time.Time{}, false
	}
	return t, true
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Returns per-account debit and credit totals from posted journal entries as of a date.
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, userID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows))
}

// exportTrialBalance godoc
// @Summary Export trial balance as CSV
// @Description Streams the trial balance as a CSV attachment.
// @Tags reports
// @Produce text/csv
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/trial-balance/export [get]
func (h *reportingHandler) exportTrialBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	filename := fmt.Sprintf("trial-balance-%s.csv", asOf.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportingService.ExportTrialBalanceCSV(c.Request.Context(), tenantID, userID, asOf, c.Writer); err != nil {
		// Headers may already be written, so only log here.
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("trial balance export failed", "error", err, "tenant_id", tenantID)
		c.Abort()
		return
	}
}

// exportJournalEntries godoc
// @Summary Export journal entries as CSV
// @Description Streams the tenant's non-canceled entry lines within the effective-date range as a CSV attachment, one row per line.
// @Tags reports
// @Produce text/csv
// @Param tenant_id path string true "Tenant ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal-entries/export [get]
func (h *reportingHandler) exportJournalEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	start, ok := parseRequiredDateParam(c, "startDate")
	if !ok {
		return
	}
	end, ok := parseRequiredDateParam(c, "endDate")
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not be before startDate"})
		return
	}

	filename := fmt.Sprintf("journal-entries-%s-%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportingService.ExportJournalEntriesCSV(c.Request.Context(), tenantID, userID, start, end, c.Writer); err != nil {
		// Headers may already be written, so only log here.
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("journal entry export failed", "error", err, "tenant_id", tenantID)
		c.Abort()
		return
	}
}

// getProfitAndLoss godoc
// @Summary Profit and loss report
// @Description Aggregates revenue and expense activity from posted journal entries for a period.
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.PAndLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	start, ok := parseRequiredDateParam(c, "startDate")
	if !ok {
		return
	}
	end, ok := parseRequiredDateParam(c, "endDate")
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not be before startDate"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenantID, userID, start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to build profit and loss report")
		return
	}

	c.JSON(http.StatusOK, dto.ToPAndLResponse(report))
}

// exportProfitAndLoss godoc
// @Summary Export profit and loss as CSV
// @Description Streams the P&L report as a CSV attachment.
// @Tags reports
// @Produce text/csv
// @Param tenant_id path string true "Tenant ID"
// @Param startDate query string true "Period start (YYYY-MM-DD)"
// @Param endDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/profit-and-loss/export [get]
func (h *reportingHandler) exportProfitAndLoss(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	start, ok := parseRequiredDateParam(c, "startDate")
	if !ok {
		return
	}
	end, ok := parseRequiredDateParam(c, "endDate")
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must not be before startDate"})
		return
	}

	filename := fmt.Sprintf("profit-and-loss-%s-%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportingService.ExportProfitAndLossCSV(c.Request.Context(), tenantID, userID, start, end, c.Writer); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("profit and loss export failed", "error", err, "tenant_id", tenantID)
		c.Abort()
		return
	}
}

// exportBalanceSheet godoc
// @Summary Export balance sheet as CSV
// @Description Streams the balance sheet as a CSV attachment.
// @Tags reports
// @Produce text/csv
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/balance-sheet/export [get]
func (h *reportingHandler) exportBalanceSheet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	filename := fmt.Sprintf("balance-sheet-%s.csv", asOf.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportingService.ExportBalanceSheetCSV(c.Request.Context(), tenantID, userID, asOf, c.Writer); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("balance sheet export failed", "error", err, "tenant_id", tenantID)
		c.Abort()
		return
	}
}

// getBalanceSheet godoc
// @Summary Balance sheet report
// @Description Aggregates asset, liability and equity balances from posted journal entries as of a date.
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, userID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

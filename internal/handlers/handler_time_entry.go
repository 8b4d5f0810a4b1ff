package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// timeEntryHandler handles HTTP requests related to time tracking.
type timeEntryHandler struct {
	timeEntryService portssvc.TimeEntrySvcFacade
}

// newTimeEntryHandler creates a new timeEntryHandler.
func newTimeEntryHandler(ts portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{timeEntryService: ts}
}

// registerTimeEntryRoutes registers time entry routes under a tenant group.
func registerTimeEntryRoutes(rg *gin.RouterGroup, timeEntryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(timeEntryService)

	timeEntries := rg.Group("/time-entries")
	{
		timeEntries.POST("", h.createTimeEntry)
		timeEntries.GET("", h.listTimeEntries)
		timeEntries.GET("/unbilled", h.listUnbilledTimeEntries)
		timeEntries.GET("/:time_entry_id", h.getTimeEntry)
		timeEntries.PUT("/:time_entry_id", h.updateTimeEntry)
	}
}

// createTimeEntry godoc
// @Summary Create a time entry
// @Description Records tracked work time for the authenticated user.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param timeEntry body dto.CreateTimeEntryRequest true "Time entry details"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/time-entries [post]
func (h *timeEntryHandler) createTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	entry, err := h.timeEntryService.CreateTimeEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create time entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// listTimeEntries godoc
// @Summary List time entries
// @Description Retrieves a page of the tenant's time entries within a work-date range.
// @Tags time-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/time-entries [get]
func (h *timeEntryHandler) listTimeEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.timeEntryService.ListTimeEntries(c.Request.Context(), tenantID, userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list time entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listUnbilledTimeEntries godoc
// @Summary List unbilled time entries
// @Description Retrieves billable time entries not yet attached to an invoice, oldest first.
// @Tags time-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.TimeEntryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/time-entries/unbilled [get]
func (h *timeEntryHandler) listUnbilledTimeEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	entries, err := h.timeEntryService.ListUnbilledTimeEntries(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list unbilled time entries")
		return
	}

	resp := make([]dto.TimeEntryResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToTimeEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getTimeEntry godoc
// @Summary Get a time entry
// @Description Retrieves a single time entry by ID.
// @Tags time-entries
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param time_entry_id path string true "Time Entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/time-entries/{time_entry_id} [get]
func (h *timeEntryHandler) getTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	timeEntryID := c.Param("time_entry_id")

	entry, err := h.timeEntryService.GetTimeEntryByID(c.Request.Context(), tenantID, timeEntryID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve time entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Time entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Description Updates an uninvoiced time entry.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param time_entry_id path string true "Time Entry ID"
// @Param timeEntry body dto.UpdateTimeEntryRequest true "Time entry changes"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Time entry already invoiced"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/time-entries/{time_entry_id} [put]
func (h *timeEntryHandler) updateTimeEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	timeEntryID := c.Param("time_entry_id")

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	entry, err := h.timeEntryService.UpdateTimeEntry(c.Request.Context(), tenantID, timeEntryID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update time entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Time entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// tenantHandler handles HTTP requests related to tenants and membership.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

// newTenantHandler creates a new tenantHandler.
func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers tenant management routes and nests all
// tenant-scoped resources under /tenants/:tenant_id.
func registerTenantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTenantHandler(services.Tenant)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("", h.listUserTenants)
	}

	tenantSpecific := rg.Group("/tenants/:tenant_id")
	{
		tenantSpecific.GET("", h.getTenant)
		tenantSpecific.PUT("", h.updateTenant)
		tenantSpecific.POST("/users", h.addUserToTenant)

		registerAccountRoutes(tenantSpecific, services.Account)
		registerAssetTypeRoutes(tenantSpecific, services.AssetType)
		registerJournalEntryRoutes(tenantSpecific, services.JournalEntry)
		registerInvoiceRoutes(tenantSpecific, services.Invoice, services.Payment)
		registerTimeEntryRoutes(tenantSpecific, services.TimeEntry)
		registerReportingRoutes(tenantSpecific, services.Reporting)
	}
}

// createTenant godoc
// @Summary Create a new tenant
// @Description Creates a new tenant and assigns the creator as admin.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req.Name, req.Description, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create tenant")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// listUserTenants godoc
// @Summary List the caller's tenants
// @Description Retrieves all tenants the authenticated user belongs to.
// @Tags tenants
// @Produce json
// @Success 200 {object} dto.ListTenantsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listUserTenants(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tenants, err := h.tenantService.ListUserTenants(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list tenants")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTenantsResponse(tenants))
}

// getTenant godoc
// @Summary Get tenant details
// @Description Retrieves a tenant the authenticated user belongs to.
// @Tags tenants
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	if err := h.tenantService.AuthorizeUserAction(c.Request.Context(), userID, tenantID, "READONLY"); err != nil {
		respondServiceError(c, err, "Failed to authorize")
		return
	}

	tenant, err := h.tenantService.FindTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateTenant godoc
// @Summary Update tenant details
// @Description Updates a tenant's name or description. Admin only.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param tenant body dto.UpdateTenantRequest true "Tenant changes"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id} [put]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, name, description, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// addUserToTenant godoc
// @Summary Add user to tenant
// @Description Grants a user membership in the tenant with a role. Admin only.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param membership body dto.AddUserToTenantRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/users [post]
func (h *tenantHandler) addUserToTenant(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.AddUserToTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	if err := h.tenantService.AddUserToTenant(c.Request.Context(), userID, req.UserID, tenantID, req.Role); err != nil {
		respondServiceError(c, err, "Failed to add user to tenant")
		return
	}

	c.Status(http.StatusNoContent)
}

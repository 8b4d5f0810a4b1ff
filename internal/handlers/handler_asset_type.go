package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
)

// assetTypeHandler handles HTTP requests related to asset types.
type assetTypeHandler struct {
	assetTypeService portssvc.AssetTypeSvcFacade
}

func newAssetTypeHandler(ats portssvc.AssetTypeSvcFacade) *assetTypeHandler {
	return &assetTypeHandler{assetTypeService: ats}
}

// registerAssetTypeRoutes registers asset type routes under a tenant group.
func registerAssetTypeRoutes(rg *gin.RouterGroup, assetTypeService portssvc.AssetTypeSvcFacade) {
	h := newAssetTypeHandler(assetTypeService)

	assetTypes := rg.Group("/asset-types")
	{
		assetTypes.POST("", h.createAssetType)
		assetTypes.GET("", h.listAssetTypes)
		assetTypes.GET("/:asset_type_id", h.getAssetType)
		assetTypes.PUT("/:asset_type_id", h.updateAssetType)
	}
}

// createAssetType godoc
// @Summary Create a new asset type
// @Description Creates a unit journal-entry lines can be denominated in.
// @Tags asset-types
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param assetType body dto.CreateAssetTypeRequest true "Asset type details"
// @Success 201 {object} dto.AssetTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/asset-types [post]
func (h *assetTypeHandler) createAssetType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	var req dto.CreateAssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	assetType, err := h.assetTypeService.CreateAssetType(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create asset type")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetTypeResponse(assetType))
}

// listAssetTypes godoc
// @Summary List asset types
// @Description Retrieves the tenant's asset types.
// @Tags asset-types
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.AssetTypeResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/asset-types [get]
func (h *assetTypeHandler) listAssetTypes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")

	assetTypes, err := h.assetTypeService.ListAssetTypes(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list asset types")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssetTypesResponse(assetTypes))
}

// getAssetType godoc
// @Summary Get asset type details
// @Description Retrieves a single asset type by ID.
// @Tags asset-types
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asset_type_id path string true "Asset Type ID"
// @Success 200 {object} dto.AssetTypeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/asset-types/{asset_type_id} [get]
func (h *assetTypeHandler) getAssetType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	assetTypeID := c.Param("asset_type_id")

	assetType, err := h.assetTypeService.GetAssetTypeByID(c.Request.Context(), tenantID, assetTypeID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve asset type")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetTypeResponse(assetType))
}

// updateAssetType godoc
// @Summary Update asset type details
// @Description Updates an asset type's name, suffix or active flag.
// @Tags asset-types
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asset_type_id path string true "Asset Type ID"
// @Param assetType body dto.UpdateAssetTypeRequest true "Asset type changes"
// @Success 200 {object} dto.AssetTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /tenants/{tenant_id}/asset-types/{asset_type_id} [put]
func (h *assetTypeHandler) updateAssetType(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenant_id")
	assetTypeID := c.Param("asset_type_id")

	var req dto.UpdateAssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	assetType, err := h.assetTypeService.UpdateAssetType(c.Request.Context(), tenantID, assetTypeID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update asset type")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetTypeResponse(assetType))
}

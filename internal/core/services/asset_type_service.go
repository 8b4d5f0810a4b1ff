package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
)

// assetTypeService provides management of the units entries are denominated in.
type assetTypeService struct {
	assetTypeRepo portsrepo.AssetTypeRepositoryFacade
	tenantSvc     portssvc.TenantAuthorizerSvc
}

// NewAssetTypeService creates a new asset type service.
func NewAssetTypeService(repo portsrepo.AssetTypeRepositoryFacade, tenantSvc portssvc.TenantAuthorizerSvc) portssvc.AssetTypeSvcFacade {
	return &assetTypeService{
		assetTypeRepo: repo,
		tenantSvc:     tenantSvc,
	}
}

var _ portssvc.AssetTypeSvcFacade = (*assetTypeService)(nil)

func (s *assetTypeService) GetAssetTypeByID(ctx context.Context, tenantID, assetTypeID, requestingUserID string) (*domain.AssetType, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.assetTypeRepo.FindAssetTypeByID(ctx, tenantID, assetTypeID)
}

func (s *assetTypeService) ListAssetTypes(ctx context.Context, tenantID, requestingUserID string) ([]domain.AssetType, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.assetTypeRepo.ListAssetTypesByTenant(ctx, tenantID)
}

func (s *assetTypeService) CreateAssetType(ctx context.Context, tenantID string, req dto.CreateAssetTypeRequest, creatorUserID string) (*domain.AssetType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assetType := domain.AssetType{
		AssetTypeID: uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		Suffix:      req.Suffix,
		Precision:   req.Precision,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.assetTypeRepo.SaveAssetType(ctx, assetType); err != nil {
		logger.Error("Failed to save asset type",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Asset type created",
		slog.String("asset_type_id", assetType.AssetTypeID),
		slog.String("tenant_id", tenantID))
	return &assetType, nil
}

func (s *assetTypeService) UpdateAssetType(ctx context.Context, tenantID, assetTypeID string, req dto.UpdateAssetTypeRequest, requestingUserID string) (*domain.AssetType, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	assetType, err := s.assetTypeRepo.FindAssetTypeByID(ctx, tenantID, assetTypeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		assetType.Name = *req.Name
	}
	if req.Suffix != nil {
		assetType.Suffix = *req.Suffix
	}
	if req.IsActive != nil {
		assetType.IsActive = *req.IsActive
	}
	assetType.LastUpdatedAt = time.Now().UTC()
	assetType.LastUpdatedBy = requestingUserID

	if err := s.assetTypeRepo.UpdateAssetType(ctx, *assetType); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update asset type",
			slog.String("asset_type_id", assetTypeID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return assetType, nil
}

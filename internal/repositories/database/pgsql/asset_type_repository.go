package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks_app/internal/models"
	"github.com/quillbooks/quillbooks_app/internal/utils/mapping"
)

const assetTypeColumns = `
	asset_type_id, tenant_id, name, suffix, precision, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAssetTypeRepository struct {
	BaseRepository
}

// newPgxAssetTypeRepository creates a new repository for asset-type data.
func newPgxAssetTypeRepository(pool *pgxpool.Pool) portsrepo.AssetTypeRepositoryFacade {
	return &PgxAssetTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AssetTypeRepositoryFacade = (*PgxAssetTypeRepository)(nil)

func scanAssetTypeRow(row pgx.Row) (*models.AssetType, error) {
	var m models.AssetType
	err := row.Scan(
		&m.AssetTypeID, &m.TenantID, &m.Name, &m.Suffix, &m.Precision, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAssetType inserts a new asset type.
func (r *PgxAssetTypeRepository) SaveAssetType(ctx context.Context, assetType domain.AssetType) error {
	m := mapping.ToModelAssetType(assetType)
	query := `
		INSERT INTO asset_types (asset_type_id, tenant_id, name, suffix, precision, is_active,
		                         created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssetTypeID, m.TenantID, m.Name, m.Suffix, m.Precision, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperrors.NewConflictError("asset type " + m.Name + " already exists for tenant " + m.TenantID)
			case "23503":
				return apperrors.NewValidationFailedError("tenant " + m.TenantID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to insert asset type "+m.AssetTypeID, err)
	}
	return nil
}

// UpdateAssetType updates the mutable fields of an asset type.
func (r *PgxAssetTypeRepository) UpdateAssetType(ctx context.Context, assetType domain.AssetType) error {
	m := mapping.ToModelAssetType(assetType)
	query := `
		UPDATE asset_types
		SET name = $3, suffix = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE asset_type_id = $1 AND tenant_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AssetTypeID, m.TenantID, m.Name, m.Suffix, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update asset type "+m.AssetTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAssetTypeByID retrieves a tenant's asset type, or apperrors.ErrNotFound.
func (r *PgxAssetTypeRepository) FindAssetTypeByID(ctx context.Context, tenantID, assetTypeID string) (*domain.AssetType, error) {
	query := `SELECT ` + assetTypeColumns + ` FROM asset_types WHERE asset_type_id = $1 AND tenant_id = $2;`
	m, err := scanAssetTypeRow(r.Pool.QueryRow(ctx, query, assetTypeID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find asset type "+assetTypeID, err)
	}
	assetType := mapping.ToDomainAssetType(*m)
	return &assetType, nil
}

// FindAssetTypesByIDs retrieves several of a tenant's asset types at once, keyed by ID.
func (r *PgxAssetTypeRepository) FindAssetTypesByIDs(ctx context.Context, tenantID string, assetTypeIDs []string) (map[string]domain.AssetType, error) {
	query := `SELECT ` + assetTypeColumns + ` FROM asset_types WHERE tenant_id = $1 AND asset_type_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, assetTypeIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query asset types by IDs for tenant "+tenantID, err)
	}
	defer rows.Close()

	out := make(map[string]domain.AssetType, len(assetTypeIDs))
	for rows.Next() {
		m, err := scanAssetTypeRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset type row", err)
		}
		out[m.AssetTypeID] = mapping.ToDomainAssetType(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset type rows", err)
	}
	return out, nil
}

// ListAssetTypesByTenant retrieves a tenant's asset types ordered by name.
func (r *PgxAssetTypeRepository) ListAssetTypesByTenant(ctx context.Context, tenantID string) ([]domain.AssetType, error) {
	query := `SELECT ` + assetTypeColumns + ` FROM asset_types WHERE tenant_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query asset types for tenant "+tenantID, err)
	}
	defer rows.Close()

	assetTypes := []domain.AssetType{}
	for rows.Next() {
		m, err := scanAssetTypeRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset type row", err)
		}
		assetTypes = append(assetTypes, mapping.ToDomainAssetType(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset type rows for tenant "+tenantID, err)
	}
	return assetTypes, nil
}

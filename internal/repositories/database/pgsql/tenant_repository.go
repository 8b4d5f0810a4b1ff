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

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant inserts a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `
		INSERT INTO tenants (tenant_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID, m.Name, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("tenant " + m.TenantID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert tenant "+m.TenantID, err)
	}
	return nil
}

// UpdateTenant updates name, description and active flag of a tenant.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `
		UPDATE tenants
		SET name = $2, description = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TenantID, m.Name, m.Description, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tenant "+m.TenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTenantByID retrieves a tenant, or apperrors.ErrNotFound.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&m.TenantID, &m.Name, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tenant "+tenantID, err)
	}
	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

// ListTenantsByUser retrieves the active tenants a user is a member of.
func (r *PgxTenantRepository) ListTenantsByUser(ctx context.Context, userID string) ([]domain.Tenant, error) {
	query := `
		SELECT t.tenant_id, t.name, t.description, t.is_active, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM tenants t
		JOIN user_tenants ut ON t.tenant_id = ut.tenant_id
		WHERE ut.user_id = $1 AND ut.role != 'REMOVED' AND t.is_active
		ORDER BY t.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants for user "+userID, err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		var m models.Tenant
		if err := rows.Scan(&m.TenantID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
		}
		tenants = append(tenants, mapping.ToDomainTenant(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows for user "+userID, err)
	}
	return tenants, nil
}

// FindUserTenantRole retrieves a user's role within a tenant, or
// apperrors.ErrNotFound when the user is not a member.
func (r *PgxTenantRepository) FindUserTenantRole(ctx context.Context, userID, tenantID string) (domain.UserTenantRole, error) {
	var role domain.UserTenantRole
	err := r.Pool.QueryRow(ctx, `SELECT role FROM user_tenants WHERE user_id = $1 AND tenant_id = $2;`, userID, tenantID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to find role for user "+userID+" in tenant "+tenantID, err)
	}
	return role, nil
}

// AddUserToTenant inserts a membership row, reactivating a previously removed one.
func (r *PgxTenantRepository) AddUserToTenant(ctx context.Context, membership domain.UserTenant) error {
	query := `
		INSERT INTO user_tenants (user_id, tenant_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, tenant_id) DO UPDATE SET role = EXCLUDED.role, joined_at = EXCLUDED.joined_at;
	`
	_, err := r.Pool.Exec(ctx, query, membership.UserID, membership.TenantID, membership.Role, membership.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("user or tenant does not exist")
		}
		return apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to tenant "+membership.TenantID, err)
	}
	return nil
}

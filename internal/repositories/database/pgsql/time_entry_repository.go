package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks_app/internal/models"
	"github.com/quillbooks/quillbooks_app/internal/utils/mapping"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

const timeEntryColumns = `
	time_entry_id, tenant_id, user_id, work_date, hours, description, billable, invoice_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTimeEntryRepository struct {
	BaseRepository
}

// newPgxTimeEntryRepository creates a new repository for time-tracking data.
func newPgxTimeEntryRepository(pool *pgxpool.Pool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

func scanTimeEntryRow(row pgx.Row) (*models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.TimeEntryID, &m.TenantID, &m.UserID, &m.WorkDate, &m.Hours, &m.Description, &m.Billable, &m.InvoiceID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTimeEntry inserts a new time entry.
func (r *PgxTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		INSERT INTO time_entries (time_entry_id, tenant_id, user_id, work_date, hours, description, billable, invoice_id,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.TimeEntryID, entry.TenantID, entry.UserID, entry.WorkDate, entry.Hours,
		entry.Description, entry.Billable, entry.InvoiceID,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewValidationFailedError("time entry references a missing tenant or user")
		}
		return apperrors.NewAppError(500, "failed to insert time entry "+entry.TimeEntryID, err)
	}
	return nil
}

// UpdateTimeEntry updates the mutable fields of a time entry.
func (r *PgxTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET work_date = $2, hours = $3, description = $4, billable = $5, last_updated_at = $6, last_updated_by = $7
		WHERE time_entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.TimeEntryID, entry.WorkDate, entry.Hours, entry.Description, entry.Billable,
		entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update time entry "+entry.TimeEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTimeEntryByID retrieves a time entry. Returns (nil, nil) when absent.
func (r *PgxTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE time_entry_id = $1;`
	m, err := scanTimeEntryRow(r.Pool.QueryRow(ctx, query, timeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find time entry "+timeEntryID, err)
	}
	entry := mapping.ToDomainTimeEntry(*m)
	return &entry, nil
}

// ListTimeEntries retrieves a page of the tenant's time entries within [start, end].
func (r *PgxTimeEntryRepository) ListTimeEntries(ctx context.Context, tenantID string, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.TimeEntry], error) {
	page = page.Normalize()

	where := `tenant_id = $1 AND work_date BETWEEN $2 AND $3`

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM time_entries WHERE `+where+`;`, tenantID, start, end).Scan(&total); err != nil {
		return pagination.Page[domain.TimeEntry]{}, apperrors.NewAppError(500, "failed to count time entries for tenant "+tenantID, err)
	}

	listQuery := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE ` + where + `
		ORDER BY work_date DESC, created_at DESC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, listQuery, tenantID, start, end, page.Limit(), page.Offset())
	if err != nil {
		return pagination.Page[domain.TimeEntry]{}, apperrors.NewAppError(500, "failed to query time entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntryRow(rows)
		if err != nil {
			return pagination.Page[domain.TimeEntry]{}, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		entries = append(entries, mapping.ToDomainTimeEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[domain.TimeEntry]{}, apperrors.NewAppError(500, "error iterating time entry rows for tenant "+tenantID, err)
	}

	return pagination.NewPage(entries, total, page), nil
}

// ListUnbilledTimeEntries retrieves billable, uninvoiced time entries oldest first.
func (r *PgxTimeEntryRepository) ListUnbilledTimeEntries(ctx context.Context, tenantID string) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE tenant_id = $1 AND billable AND invoice_id IS NULL
		ORDER BY work_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unbilled time entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		m, err := scanTimeEntryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		entries = append(entries, mapping.ToDomainTimeEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unbilled time entry rows for tenant "+tenantID, err)
	}
	return entries, nil
}

// AttachTimeEntriesToInvoice stamps the invoice onto the given uninvoiced time
// entries, failing the whole batch when any entry is missing or already billed.
func (r *PgxTimeEntryRepository) AttachTimeEntriesToInvoice(ctx context.Context, timeEntryIDs []string, invoiceID, updatedBy string) error {
	if len(timeEntryIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE time_entries
		SET invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE time_entry_id = ANY($1) AND invoice_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query, timeEntryIDs, invoiceID, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to attach time entries to invoice "+invoiceID, err)
	}
	if int(tag.RowsAffected()) != len(timeEntryIDs) {
		return apperrors.NewConflictError("expected to bill " + strconv.Itoa(len(timeEntryIDs)) + " time entries, matched " + strconv.FormatInt(tag.RowsAffected(), 10))
	}

	return r.Commit(ctx, tx)
}

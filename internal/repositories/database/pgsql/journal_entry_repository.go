package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"
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

// journalEntryColumns is the canonical column list for journal_entries scans.
const journalEntryColumns = `
	journal_entry_id, tenant_id, entry_id, entry_date, post_date, status, note,
	created_at, created_by, last_updated_at, last_updated_by,
	posted_at, posted_by, canceled_at, canceled_by`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal-entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanJournalEntryRow(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.TenantID,
		&m.EntryID,
		&m.EntryDate,
		&m.PostDate,
		&m.Status,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.PostedAt,
		&m.PostedBy,
		&m.CanceledAt,
		&m.CanceledBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateJournalEntry inserts an entry header and its lines atomically. The
// tenant row is locked for the duration of the transaction so concurrent
// creates for the same tenant serialize and entry numbers never collide.
func (r *PgxJournalEntryRepository) CreateJournalEntry(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var lockedTenantID string
	err = tx.QueryRow(ctx, `SELECT tenant_id FROM tenants WHERE tenant_id = $1 FOR UPDATE;`, entry.TenantID).Scan(&lockedTenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationFailedError("tenant " + entry.TenantID + " does not exist")
		}
		return nil, apperrors.NewAppError(500, "failed to lock tenant "+entry.TenantID, err)
	}

	if entry.EntryID == 0 {
		err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(entry_id), 0) + 1 FROM journal_entries WHERE tenant_id = $1;`, entry.TenantID).Scan(&entry.EntryID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to compute next entry number for tenant "+entry.TenantID, err)
		}
	}

	modelEntry := mapping.ToModelJournalEntry(*entry)
	headerQuery := `
		INSERT INTO journal_entries (
			journal_entry_id, tenant_id, entry_id, entry_date, post_date, status, note,
			created_at, created_by, last_updated_at, last_updated_by,
			posted_at, posted_by, canceled_at, canceled_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelEntry.JournalEntryID,
		modelEntry.TenantID,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.PostDate,
		modelEntry.Status,
		modelEntry.Note,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
		modelEntry.PostedAt,
		modelEntry.PostedBy,
		modelEntry.CanceledAt,
		modelEntry.CanceledBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.NewConflictError("entry number " + strconv.FormatInt(entry.EntryID, 10) + " already used for tenant " + entry.TenantID)
			case "23503":
				return nil, apperrors.NewValidationFailedError("journal entry references a missing record")
			}
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.JournalEntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_accounts (
			line_id, journal_entry_id, account_id, asset_type_id, entry_type, amount, memo,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelJournalEntryAccount(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.JournalEntryID,
			modelLine.AccountID,
			modelLine.AssetTypeID,
			modelLine.EntryType,
			modelLine.Amount,
			modelLine.Memo,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, apperrors.NewValidationFailedError("entry line references a missing account or asset type")
		}
		return nil, apperrors.NewAppError(500, "failed to insert lines for journal entry "+modelEntry.JournalEntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindDetailedByID(ctx, entry.JournalEntryID)
}

func (r *PgxJournalEntryRepository) findHeader(ctx context.Context, q rowQuerier, where string, args ...any) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE ` + where + `;`
	m, err := scanJournalEntryRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absent result, not an error.
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry", err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindByID retrieves an entry header with its tenant populated. Returns
// (nil, nil) when no entry matches.
func (r *PgxJournalEntryRepository) FindByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := r.findHeader(ctx, r.Pool, `journal_entry_id = $1`, journalEntryID)
	if err != nil || entry == nil {
		return entry, err
	}
	if err := r.attachTenant(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindByTenantAndEntryID retrieves an entry header by its tenant-scoped
// sequential number. Returns (nil, nil) when no entry matches.
func (r *PgxJournalEntryRepository) FindByTenantAndEntryID(ctx context.Context, tenantID string, entryID int64) (*domain.JournalEntry, error) {
	entry, err := r.findHeader(ctx, r.Pool, `tenant_id = $1 AND entry_id = $2`, tenantID, entryID)
	if err != nil || entry == nil {
		return entry, err
	}
	if err := r.attachTenant(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindDetailedByID retrieves an entry with its full relation graph.
// Returns (nil, nil) when no entry matches.
func (r *PgxJournalEntryRepository) FindDetailedByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := r.findHeader(ctx, r.Pool, `journal_entry_id = $1`, journalEntryID)
	if err != nil || entry == nil {
		return entry, err
	}
	if err := r.loadRelations(ctx, []*domain.JournalEntry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindDetailedByTenantAndEntryID is FindDetailedByID keyed by tenant and entry number.
func (r *PgxJournalEntryRepository) FindDetailedByTenantAndEntryID(ctx context.Context, tenantID string, entryID int64) (*domain.JournalEntry, error) {
	entry, err := r.findHeader(ctx, r.Pool, `tenant_id = $1 AND entry_id = $2`, tenantID, entryID)
	if err != nil || entry == nil {
		return entry, err
	}
	if err := r.loadRelations(ctx, []*domain.JournalEntry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *PgxJournalEntryRepository) attachTenant(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		SELECT tenant_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	err := r.Pool.QueryRow(ctx, query, entry.TenantID).Scan(
		&m.TenantID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load tenant for journal entry "+entry.JournalEntryID, err)
	}
	tenant := mapping.ToDomainTenant(m)
	entry.Tenant = &tenant
	return nil
}

// loadRelations populates tenants, audit users and lines (with account and
// asset type) for the given entries with one query per relation.
func (r *PgxJournalEntryRepository) loadRelations(ctx context.Context, entries []*domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	entryIDs := make([]string, 0, len(entries))
	tenantIDSet := make(map[string]struct{})
	userIDSet := make(map[string]struct{})
	for _, e := range entries {
		entryIDs = append(entryIDs, e.JournalEntryID)
		tenantIDSet[e.TenantID] = struct{}{}
		userIDSet[e.CreatedBy] = struct{}{}
		userIDSet[e.LastUpdatedBy] = struct{}{}
		if e.PostedBy != nil {
			userIDSet[*e.PostedBy] = struct{}{}
		}
		if e.CanceledBy != nil {
			userIDSet[*e.CanceledBy] = struct{}{}
		}
	}

	tenants, err := r.fetchTenants(ctx, keys(tenantIDSet))
	if err != nil {
		return err
	}
	users, err := r.fetchUsers(ctx, keys(userIDSet))
	if err != nil {
		return err
	}
	lines, err := r.fetchLines(ctx, entryIDs)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if t, ok := tenants[e.TenantID]; ok {
			tenant := t
			e.Tenant = &tenant
		}
		e.CreatedByUser = userRef(users, e.CreatedBy)
		e.UpdatedByUser = userRef(users, e.LastUpdatedBy)
		if e.PostedBy != nil {
			e.PostedByUser = userRef(users, *e.PostedBy)
		}
		if e.CanceledBy != nil {
			e.CanceledByUser = userRef(users, *e.CanceledBy)
		}
		e.Lines = lines[e.JournalEntryID]
	}
	return nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func userRef(users map[string]domain.User, id string) *domain.User {
	if u, ok := users[id]; ok {
		return &u
	}
	return nil
}

func (r *PgxJournalEntryRepository) fetchTenants(ctx context.Context, tenantIDs []string) (map[string]domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, tenantIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants for journal entries", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Tenant, len(tenantIDs))
	for rows.Next() {
		var m models.Tenant
		if err := rows.Scan(&m.TenantID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
		}
		out[m.TenantID] = mapping.ToDomainTenant(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows", err)
	}
	return out, nil
}

func (r *PgxJournalEntryRepository) fetchUsers(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	query := `
		SELECT user_id, name, email, auth_provider, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for journal entries", err)
	}
	defer rows.Close()

	out := make(map[string]domain.User, len(userIDs))
	for rows.Next() {
		var m models.User
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.AuthProvider, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		out[m.UserID] = mapping.ToDomainUser(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return out, nil
}

func (r *PgxJournalEntryRepository) fetchLines(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryAccount, error) {
	query := `
		SELECT l.line_id, l.journal_entry_id, l.account_id, l.asset_type_id, l.entry_type, l.amount, l.memo,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       a.account_id, a.tenant_id, a.name, a.account_number, a.account_type, a.description, a.is_active,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
		       at.asset_type_id, at.tenant_id, at.name, at.suffix, at.precision, at.is_active,
		       at.created_at, at.created_by, at.last_updated_at, at.last_updated_by
		FROM journal_entry_accounts l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN asset_types at ON l.asset_type_id = at.asset_type_id
		WHERE l.journal_entry_id = ANY($1)
		ORDER BY l.created_at, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entries", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.JournalEntryAccount, len(entryIDs))
	for rows.Next() {
		var m models.JournalEntryAccount
		var acc models.Account
		var at models.AssetType
		err := rows.Scan(
			&m.LineID, &m.JournalEntryID, &m.AccountID, &m.AssetTypeID, &m.EntryType, &m.Amount, &m.Memo,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&acc.AccountID, &acc.TenantID, &acc.Name, &acc.AccountNumber, &acc.AccountType, &acc.Description, &acc.IsActive,
			&acc.CreatedAt, &acc.CreatedBy, &acc.LastUpdatedAt, &acc.LastUpdatedBy,
			&at.AssetTypeID, &at.TenantID, &at.Name, &at.Suffix, &at.Precision, &at.IsActive,
			&at.CreatedAt, &at.CreatedBy, &at.LastUpdatedAt, &at.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		line := mapping.ToDomainJournalEntryAccount(m)
		account := mapping.ToDomainAccount(acc)
		assetType := mapping.ToDomainAssetType(at)
		line.Account = &account
		line.AssetType = &assetType
		out[m.JournalEntryID] = append(out[m.JournalEntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return out, nil
}

// ListJournalEntries retrieves a page of the tenant's entries whose effective
// date falls within [start, end], excluding canceled ones.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, tenantID string, start, end time.Time, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	page = page.Normalize()

	where := `tenant_id = $1 AND status != 'CANCELED' AND COALESCE(post_date, entry_date) BETWEEN $2 AND $3`

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, tenantID, start, end).Scan(&total); err != nil {
		return pagination.Page[domain.JournalEntry]{}, apperrors.NewAppError(500, "failed to count journal entries for tenant "+tenantID, err)
	}

	listQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE ` + where + `
		ORDER BY COALESCE(post_date, entry_date) DESC, entry_id ASC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, listQuery, tenantID, start, end, page.Limit(), page.Offset())
	if err != nil {
		return pagination.Page[domain.JournalEntry]{}, apperrors.NewAppError(500, "failed to query journal entries for tenant "+tenantID, err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return pagination.Page[domain.JournalEntry]{}, err
	}

	if err := r.loadRelations(ctx, entryPtrs(entries)); err != nil {
		return pagination.Page[domain.JournalEntry]{}, err
	}
	return pagination.NewPage(entries, total, page), nil
}

// ListPendingJournalEntries retrieves a page of the tenant's PENDING entries.
func (r *PgxJournalEntryRepository) ListPendingJournalEntries(ctx context.Context, tenantID string, page pagination.PageRequest) (pagination.Page[domain.JournalEntry], error) {
	page = page.Normalize()

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE tenant_id = $1 AND status = 'PENDING';`, tenantID).Scan(&total); err != nil {
		return pagination.Page[domain.JournalEntry]{}, apperrors.NewAppError(500, "failed to count pending journal entries for tenant "+tenantID, err)
	}

	listQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND status = 'PENDING'
		ORDER BY entry_date DESC, entry_id ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, listQuery, tenantID, page.Limit(), page.Offset())
	if err != nil {
		return pagination.Page[domain.JournalEntry]{}, apperrors.NewAppError(500, "failed to query pending journal entries for tenant "+tenantID, err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return pagination.Page[domain.JournalEntry]{}, err
	}

	if err := r.loadRelations(ctx, entryPtrs(entries)); err != nil {
		return pagination.Page[domain.JournalEntry]{}, err
	}
	return pagination.NewPage(entries, total, page), nil
}

func collectEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	defer rows.Close()
	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

func entryPtrs(entries []domain.JournalEntry) []*domain.JournalEntry {
	ptrs := make([]*domain.JournalEntry, len(entries))
	for i := range entries {
		ptrs[i] = &entries[i]
	}
	return ptrs
}

// NextEntryID computes one plus the current maximum entry number for the
// tenant. Advisory outside the creation transaction.
func (r *PgxJournalEntryRepository) NextEntryID(ctx context.Context, tenantID string) (int64, error) {
	var next int64
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(entry_id), 0) + 1 FROM journal_entries WHERE tenant_id = $1;`, tenantID).Scan(&next)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to compute next entry number for tenant "+tenantID, err)
	}
	return next, nil
}

// ListLedgerRows retrieves a cursor-paginated ledger for one account: posted
// entry lines newest first, each carrying a running balance computed in the
// account's natural sign (debit-positive for assets and expenses).
func (r *PgxJournalEntryRepository) ListLedgerRows(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.journal_entry_id, j.entry_id, COALESCE(j.post_date, j.entry_date) AS effective_date, j.note,
		       l.entry_type, l.amount, l.created_at,
		       SUM(CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		                THEN CASE WHEN l.entry_type = 'DEBIT' THEN l.amount ELSE -l.amount END
		                ELSE CASE WHEN l.entry_type = 'CREDIT' THEN l.amount ELSE -l.amount END
		           END) OVER (ORDER BY COALESCE(j.post_date, j.entry_date) ASC, l.created_at ASC) AS running_balance
		FROM journal_entry_accounts l
		JOIN journal_entries j ON l.journal_entry_id = j.journal_entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE l.account_id = $1 AND j.tenant_id = $2 AND j.status = 'POSTED'
	`
	orderByClause := `ORDER BY effective_date DESC, l.created_at DESC`

	args := []any{accountID, tenantID}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		lastEffectiveDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause = `AND (COALESCE(j.post_date, j.entry_date), l.created_at) < ($3, $4)`
		args = append(args, lastEffectiveDate, lastCreatedAt)
	}

	query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	type ledgerScan struct {
		row       domain.LedgerRow
		createdAt time.Time
	}
	scanned := make([]ledgerScan, 0, fetchLimit)
	for rows.Next() {
		var s ledgerScan
		err := rows.Scan(
			&s.row.JournalEntryID,
			&s.row.EntryID,
			&s.row.EntryDate,
			&s.row.Note,
			&s.row.EntryType,
			&s.row.Amount,
			&s.createdAt,
			&s.row.RunningBalance,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, err)
		}
		scanned = append(scanned, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.row.EntryDate, last.createdAt)
		nextTokenVal = &token
		scanned = scanned[:limit]
	}

	results := make([]domain.LedgerRow, len(scanned))
	for i, s := range scanned {
		results[i] = s.row
	}
	return results, nextTokenVal, nil
}

// PostJournalEntry transitions a pending entry to POSTED. The supplied note
// replaces the stored one only when non-blank and different. Returns
// (nil, nil) when no entry matches.
func (r *PgxJournalEntryRepository) PostJournalEntry(ctx context.Context, journalEntryID string, postDate time.Time, postedByUserID string, note *string) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockHeader(ctx, tx, journalEntryID)
	if err != nil || current == nil {
		return nil, err
	}
	if current.Status != models.Pending {
		return nil, apperrors.NewConflictError("journal entry " + journalEntryID + " is " + string(current.Status) + ", only pending entries can be posted")
	}

	newNote := current.Note
	if note != nil {
		if trimmed := strings.TrimSpace(*note); trimmed != "" && *note != current.Note {
			newNote = *note
		}
	}

	now := time.Now()
	updateQuery := `
		UPDATE journal_entries
		SET status = 'POSTED', post_date = $2, note = $3, posted_at = $4, posted_by = $5,
		    last_updated_at = $4, last_updated_by = $5
		WHERE journal_entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, journalEntryID, postDate, newNote, now, postedByUserID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to post journal entry "+journalEntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindDetailedByID(ctx, journalEntryID)
}

// CancelJournalEntry transitions a pending entry to CANCELED. Returns
// (nil, nil) when no entry matches.
func (r *PgxJournalEntryRepository) CancelJournalEntry(ctx context.Context, journalEntryID string, canceledByUserID string) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockHeader(ctx, tx, journalEntryID)
	if err != nil || current == nil {
		return nil, err
	}
	if current.Status != models.Pending {
		return nil, apperrors.NewConflictError("journal entry " + journalEntryID + " is " + string(current.Status) + ", only pending entries can be canceled")
	}

	now := time.Now()
	updateQuery := `
		UPDATE journal_entries
		SET status = 'CANCELED', canceled_at = $2, canceled_by = $3,
		    last_updated_at = $2, last_updated_by = $3
		WHERE journal_entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, journalEntryID, now, canceledByUserID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel journal entry "+journalEntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindDetailedByID(ctx, journalEntryID)
}

func (r *PgxJournalEntryRepository) lockHeader(ctx context.Context, tx pgx.Tx, journalEntryID string) (*models.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1 FOR UPDATE;`
	m, err := scanJournalEntryRow(tx.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to lock journal entry "+journalEntryID, err)
	}
	return m, nil
}

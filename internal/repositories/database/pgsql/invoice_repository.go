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

const invoiceColumns = `
	invoice_id, tenant_id, invoice_number, customer_name, customer_address,
	invoice_date, due_date, status, total,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoiceRow(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.TenantID, &m.InvoiceNumber, &m.CustomerName, &m.CustomerAddress,
		&m.InvoiceDate, &m.DueDate, &m.Status, &m.Total,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateInvoice inserts an invoice and its lines atomically. The tenant row is
// locked so concurrent creates serialize and invoice numbers never collide.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var lockedTenantID string
	err = tx.QueryRow(ctx, `SELECT tenant_id FROM tenants WHERE tenant_id = $1 FOR UPDATE;`, invoice.TenantID).Scan(&lockedTenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationFailedError("tenant " + invoice.TenantID + " does not exist")
		}
		return nil, apperrors.NewAppError(500, "failed to lock tenant "+invoice.TenantID, err)
	}

	if invoice.InvoiceNumber == 0 {
		err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(invoice_number), 0) + 1 FROM invoices WHERE tenant_id = $1;`, invoice.TenantID).Scan(&invoice.InvoiceNumber)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to compute next invoice number for tenant "+invoice.TenantID, err)
		}
	}

	headerQuery := `
		INSERT INTO invoices (invoice_id, tenant_id, invoice_number, customer_name, customer_address,
		                      invoice_date, due_date, status, total,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		invoice.InvoiceID, invoice.TenantID, invoice.InvoiceNumber, invoice.CustomerName, invoice.CustomerAddress,
		invoice.InvoiceDate, invoice.DueDate, invoice.Status, invoice.Total,
		invoice.CreatedAt, invoice.CreatedBy, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflictError("invoice number " + strconv.FormatInt(invoice.InvoiceNumber, 10) + " already used for tenant " + invoice.TenantID)
		}
		return nil, apperrors.NewAppError(500, "failed to insert invoice "+invoice.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, description, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range invoice.Lines {
		batch.Queue(lineQuery, line.LineID, line.InvoiceID, line.Description, line.Quantity, line.UnitPrice, line.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert lines for invoice "+invoice.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindInvoiceByID(ctx, invoice.InvoiceID)
}

// FindInvoiceByID retrieves an invoice with its lines. Returns (nil, nil) when absent.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoiceRow(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}
	return r.withLines(ctx, m)
}

// FindInvoiceByTenantAndNumber retrieves an invoice by its tenant-scoped
// sequential number. Returns (nil, nil) when absent.
func (r *PgxInvoiceRepository) FindInvoiceByTenantAndNumber(ctx context.Context, tenantID string, invoiceNumber int64) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1 AND invoice_number = $2;`
	m, err := scanInvoiceRow(r.Pool.QueryRow(ctx, query, tenantID, invoiceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by number for tenant "+tenantID, err)
	}
	return r.withLines(ctx, m)
}

func (r *PgxInvoiceRepository) withLines(ctx context.Context, m *models.Invoice) (*domain.Invoice, error) {
	lineQuery := `
		SELECT line_id, invoice_id, description, quantity, unit_price, amount
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, m.InvoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for invoice "+m.InvoiceID, err)
	}
	defer rows.Close()

	invoice := mapping.ToDomainInvoice(*m)
	for rows.Next() {
		var lm models.InvoiceLine
		if err := rows.Scan(&lm.LineID, &lm.InvoiceID, &lm.Description, &lm.Quantity, &lm.UnitPrice, &lm.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line row", err)
		}
		invoice.Lines = append(invoice.Lines, mapping.ToDomainInvoiceLine(lm))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice line rows", err)
	}
	return &invoice, nil
}

// ListInvoices retrieves a page of the tenant's invoices newest first, each
// with its payment total and outstanding balance.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, tenantID string, status *domain.InvoiceStatus, page pagination.PageRequest) (pagination.Page[domain.InvoiceWithBalance], error) {
	page = page.Normalize()

	where := `i.tenant_id = $1`
	args := []any{tenantID}
	if status != nil {
		where += ` AND i.status = $2`
		args = append(args, *status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM invoices i WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return pagination.Page[domain.InvoiceWithBalance]{}, apperrors.NewAppError(500, "failed to count invoices for tenant "+tenantID, err)
	}

	listQuery := `
		SELECT i.invoice_id, i.tenant_id, i.invoice_number, i.customer_name, i.customer_address,
		       i.invoice_date, i.due_date, i.status, i.total,
		       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by,
		       COALESCE(SUM(p.amount), 0) AS amount_paid
		FROM invoices i
		LEFT JOIN payments p ON i.invoice_id = p.invoice_id
		WHERE ` + where + `
		GROUP BY i.invoice_id
		ORDER BY i.invoice_number DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;
	`
	args = append(args, page.Limit(), page.Offset())
	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return pagination.Page[domain.InvoiceWithBalance]{}, apperrors.NewAppError(500, "failed to query invoices for tenant "+tenantID, err)
	}
	defer rows.Close()

	invoices := []domain.InvoiceWithBalance{}
	for rows.Next() {
		var m models.Invoice
		var withBalance domain.InvoiceWithBalance
		err := rows.Scan(
			&m.InvoiceID, &m.TenantID, &m.InvoiceNumber, &m.CustomerName, &m.CustomerAddress,
			&m.InvoiceDate, &m.DueDate, &m.Status, &m.Total,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&withBalance.AmountPaid,
		)
		if err != nil {
			return pagination.Page[domain.InvoiceWithBalance]{}, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		withBalance.Invoice = mapping.ToDomainInvoice(m)
		withBalance.Balance = withBalance.Total.Sub(withBalance.AmountPaid)
		invoices = append(invoices, withBalance)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[domain.InvoiceWithBalance]{}, apperrors.NewAppError(500, "error iterating invoice rows for tenant "+tenantID, err)
	}

	return pagination.NewPage(invoices, total, page), nil
}

// NextInvoiceNumber computes one plus the current maximum invoice number for
// the tenant. Advisory outside the creation transaction.
func (r *PgxInvoiceRepository) NextInvoiceNumber(ctx context.Context, tenantID string) (int64, error) {
	var next int64
	err := r.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(invoice_number), 0) + 1 FROM invoices WHERE tenant_id = $1;`, tenantID).Scan(&next)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to compute next invoice number for tenant "+tenantID, err)
	}
	return next, nil
}

// UpdateInvoiceStatus transitions an invoice's status, stamping update audit.
// Returns (nil, nil) when no invoice matches.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string) (*domain.Invoice, error) {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, status, time.Now(), updatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update status of invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindInvoiceByID(ctx, invoiceID)
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks_app/internal/apperrors"
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks_app/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks_app/internal/core/ports/services"
	"github.com/quillbooks/quillbooks_app/internal/dto"
	"github.com/quillbooks/quillbooks_app/internal/middleware"
	"github.com/quillbooks/quillbooks_app/internal/utils/accounting"
	"github.com/quillbooks/quillbooks_app/internal/utils/pagination"
)

var (
	// ErrJournalUnbalanced is returned when an entry's debits and credits do not match.
	ErrJournalUnbalanced = errors.New("journal entry debits and credits do not balance")
	// ErrInvalidDateRange is returned when a list query's start date is after its end date.
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)

// journalEntryService implements journal-entry business logic on top of the
// repository, enforcing balance, tenancy and lifecycle rules.
type journalEntryService struct {
	journalRepo   portsrepo.JournalEntryRepositoryWithTx
	accountRepo   portsrepo.AccountReader
	assetTypeRepo portsrepo.AssetTypeReader
	tenantSvc     portssvc.TenantAuthorizerSvc
}

// NewJournalEntryService creates a new journal entry service.
func NewJournalEntryService(
	journalRepo portsrepo.JournalEntryRepositoryWithTx,
	accountRepo portsrepo.AccountReader,
	assetTypeRepo portsrepo.AssetTypeReader,
	tenantSvc portssvc.TenantAuthorizerSvc,
) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		assetTypeRepo: assetTypeRepo,
		tenantSvc:     tenantSvc,
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// CreateJournalEntry validates balance and tenancy, then persists the entry
// with its lines, letting the repository assign the next sequential number
// under the tenant lock.
func (s *journalEntryService) CreateJournalEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, creatorUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journalEntryID := uuid.NewString()

	lines := make([]domain.JournalEntryAccount, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalEntryAccount{
			LineID:      uuid.NewString(),
			AccountID:   lineReq.AccountID,
			AssetTypeID: lineReq.AssetTypeID,
			EntryType:   domain.EntryType(lineReq.EntryType),
			Amount:      lineReq.Amount,
			Memo:        lineReq.Memo,
		}
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		logger.Debug("Journal entry failed balance validation",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(400, err.Error(), ErrJournalUnbalanced)
	}

	if err := s.validateLineReferences(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		JournalEntryID: journalEntryID,
		TenantID:       tenantID,
		EntryDate:      req.EntryDate,
		PostDate:       req.PostDate,
		Status:         domain.Pending,
		Note:           req.Note,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	created, err := s.journalRepo.CreateJournalEntry(ctx, entry)
	if err != nil {
		logger.Error("Failed to create journal entry",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("journal_entry_id", created.JournalEntryID),
		slog.String("tenant_id", tenantID),
		slog.Int64("entry_id", created.EntryID))
	return created, nil
}

// validateLineReferences checks that every line's account and asset type
// exists in the tenant and is active.
func (s *journalEntryService) validateLineReferences(ctx context.Context, tenantID string, lines []domain.JournalEntryAccount) error {
	accountIDs := make([]string, 0, len(lines))
	assetTypeIDs := make([]string, 0, len(lines))
	seenAccounts := make(map[string]bool)
	seenAssetTypes := make(map[string]bool)
	for _, line := range lines {
		if !seenAccounts[line.AccountID] {
			seenAccounts[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
		if !seenAssetTypes[line.AssetTypeID] {
			seenAssetTypes[line.AssetTypeID] = true
			assetTypeIDs = append(assetTypeIDs, line.AssetTypeID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return apperrors.NewValidationFailedError("account " + id + " does not exist in this tenant")
		}
		if !account.IsActive {
			return apperrors.NewValidationFailedError("account " + id + " is inactive")
		}
	}

	assetTypes, err := s.assetTypeRepo.FindAssetTypesByIDs(ctx, tenantID, assetTypeIDs)
	if err != nil {
		return err
	}
	for _, id := range assetTypeIDs {
		assetType, ok := assetTypes[id]
		if !ok {
			return apperrors.NewValidationFailedError("asset type " + id + " does not exist in this tenant")
		}
		if !assetType.IsActive {
			return apperrors.NewValidationFailedError("asset type " + id + " is inactive")
		}
	}

	return nil
}

// GetJournalEntryByID retrieves a detailed entry. Entries of other tenants are
// indistinguishable from absent ones.
func (s *journalEntryService) GetJournalEntryByID(ctx context.Context, tenantID, journalEntryID, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindDetailedByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.TenantID != tenantID {
		return nil, nil
	}
	return entry, nil
}

// GetJournalEntryByNumber retrieves a detailed entry by its tenant-scoped
// sequential number.
func (s *journalEntryService) GetJournalEntryByNumber(ctx context.Context, tenantID string, entryID int64, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.journalRepo.FindDetailedByTenantAndEntryID(ctx, tenantID, entryID)
}

// ListJournalEntries retrieves a paginated, date-filtered list of the tenant's
// entries. Canceled entries are excluded and the filter applies to the
// effective date (post date when set, entry date otherwise).
func (s *journalEntryService) ListJournalEntries(ctx context.Context, tenantID, requestingUserID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if params.EndDate.Before(params.StartDate) {
		return nil, apperrors.NewAppError(400, ErrInvalidDateRange.Error(), ErrInvalidDateRange)
	}

	pageReq := pagination.PageRequest{Page: params.Page, Size: params.Size}.Normalize()
	page, err := s.journalRepo.ListJournalEntries(ctx, tenantID, params.StartDate, params.EndDate, pageReq)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journal entries",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToListJournalEntriesResponse(page.Items, page.TotalCount, page.Page, page.Size), nil
}

// ListPendingJournalEntries retrieves the tenant's pending entries.
func (s *journalEntryService) ListPendingJournalEntries(ctx context.Context, tenantID, requestingUserID string, params dto.PaginationParams) (*dto.ListJournalEntriesResponse, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	pageReq := pagination.PageRequest{Page: params.Page, Size: params.Size}.Normalize()
	page, err := s.journalRepo.ListPendingJournalEntries(ctx, tenantID, pageReq)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pending journal entries",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToListJournalEntriesResponse(page.Items, page.TotalCount, page.Page, page.Size), nil
}

// PeekNextEntryNumber reports the number the next created entry would receive.
// Advisory only: a concurrent create may claim it first.
func (s *journalEntryService) PeekNextEntryNumber(ctx context.Context, tenantID, requestingUserID string) (int64, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return 0, err
	}
	return s.journalRepo.NextEntryID(ctx, tenantID)
}

// ListAccountLedger retrieves a cursor-paginated ledger with running balances
// for one of the tenant's accounts.
func (s *journalEntryService) ListAccountLedger(ctx context.Context, tenantID, accountID, requestingUserID string, params dto.LedgerParams) (*dto.LedgerResponse, error) {
	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	// The account must belong to the tenant before its ledger is readable.
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, err
	}

	rows, nextToken, err := s.journalRepo.ListLedgerRows(ctx, tenantID, accountID, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list ledger rows",
			slog.String("tenant_id", tenantID),
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return dto.ToLedgerResponse(rows, nextToken), nil
}

// PostJournalEntry transitions a pending entry to posted. The post date
// defaults to now when the request omits it. Returns nil when the entry does
// not exist in the tenant.
func (s *journalEntryService) PostJournalEntry(ctx context.Context, tenantID, journalEntryID string, req dto.PostJournalEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	existing, err := s.journalRepo.FindByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.TenantID != tenantID {
		return nil, nil
	}

	postDate := time.Now().UTC()
	if req.PostDate != nil {
		postDate = *req.PostDate
	}

	posted, err := s.journalRepo.PostJournalEntry(ctx, journalEntryID, postDate, requestingUserID, req.Note)
	if err != nil {
		logger.Error("Failed to post journal entry",
			slog.String("journal_entry_id", journalEntryID),
			slog.String("error", err.Error()))
		return nil, err
	}
	if posted == nil {
		return nil, nil
	}

	logger.Info("Journal entry posted",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("tenant_id", tenantID))
	return posted, nil
}

// CancelJournalEntry transitions a pending entry to canceled. Returns nil
// when the entry does not exist in the tenant.
func (s *journalEntryService) CancelJournalEntry(ctx context.Context, tenantID, journalEntryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantSvc.AuthorizeUserAction(ctx, requestingUserID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}

	existing, err := s.journalRepo.FindByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.TenantID != tenantID {
		return nil, nil
	}

	canceled, err := s.journalRepo.CancelJournalEntry(ctx, journalEntryID, requestingUserID)
	if err != nil {
		logger.Error("Failed to cancel journal entry",
			slog.String("journal_entry_id", journalEntryID),
			slog.String("error", err.Error()))
		return nil, err
	}
	if canceled == nil {
		return nil, nil
	}

	logger.Info("Journal entry canceled",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("tenant_id", tenantID))
	return canceled, nil
}

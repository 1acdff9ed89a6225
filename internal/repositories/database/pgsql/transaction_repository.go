package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	"github.com/fdcsoft/fdc_core_app/internal/models"
	"github.com/fdcsoft/fdc_core_app/internal/utils/mapping"
	"github.com/fdcsoft/fdc_core_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, client_id, job_id, module_instance_id, date, amount, payee_raw, description_raw, source,
	category_client, module_hint_client, notes_client,
	category_bookkeeper, gst_code_bookkeeper, notes_bookkeeper, status_bookkeeper, flags, module_routing,
	is_duplicate, is_late_receipt, locked_at, locked_by_role, created_at, updated_at`

const transactionColumnsAliased = `t.transaction_id, t.client_id, t.job_id, t.module_instance_id, t.date, t.amount, t.payee_raw, t.description_raw, t.source,
	t.category_client, t.module_hint_client, t.notes_client,
	t.category_bookkeeper, t.gst_code_bookkeeper, t.notes_bookkeeper, t.status_bookkeeper, t.flags, t.module_routing,
	t.is_duplicate, t.is_late_receipt, t.locked_at, t.locked_by_role, t.created_at, t.updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction, history
// and workpaper-lock data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// scanTransaction scans one row in transactionColumns order.
func scanTransaction(row pgx.Row, extraDest ...any) (models.Transaction, error) {
	var t models.Transaction
	dest := []any{
		&t.TransactionID,
		&t.ClientID,
		&t.JobID,
		&t.ModuleInstanceID,
		&t.Date,
		&t.Amount,
		&t.PayeeRaw,
		&t.DescriptionRaw,
		&t.Source,
		&t.CategoryClient,
		&t.ModuleHintClient,
		&t.NotesClient,
		&t.CategoryBookkeeper,
		&t.GSTCodeBookkeeper,
		&t.NotesBookkeeper,
		&t.StatusBookkeeper,
		&t.Flags,
		&t.ModuleRouting,
		&t.IsDuplicate,
		&t.IsLateReceipt,
		&t.LockedAt,
		&t.LockedByRole,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
	dest = append(dest, extraDest...)
	err := row.Scan(dest...)
	return t, err
}

// insertHistoryTx writes one audit entry inside the given transaction.
func insertHistoryTx(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) error {
	m := mapping.ToModelHistoryEntry(entry)
	query := `
		INSERT INTO transaction_history (history_id, transaction_id, user_id, role, action_type, before_snapshot, after_snapshot, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.HistoryID,
		m.TransactionID,
		m.UserID,
		m.Role,
		m.ActionType,
		m.Before,
		m.After,
		m.Comment,
		m.Timestamp,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history entry for transaction "+m.TransactionID, err)
	}
	return nil
}

// CreateTransaction inserts the row and its creation history entry in one
// database transaction.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction, entry domain.HistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID, m.ClientID, m.JobID, m.ModuleInstanceID,
		m.Date, m.Amount, m.PayeeRaw, m.DescriptionRaw, m.Source,
		m.CategoryClient, m.ModuleHintClient, m.NotesClient,
		m.CategoryBookkeeper, m.GSTCodeBookkeeper, m.NotesBookkeeper, m.StatusBookkeeper, m.Flags, m.ModuleRouting,
		m.IsDuplicate, m.IsLateReceipt, m.LockedAt, m.LockedByRole,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	if err := insertHistoryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction including its attachment count.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumnsAliased + `,
		       (SELECT COUNT(*) FROM transaction_attachments a WHERE a.transaction_id = t.transaction_id) AS attachment_count
		FROM transactions t
		WHERE t.transaction_id = $1;
	`
	var attachmentCount int
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID), &attachmentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	m.AttachmentCount = attachmentCount

	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// ListTransactions retrieves a filtered page ordered by date desc, created_at
// desc, transaction_id desc. The id tiebreak keeps the cursor stable when
// timestamps collide.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, int64, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	b := &filterBuilder{}
	applyTransactionFilter(b, filter)

	// Total matches, independent of the cursor position.
	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions t ` + b.whereClause() + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, nil, apperrors.NewAppError(500, "failed to count transactions", err)
	}

	baseQuery := `
		SELECT ` + transactionColumnsAliased + `,
		       (SELECT COUNT(*) FROM transaction_attachments a WHERE a.transaction_id = t.transaction_id) AS attachment_count
		FROM transactions t
	`
	orderByClause := `ORDER BY t.date DESC, t.created_at DESC, t.transaction_id DESC`

	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, 0, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// The token carries (created_at, id); the anchor row supplies the date
		// component of the ordering tuple. Rows are never deleted, so a missing
		// anchor means a forged or stale token.
		var lastDate time.Time
		err := r.Pool.QueryRow(ctx, `SELECT date FROM transactions WHERE transaction_id = $1;`, lastID).Scan(&lastDate)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, 0, nil, apperrors.NewAppError(400, "invalid nextToken", errors.New("unknown cursor anchor"))
			}
			return nil, 0, nil, apperrors.NewAppError(500, "failed to resolve pagination cursor", err)
		}

		cursorClause = fmt.Sprintf("(t.date, t.created_at, t.transaction_id) < (%s, %s, %s)",
			b.bind(lastDate), b.bind(lastCreatedAt), b.bind(lastID))
	}

	where := b.whereClause()
	if cursorClause != "" {
		if where == "" {
			where = "WHERE " + cursorClause
		} else {
			where += " AND " + cursorClause
		}
	}

	query := baseQuery + " " + where + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(b.args)+1) + ";"
	args := append(b.args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		var attachmentCount int
		m, scanErr := scanTransaction(rows, &attachmentCount)
		if scanErr != nil {
			return nil, 0, nil, apperrors.NewAppError(500, "failed to scan transaction row", scanErr)
		}
		m.AttachmentCount = attachmentCount
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		// The token points to the last item included in this page; the next
		// query resumes strictly after it.
		last := modelTxns[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), total, nextTokenVal, nil
}

// UpdateTransaction persists an already-patched row, guarded by the status the
// caller authorized against. The row is re-read under FOR UPDATE; if its
// status moved since authorization the write is abandoned with ErrConflict.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedStatus domain.TransactionStatus, entry domain.HistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var currentStatus string
	err = tx.QueryRow(ctx, `SELECT status_bookkeeper FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, txn.TransactionID).Scan(&currentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock transaction row "+txn.TransactionID, err)
	}
	if currentStatus != string(expectedStatus) {
		return fmt.Errorf("%w: transaction %s status changed from %s to %s during update",
			apperrors.ErrConflict, txn.TransactionID, expectedStatus, currentStatus)
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET date = $2,
		    amount = $3,
		    payee_raw = $4,
		    description_raw = $5,
		    category_client = $6,
		    module_hint_client = $7,
		    notes_client = $8,
		    category_bookkeeper = $9,
		    gst_code_bookkeeper = $10,
		    notes_bookkeeper = $11,
		    status_bookkeeper = $12,
		    flags = $13,
		    module_routing = $14,
		    is_duplicate = $15,
		    is_late_receipt = $16,
		    locked_at = $17,
		    locked_by_role = $18,
		    updated_at = $19
		WHERE transaction_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.Date, m.Amount, m.PayeeRaw, m.DescriptionRaw,
		m.CategoryClient, m.ModuleHintClient, m.NotesClient,
		m.CategoryBookkeeper, m.GSTCodeBookkeeper, m.NotesBookkeeper, m.StatusBookkeeper, m.Flags, m.ModuleRouting,
		m.IsDuplicate, m.IsLateReceipt,
		m.LockedAt, m.LockedByRole, m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}

	if err := insertHistoryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AppendHistory writes one audit entry without touching the transaction row.
func (r *PgxTransactionRepository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	m := mapping.ToModelHistoryEntry(entry)
	query := `
		INSERT INTO transaction_history (history_id, transaction_id, user_id, role, action_type, before_snapshot, after_snapshot, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.HistoryID, m.TransactionID, m.UserID, m.Role, m.ActionType,
		m.Before, m.After, m.Comment, m.Timestamp,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append history for transaction "+m.TransactionID, err)
	}
	return nil
}

// BulkUpdateTransactions applies the patch to every matching row and writes a
// single aggregate history entry. Matched rows are locked first so the whole
// batch transitions together or not at all.
func (r *PgxTransactionRepository) BulkUpdateTransactions(ctx context.Context, criteria domain.BulkCriteria, patch domain.BulkPatch, actor domain.Actor) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	b := &filterBuilder{}
	applyBulkCriteria(b, criteria)
	if actor.Role != domain.RoleAdmin {
		// Locked rows are silently excluded from the match set for non-admins.
		b.add("status_bookkeeper <> ?", string(domain.StatusLocked))
	}

	selectQuery := `SELECT ` + transactionColumns + ` FROM transactions ` + b.whereClause() + ` ORDER BY transaction_id FOR UPDATE;`
	rows, err := tx.Query(ctx, selectQuery, b.args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to select transactions for bulk update", err)
	}

	matched := []models.Transaction{}
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			rows.Close()
			return 0, apperrors.NewAppError(500, "failed to scan transaction row for bulk update", scanErr)
		}
		matched = append(matched, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.NewAppError(500, "error iterating transactions for bulk update", err)
	}

	if len(matched) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	wide := patch.AsPatch()

	ids := make([]string, len(matched))
	beforeStates := make([]any, len(matched))
	afterStates := make([]any, len(matched))
	for i, m := range matched {
		d := mapping.ToDomainTransaction(m)
		ids[i] = d.TransactionID
		beforeStates[i] = map[string]any(d.Snapshot())

		wide.Apply(&d)
		d.UpdatedAt = now
		afterStates[i] = map[string]any(d.Snapshot())
	}

	// Assemble the SET list from the patched fields only.
	var assignments []string
	var args []any
	addSet := func(col string, v any) {
		args = append(args, v)
		assignments = append(assignments, col+" = $"+strconv.Itoa(len(args)))
	}
	if patch.CategoryBookkeeper != nil {
		addSet("category_bookkeeper", *patch.CategoryBookkeeper)
	}
	if patch.ClearGSTCode {
		addSet("gst_code_bookkeeper", nil)
	} else if patch.GSTCodeBookkeeper != nil {
		addSet("gst_code_bookkeeper", string(*patch.GSTCodeBookkeeper))
	}
	if patch.StatusBookkeeper != nil {
		addSet("status_bookkeeper", string(*patch.StatusBookkeeper))
	}
	if patch.ClearModuleRouting {
		addSet("module_routing", nil)
	} else if patch.ModuleRouting != nil {
		addSet("module_routing", string(*patch.ModuleRouting))
	}
	if patch.Flags != nil {
		addSet("flags", models.Flags{Duplicate: patch.Flags.Duplicate, Late: patch.Flags.Late, HighRisk: patch.Flags.HighRisk})
		addSet("is_duplicate", patch.Flags.Duplicate)
		addSet("is_late_receipt", patch.Flags.Late)
	}
	addSet("updated_at", now)

	args = append(args, ids)
	updateQuery := `UPDATE transactions SET ` + strings.Join(assignments, ", ") + ` WHERE transaction_id = ANY($` + strconv.Itoa(len(args)) + `);`
	if _, err := tx.Exec(ctx, updateQuery, args...); err != nil {
		return 0, apperrors.NewAppError(500, "failed to execute bulk update", err)
	}

	comment := fmt.Sprintf("Bulk update of %d transactions", len(ids))
	entry := domain.HistoryEntry{
		HistoryID:     uuid.NewString(),
		TransactionID: ids[0], // Primary reference for the aggregate entry
		UserID:        actor.UserID,
		Role:          actor.Role,
		ActionType:    domain.ActionBulkRecode,
		Before: domain.FieldSnapshot{
			"count":        len(ids),
			"transactions": beforeStates,
		},
		After: domain.FieldSnapshot{
			"count":        len(ids),
			"transactions": afterStates,
			"updates":      map[string]any(patch.AuditMap()),
		},
		Comment:   &comment,
		Timestamp: now,
	}
	if err := insertHistoryTx(ctx, tx, entry); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// LockTransactions freezes the given rows into a workpaper. Each row not
// already LOCKED gets a snapshot link, the LOCKED status, and a lock history
// entry; the whole batch commits atomically.
func (r *PgxTransactionRepository) LockTransactions(ctx context.Context, transactionIDs []string, workpaperID string, module domain.ModuleRouting, period string, actor domain.Actor) (int, error) {
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	selectQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = ANY($1) ORDER BY transaction_id FOR UPDATE;`
	rows, err := tx.Query(ctx, selectQuery, transactionIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to select transactions for locking", err)
	}

	matched := []models.Transaction{}
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			rows.Close()
			return 0, apperrors.NewAppError(500, "failed to scan transaction row for locking", scanErr)
		}
		matched = append(matched, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, apperrors.NewAppError(500, "error iterating transactions for locking", err)
	}

	now := time.Now().UTC()
	role := string(actor.Role)
	comment := fmt.Sprintf("Locked for workpaper %s, module %s, period %s", workpaperID, module, period)

	updateQuery := `
		UPDATE transactions
		SET status_bookkeeper = $2, locked_at = $3, locked_by_role = $4, updated_at = $5
		WHERE transaction_id = $1;
	`
	linkQuery := `
		INSERT INTO transaction_workpaper_links (link_id, transaction_id, workpaper_id, module, period, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	historyQuery := `
		INSERT INTO transaction_history (history_id, transaction_id, user_id, role, action_type, before_snapshot, after_snapshot, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	batch := &pgx.Batch{}
	lockedCount := 0
	for _, m := range matched {
		if m.StatusBookkeeper == string(domain.StatusLocked) {
			// Already frozen; silently skipped and not double-counted.
			continue
		}

		d := mapping.ToDomainTransaction(m)
		before := map[string]any(d.Snapshot())

		lockedAt := now
		lockedRole := domain.Role(role)
		d.StatusBookkeeper = domain.StatusLocked
		d.LockedAt = &lockedAt
		d.LockedByRole = &lockedRole
		d.UpdatedAt = now
		after := map[string]any(d.Snapshot())

		batch.Queue(updateQuery, d.TransactionID, string(domain.StatusLocked), lockedAt, role, now)
		batch.Queue(linkQuery, uuid.NewString(), d.TransactionID, workpaperID, string(module), period, after, now)
		batch.Queue(historyQuery, uuid.NewString(), d.TransactionID, actor.UserID, role, string(domain.ActionLock), before, after, comment, now)

		lockedCount++
	}

	if lockedCount == 0 {
		return 0, nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to execute lock batch for workpaper "+workpaperID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return lockedCount, nil
}

// UnlockTransaction releases a LOCKED row back to REVIEWED and records the
// mandatory explanation.
func (r *PgxTransactionRepository) UnlockTransaction(ctx context.Context, transactionID string, comment string, actor domain.Actor) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	selectQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	m, err := scanTransaction(tx.QueryRow(ctx, selectQuery, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock transaction row "+transactionID, err)
	}

	if m.StatusBookkeeper != string(domain.StatusLocked) {
		return nil, fmt.Errorf("%w: transaction %s is not locked (status %s)",
			apperrors.ErrLockingRule, transactionID, m.StatusBookkeeper)
	}

	d := mapping.ToDomainTransaction(m)
	before := d.Snapshot()

	now := time.Now().UTC()
	d.StatusBookkeeper = domain.StatusReviewed
	d.LockedAt = nil
	d.LockedByRole = nil
	d.UpdatedAt = now
	after := d.Snapshot()

	updateQuery := `
		UPDATE transactions
		SET status_bookkeeper = $2, locked_at = NULL, locked_by_role = NULL, updated_at = $3
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, transactionID, string(domain.StatusReviewed), now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to unlock transaction "+transactionID, err)
	}

	entry := domain.HistoryEntry{
		HistoryID:     uuid.NewString(),
		TransactionID: transactionID,
		UserID:        actor.UserID,
		Role:          actor.Role,
		ActionType:    domain.ActionUnlock,
		Before:        before,
		After:         after,
		Comment:       &comment,
		Timestamp:     now,
	}
	if err := insertHistoryTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &d, nil
}

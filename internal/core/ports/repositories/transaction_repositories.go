package repositories

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier,
	// including its attachment count.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated list of transactions using
	// token-based pagination. It returns the page, the total match count, a token
	// for the next page (nil on the last page), and an error.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, int64, *string, error)
}

// TransactionWriter defines write operations for transaction data. Every write
// persists the row mutation and its history entry in the same database
// transaction so the audit trail can never lag the row.
type TransactionWriter interface {
	// CreateTransaction persists a new transaction together with its creation
	// history entry.
	CreateTransaction(ctx context.Context, txn domain.Transaction, entry domain.HistoryEntry) error

	// UpdateTransaction persists an already-patched transaction guarded by the
	// status observed when the patch was authorized. If the stored status has
	// moved in the meantime it returns apperrors.ErrConflict and writes nothing.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedStatus domain.TransactionStatus, entry domain.HistoryEntry) error

	// AppendHistory records an audit entry without touching the transaction
	// row. Used for rejected sync attempts, which must stay discoverable.
	AppendHistory(ctx context.Context, entry domain.HistoryEntry) error

	// BulkUpdateTransactions applies the patch to every transaction matching
	// the criteria and records a single aggregate history entry spanning all
	// touched rows. LOCKED rows are silently excluded from the match unless the
	// actor is an admin. All of it commits or none of it does. It returns the
	// number of transactions updated.
	BulkUpdateTransactions(ctx context.Context, criteria domain.BulkCriteria, patch domain.BulkPatch, actor domain.Actor) (int, error)
}

// TransactionLocker defines the workpaper lock and unlock operations.
type TransactionLocker interface {
	// LockTransactions moves the given transactions to LOCKED for a workpaper,
	// creating a workpaper link with a point-in-time snapshot per transaction
	// plus a lock history entry. Rows already LOCKED are skipped. The whole
	// batch commits atomically; it returns the number of transactions locked.
	LockTransactions(ctx context.Context, transactionIDs []string, workpaperID string, module domain.ModuleRouting, period string, actor domain.Actor) (int, error)

	// UnlockTransaction releases a LOCKED transaction back to REVIEWED, clearing
	// the lock marker and recording an unlock history entry with the supplied
	// comment. Returns apperrors.ErrLockingRule if the transaction is not LOCKED.
	UnlockTransaction(ctx context.Context, transactionID string, comment string, actor domain.Actor) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionLocker
}

// TransactionRepositoryWithTx extends the facade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}

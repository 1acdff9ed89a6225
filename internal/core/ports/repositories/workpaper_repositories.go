package repositories

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// WorkpaperLinkReader defines read operations for workpaper link data.
// Links are created by TransactionLocker.LockTransactions and never mutated.
type WorkpaperLinkReader interface {
	// FindLinksByWorkpaperID retrieves every link belonging to a workpaper.
	FindLinksByWorkpaperID(ctx context.Context, workpaperID string) ([]domain.WorkpaperLink, error)

	// FindLinksByTransactionID retrieves every workpaper link a transaction has
	// ever been captured in, newest first.
	FindLinksByTransactionID(ctx context.Context, transactionID string) ([]domain.WorkpaperLink, error)
}

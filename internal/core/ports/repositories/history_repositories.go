package repositories

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// HistoryReader defines read operations for the transaction audit trail.
// History is append-only; the writes happen inside the transaction repository
// as part of each mutation.
type HistoryReader interface {
	// FindHistoryByTransactionID retrieves the full history of a transaction,
	// newest first.
	FindHistoryByTransactionID(ctx context.Context, transactionID string) ([]domain.HistoryEntry, error)
}

package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	"github.com/fdcsoft/fdc_core_app/internal/models"
	"github.com/fdcsoft/fdc_core_app/internal/utils/mapping"
)

type PgxHistoryRepository struct {
	BaseRepository
}

// newPgxHistoryRepository creates a new read-side repository for the audit trail.
func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryReader {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.HistoryReader = (*PgxHistoryRepository)(nil)

// FindHistoryByTransactionID retrieves the audit trail of a transaction,
// newest first.
func (r *PgxHistoryRepository) FindHistoryByTransactionID(ctx context.Context, transactionID string) ([]domain.HistoryEntry, error) {
	query := `
		SELECT history_id, transaction_id, user_id, role, action_type, before_snapshot, after_snapshot, comment, created_at
		FROM transaction_history
		WHERE transaction_id = $1
		ORDER BY created_at DESC, history_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for transaction "+transactionID, err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var m models.HistoryEntry
		if err := rows.Scan(
			&m.HistoryID,
			&m.TransactionID,
			&m.UserID,
			&m.Role,
			&m.ActionType,
			&m.Before,
			&m.After,
			&m.Comment,
			&m.Timestamp,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for transaction "+transactionID, err)
		}
		entries = append(entries, mapping.ToDomainHistoryEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for transaction "+transactionID, err)
	}

	return entries, nil
}

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

type PgxWorkpaperLinkRepository struct {
	BaseRepository
}

// newPgxWorkpaperLinkRepository creates a new read-side repository for
// workpaper links. Link creation happens inside the transaction repository's
// lock operation.
func newPgxWorkpaperLinkRepository(pool *pgxpool.Pool) portsrepo.WorkpaperLinkReader {
	return &PgxWorkpaperLinkRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkpaperLinkReader = (*PgxWorkpaperLinkRepository)(nil)

const workpaperLinkColumns = `link_id, transaction_id, workpaper_id, module, period, snapshot, created_at`

func (r *PgxWorkpaperLinkRepository) queryLinks(ctx context.Context, query string, arg string) ([]domain.WorkpaperLink, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workpaper links", err)
	}
	defer rows.Close()

	links := []domain.WorkpaperLink{}
	for rows.Next() {
		var m models.WorkpaperLink
		if err := rows.Scan(
			&m.LinkID,
			&m.TransactionID,
			&m.WorkpaperID,
			&m.Module,
			&m.Period,
			&m.Snapshot,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workpaper link row", err)
		}
		links = append(links, mapping.ToDomainWorkpaperLink(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating workpaper link rows", err)
	}

	return links, nil
}

// FindLinksByWorkpaperID retrieves every link belonging to a workpaper.
func (r *PgxWorkpaperLinkRepository) FindLinksByWorkpaperID(ctx context.Context, workpaperID string) ([]domain.WorkpaperLink, error) {
	query := `
		SELECT ` + workpaperLinkColumns + `
		FROM transaction_workpaper_links
		WHERE workpaper_id = $1
		ORDER BY created_at, link_id;
	`
	return r.queryLinks(ctx, query, workpaperID)
}

// FindLinksByTransactionID retrieves every workpaper link a transaction has
// been captured in, newest first.
func (r *PgxWorkpaperLinkRepository) FindLinksByTransactionID(ctx context.Context, transactionID string) ([]domain.WorkpaperLink, error) {
	query := `
		SELECT ` + workpaperLinkColumns + `
		FROM transaction_workpaper_links
		WHERE transaction_id = $1
		ORDER BY created_at DESC, link_id DESC;
	`
	return r.queryLinks(ctx, query, transactionID)
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	historyRepo := newPgxHistoryRepository(dbPool)
	workpaperRepo := newPgxWorkpaperLinkRepository(dbPool)
	attachmentRepo := newPgxAttachmentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		HistoryRepo:     historyRepo,
		WorkpaperRepo:   workpaperRepo,
		AttachmentRepo:  attachmentRepo,
	}
}

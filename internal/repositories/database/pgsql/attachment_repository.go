package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	"github.com/fdcsoft/fdc_core_app/internal/models"
	"github.com/fdcsoft/fdc_core_app/internal/utils/mapping"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

// newPgxAttachmentRepository creates a new repository for attachment data.
func newPgxAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

const attachmentColumns = `attachment_id, transaction_id, storage_ref, uploaded_by_role, uploaded_at, checksum, filename, mime_type, file_size`

func scanAttachment(row pgx.Row) (models.Attachment, error) {
	var m models.Attachment
	err := row.Scan(
		&m.AttachmentID,
		&m.TransactionID,
		&m.StorageRef,
		&m.UploadedByRole,
		&m.UploadedAt,
		&m.Checksum,
		&m.Filename,
		&m.MimeType,
		&m.FileSize,
	)
	return m, err
}

// FindAttachmentByID retrieves a specific attachment.
func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM transaction_attachments WHERE attachment_id = $1;`
	m, err := scanAttachment(r.Pool.QueryRow(ctx, query, attachmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find attachment by ID "+attachmentID, err)
	}

	d := mapping.ToDomainAttachment(m)
	return &d, nil
}

// FindAttachmentsByTransactionID retrieves all attachments of a transaction.
func (r *PgxAttachmentRepository) FindAttachmentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM transaction_attachments
		WHERE transaction_id = $1
		ORDER BY uploaded_at, attachment_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for transaction "+transactionID, err)
	}
	defer rows.Close()

	attachments := []domain.Attachment{}
	for rows.Next() {
		m, scanErr := scanAttachment(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row for transaction "+transactionID, scanErr)
		}
		attachments = append(attachments, mapping.ToDomainAttachment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows for transaction "+transactionID, err)
	}

	return attachments, nil
}

// AddAttachment persists the attachment and its history entry in one database
// transaction.
func (r *PgxAttachmentRepository) AddAttachment(ctx context.Context, attachment domain.Attachment, entry domain.HistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAttachment(attachment)
	query := `
		INSERT INTO transaction_attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		m.AttachmentID, m.TransactionID, m.StorageRef, m.UploadedByRole, m.UploadedAt,
		m.Checksum, m.Filename, m.MimeType, m.FileSize,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert attachment "+m.AttachmentID, err)
	}

	if err := insertHistoryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RemoveAttachment deletes the attachment and records its history entry in one
// database transaction.
func (r *PgxAttachmentRepository) RemoveAttachment(ctx context.Context, attachmentID string, entry domain.HistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transaction_attachments WHERE attachment_id = $1;`, attachmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete attachment "+attachmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("attachment " + attachmentID + " not found for removal")
	}

	if err := insertHistoryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

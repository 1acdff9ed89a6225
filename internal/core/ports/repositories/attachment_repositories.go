package repositories

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// AttachmentReader defines read operations for attachment data
type AttachmentReader interface {
	// FindAttachmentByID retrieves a specific attachment by its identifier.
	FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error)

	// FindAttachmentsByTransactionID retrieves all attachments of a transaction.
	FindAttachmentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Attachment, error)
}

// AttachmentWriter defines write operations for attachment data. Both writes
// record a history entry against the owning transaction in the same database
// transaction.
type AttachmentWriter interface {
	// AddAttachment persists a new attachment and its history entry.
	AddAttachment(ctx context.Context, attachment domain.Attachment, entry domain.HistoryEntry) error

	// RemoveAttachment deletes an attachment and records its history entry.
	RemoveAttachment(ctx context.Context, attachmentID string, entry domain.HistoryEntry) error
}

// AttachmentRepositoryFacade combines all attachment repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}

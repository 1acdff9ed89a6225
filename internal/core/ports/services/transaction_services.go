package services

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransaction retrieves a specific transaction by its ID.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated list of transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetTransactionHistory retrieves the audit trail of a transaction, newest first.
	GetTransactionHistory(ctx context.Context, transactionID string) ([]domain.HistoryEntry, error)
}

// TransactionWriterSvc defines write operations for transaction data.
// Every write runs through the permission gate before it is persisted.
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction with its creation history entry.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.Actor) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update to a transaction after the
	// permission gate has authorized the actor for every touched field.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.Actor) (*domain.Transaction, error)

	// BulkUpdateTransactions applies the same patch to every matching
	// transaction atomically. LOCKED rows are excluded for non-admin actors.
	// Returns the updated count.
	BulkUpdateTransactions(ctx context.Context, req dto.BulkUpdateRequest, actor domain.Actor) (int, error)
}

// AttachmentSvc defines attachment operations for transaction data
type AttachmentSvc interface {
	// AddAttachment registers an attachment against a transaction.
	AddAttachment(ctx context.Context, transactionID string, req dto.AddAttachmentRequest, actor domain.Actor) (*domain.Attachment, error)

	// RemoveAttachment deletes an attachment and records it in the audit trail.
	RemoveAttachment(ctx context.Context, attachmentID string, actor domain.Actor) error

	// ListAttachments retrieves all attachments of a transaction.
	ListAttachments(ctx context.Context, transactionID string) ([]domain.Attachment, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	AttachmentSvc
}

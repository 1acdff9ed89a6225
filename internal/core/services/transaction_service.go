package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
	"github.com/fdcsoft/fdc_core_app/internal/platform/metrics"
)

// transactionService provides the core transaction lifecycle operations.
type transactionService struct {
	txnRepo        portsrepo.TransactionRepositoryFacade
	historyRepo    portsrepo.HistoryReader
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	gate           *PermissionGate
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, historyRepo portsrepo.HistoryReader, attachmentRepo portsrepo.AttachmentRepositoryFacade, gate *PermissionGate) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:        txnRepo,
		historyRepo:    historyRepo,
		attachmentRepo: attachmentRepo,
		gate:           gate,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// newHistoryEntry builds an audit entry stamped with the acting identity.
func newHistoryEntry(transactionID string, actor domain.Actor, action domain.HistoryActionType, before, after domain.FieldSnapshot, comment *string) domain.HistoryEntry {
	return domain.HistoryEntry{
		HistoryID:     uuid.NewString(),
		TransactionID: transactionID,
		UserID:        actor.UserID,
		Role:          actor.Role,
		ActionType:    action,
		Before:        before,
		After:         after,
		Comment:       comment,
		Timestamp:     time.Now().UTC(),
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source := domain.SourceManual
	if req.Source != "" {
		source = domain.TransactionSource(req.Source)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		ClientID:         req.ClientID,
		JobID:            req.JobID,
		ModuleInstanceID: req.ModuleInstanceID,
		Date:             req.Date,
		Amount:           req.Amount,
		PayeeRaw:         req.PayeeRaw,
		DescriptionRaw:   req.DescriptionRaw,
		Source:           source,
		CategoryClient:   req.CategoryClient,
		ModuleHintClient: req.ModuleHintClient,
		NotesClient:      req.NotesClient,
		StatusBookkeeper: domain.StatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	action := domain.ActionManual
	var comment *string
	if source != domain.SourceManual {
		action = domain.ActionImport
		c := fmt.Sprintf("Imported from %s", source)
		comment = &c
	}
	entry := newHistoryEntry(txn.TransactionID, actor, action, nil, txn.Snapshot(), comment)

	if err := s.txnRepo.CreateTransaction(ctx, txn, entry); err != nil {
		logger.Error("Failed to create transaction", "error", err)
		return nil, err
	}

	logger.Info("Transaction created", "transaction_id", txn.TransactionID, "source", string(source))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter, err := params.ToFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date filter: %s", apperrors.ErrValidation, err.Error())
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	txns, total, nextToken, err := s.txnRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", "error", err)
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Items:     dto.ToTransactionResponses(txns),
		Total:     total,
		NextToken: nextToken,
		HasMore:   nextToken != nil,
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: update contains no fields", apperrors.ErrValidation)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.gate.CheckEdit(txn, actor.Role, patch); err != nil {
		logger.Warn("Edit denied", "transaction_id", transactionID, "role", string(actor.Role), "error", err)
		return nil, err
	}

	before := txn.Snapshot()
	expectedStatus := txn.StatusBookkeeper

	updated := *txn
	patch.Apply(&updated)
	updated.UpdatedAt = time.Now().UTC()

	entry := newHistoryEntry(transactionID, actor, domain.ActionManual, before, updated.Snapshot(), req.Comment)

	if err := s.txnRepo.UpdateTransaction(ctx, updated, expectedStatus, entry); err != nil {
		logger.Error("Failed to update transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	logger.Info("Transaction updated", "transaction_id", transactionID, "fields", patch.Fields())
	return &updated, nil
}

func (s *transactionService) BulkUpdateTransactions(ctx context.Context, req dto.BulkUpdateRequest, actor domain.Actor) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	criteria, err := req.Criteria.ToCriteria()
	if err != nil {
		return 0, fmt.Errorf("%w: invalid date criterion: %s", apperrors.ErrValidation, err.Error())
	}
	if criteria.IsEmpty() {
		return 0, fmt.Errorf("%w: bulk update requires at least one criterion", apperrors.ErrEmptyCriteria)
	}

	patch := req.Updates.ToPatch()
	if patch.IsEmpty() {
		return 0, fmt.Errorf("%w: bulk update contains no fields", apperrors.ErrValidation)
	}

	if err := s.gate.CheckBulkEdit(actor.Role, patch.AsPatch()); err != nil {
		logger.Warn("Bulk edit denied", "role", string(actor.Role), "error", err)
		return 0, err
	}

	count, err := s.txnRepo.BulkUpdateTransactions(ctx, criteria, patch, actor)
	if err != nil {
		logger.Error("Failed bulk update", "error", err)
		return 0, err
	}

	metrics.ObserveBulkUpdate(count)
	logger.Info("Bulk update applied", "updated_count", count)
	return count, nil
}

func (s *transactionService) GetTransactionHistory(ctx context.Context, transactionID string) ([]domain.HistoryEntry, error) {
	// Existence check so a missing transaction reads as not-found, not as an
	// empty history.
	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.historyRepo.FindHistoryByTransactionID(ctx, transactionID)
}

func (s *transactionService) AddAttachment(ctx context.Context, transactionID string, req dto.AddAttachmentRequest, actor domain.Actor) (*domain.Attachment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}

	attachment := domain.Attachment{
		AttachmentID:   uuid.NewString(),
		TransactionID:  transactionID,
		StorageRef:     req.StorageRef,
		UploadedByRole: actor.Role,
		UploadedAt:     time.Now().UTC(),
		Checksum:       req.Checksum,
		Filename:       req.Filename,
		MimeType:       req.MimeType,
		FileSize:       req.FileSize,
	}

	after := domain.FieldSnapshot{
		"attachment_id": attachment.AttachmentID,
		"storage_ref":   attachment.StorageRef,
	}
	if attachment.Filename != nil {
		after["filename"] = *attachment.Filename
	}
	entry := newHistoryEntry(transactionID, actor, domain.ActionAttachmentAdd, nil, after, nil)

	if err := s.attachmentRepo.AddAttachment(ctx, attachment, entry); err != nil {
		logger.Error("Failed to add attachment", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	logger.Info("Attachment added", "transaction_id", transactionID, "attachment_id", attachment.AttachmentID)
	return &attachment, nil
}

func (s *transactionService) RemoveAttachment(ctx context.Context, attachmentID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	before := domain.FieldSnapshot{
		"attachment_id": attachment.AttachmentID,
		"storage_ref":   attachment.StorageRef,
	}
	if attachment.Filename != nil {
		before["filename"] = *attachment.Filename
	}
	entry := newHistoryEntry(attachment.TransactionID, actor, domain.ActionAttachmentRemove, before, nil, nil)

	if err := s.attachmentRepo.RemoveAttachment(ctx, attachmentID, entry); err != nil {
		logger.Error("Failed to remove attachment", "attachment_id", attachmentID, "error", err)
		return err
	}

	logger.Info("Attachment removed", "attachment_id", attachmentID, "transaction_id", attachment.TransactionID)
	return nil
}

func (s *transactionService) ListAttachments(ctx context.Context, transactionID string) ([]domain.Attachment, error) {
	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.FindAttachmentsByTransactionID(ctx, transactionID)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// importService ingests transactions from bank feeds and OCR receipt scans.
type importService struct {
	txnRepo        portsrepo.TransactionRepositoryFacade
	attachmentRepo portsrepo.AttachmentRepositoryFacade
}

// NewImportService creates a new ImportService.
func NewImportService(txnRepo portsrepo.TransactionRepositoryFacade, attachmentRepo portsrepo.AttachmentRepositoryFacade) portssvc.ImportSvc {
	return &importService{
		txnRepo:        txnRepo,
		attachmentRepo: attachmentRepo,
	}
}

var _ portssvc.ImportSvc = (*importService)(nil)

func importComment(source domain.TransactionSource) *string {
	c := fmt.Sprintf("Imported from %s", source)
	return &c
}

func (s *importService) ImportBankTransactions(ctx context.Context, req dto.BankImportRequest, actor domain.Actor) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	created := make([]domain.Transaction, 0, len(req.Transactions))
	for _, row := range req.Transactions {
		now := time.Now().UTC()
		txn := domain.Transaction{
			TransactionID:    uuid.NewString(),
			ClientID:         req.ClientID,
			JobID:            req.JobID,
			Date:             row.Date,
			Amount:           row.Amount,
			PayeeRaw:         row.PayeeRaw,
			DescriptionRaw:   row.DescriptionRaw,
			Source:           domain.SourceBank,
			StatusBookkeeper: domain.StatusNew,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		entry := newHistoryEntry(txn.TransactionID, actor, domain.ActionImport, nil, txn.Snapshot(), importComment(domain.SourceBank))
		if err := s.txnRepo.CreateTransaction(ctx, txn, entry); err != nil {
			logger.Error("Bank import failed", "client_id", req.ClientID, "imported_so_far", len(created), "error", err)
			return created, err
		}
		created = append(created, txn)
	}

	logger.Info("Bank feed imported", "client_id", req.ClientID, "imported_count", len(created))
	return created, nil
}

func (s *importService) ImportOCRTransaction(ctx context.Context, req dto.OCRImportRequest, actor domain.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		ClientID:         req.ClientID,
		JobID:            req.JobID,
		Date:             req.Date,
		Amount:           req.Amount,
		PayeeRaw:         req.PayeeRaw,
		DescriptionRaw:   req.DescriptionRaw,
		Source:           domain.SourceOCR,
		StatusBookkeeper: domain.StatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	entry := newHistoryEntry(txn.TransactionID, actor, domain.ActionImport, nil, txn.Snapshot(), importComment(domain.SourceOCR))
	if err := s.txnRepo.CreateTransaction(ctx, txn, entry); err != nil {
		logger.Error("OCR import failed", "client_id", req.ClientID, "error", err)
		return nil, err
	}

	// Attach the source receipt image when one was captured.
	if req.StorageRef != nil && *req.StorageRef != "" {
		attachment := domain.Attachment{
			AttachmentID:   uuid.NewString(),
			TransactionID:  txn.TransactionID,
			StorageRef:     *req.StorageRef,
			UploadedByRole: actor.Role,
			UploadedAt:     time.Now().UTC(),
		}
		attEntry := newHistoryEntry(txn.TransactionID, actor, domain.ActionAttachmentAdd, nil, domain.FieldSnapshot{
			"attachment_id": attachment.AttachmentID,
			"storage_ref":   attachment.StorageRef,
		}, nil)
		if err := s.attachmentRepo.AddAttachment(ctx, attachment, attEntry); err != nil {
			logger.Error("Failed to attach OCR receipt", "transaction_id", txn.TransactionID, "error", err)
			return nil, err
		}
		txn.AttachmentCount = 1
	}

	logger.Info("OCR transaction imported", "transaction_id", txn.TransactionID, "client_id", req.ClientID)
	return &txn, nil
}

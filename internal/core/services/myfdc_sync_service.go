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
	"github.com/fdcsoft/fdc_core_app/internal/platform/metrics"
)

// myFDCSyncService is the inbound adapter for the MyFDC client app. Pushed
// edits only ever reach client-provenance fields, and stop being applied once
// a bookkeeper has reached REVIEWED.
type myFDCSyncService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewMyFDCSyncService creates a new MyFDCSyncService.
func NewMyFDCSyncService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.MyFDCSyncSvc {
	return &myFDCSyncService{txnRepo: txnRepo}
}

var _ portssvc.MyFDCSyncSvc = (*myFDCSyncService)(nil)

func syncActor(userID *string) domain.Actor {
	return domain.Actor{UserID: userID, Role: domain.RoleClient}
}

func (s *myFDCSyncService) SyncCreate(ctx context.Context, req dto.MyFDCCreateRequest, userID *string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

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
		Source:           domain.SourceMyFDC,
		CategoryClient:   req.CategoryClient,
		ModuleHintClient: req.ModuleHintClient,
		NotesClient:      req.NotesClient,
		StatusBookkeeper: domain.StatusNew,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	entry := newHistoryEntry(txn.TransactionID, syncActor(userID), domain.ActionMyFDCCreate, nil, txn.Snapshot(), nil)

	if err := s.txnRepo.CreateTransaction(ctx, txn, entry); err != nil {
		metrics.ObserveSyncPush("create", "error")
		logger.Error("Failed MyFDC sync create", "client_id", req.ClientID, "error", err)
		return nil, err
	}

	metrics.ObserveSyncPush("create", "applied")
	logger.Info("MyFDC transaction created", "transaction_id", txn.TransactionID, "client_id", req.ClientID)
	return &txn, nil
}

func (s *myFDCSyncService) SyncUpdate(ctx context.Context, transactionID string, req dto.MyFDCUpdateRequest, userID *string) (*domain.Transaction, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		metrics.ObserveSyncPush("update", "error")
		return nil, false, err
	}

	actor := syncActor(userID)

	if txn.StatusBookkeeper.AtLeast(domain.StatusReviewed) {
		// The row is already under bookkeeper control. Reject without mutating
		// anything, but keep the attempt discoverable in the audit trail.
		comment := fmt.Sprintf("Client update rejected - transaction status is %s", txn.StatusBookkeeper)
		entry := newHistoryEntry(transactionID, actor, domain.ActionMyFDCUpdate, nil, nil, &comment)
		if err := s.txnRepo.AppendHistory(ctx, entry); err != nil {
			metrics.ObserveSyncPush("update", "error")
			logger.Error("Failed to record rejected sync update", "transaction_id", transactionID, "error", err)
			return nil, false, err
		}

		metrics.ObserveSyncPush("update", "rejected")
		logger.Info("MyFDC update rejected", "transaction_id", transactionID, "status", string(txn.StatusBookkeeper))
		return txn, false, nil
	}

	before := txn.Snapshot()
	expectedStatus := txn.StatusBookkeeper

	updated := *txn
	if req.CategoryClient != nil {
		updated.CategoryClient = req.CategoryClient
	}
	if req.ModuleHintClient != nil {
		updated.ModuleHintClient = req.ModuleHintClient
	}
	if req.NotesClient != nil {
		updated.NotesClient = req.NotesClient
	}
	updated.UpdatedAt = time.Now().UTC()

	entry := newHistoryEntry(transactionID, actor, domain.ActionMyFDCUpdate, before, updated.Snapshot(), nil)

	if err := s.txnRepo.UpdateTransaction(ctx, updated, expectedStatus, entry); err != nil {
		metrics.ObserveSyncPush("update", "error")
		logger.Error("Failed MyFDC sync update", "transaction_id", transactionID, "error", err)
		return nil, false, err
	}

	metrics.ObserveSyncPush("update", "applied")
	logger.Info("MyFDC update applied", "transaction_id", transactionID)
	return &updated, true, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portsrepo "github.com/fdcsoft/fdc_core_app/internal/core/ports/repositories"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
	"github.com/fdcsoft/fdc_core_app/internal/platform/metrics"
)

// workpaperLockService freezes transactions into workpapers and releases them.
type workpaperLockService struct {
	txnRepo       portsrepo.TransactionRepositoryFacade
	workpaperRepo portsrepo.WorkpaperLinkReader
	gate          *PermissionGate
}

// NewWorkpaperLockService creates a new WorkpaperLockService.
func NewWorkpaperLockService(txnRepo portsrepo.TransactionRepositoryFacade, workpaperRepo portsrepo.WorkpaperLinkReader, gate *PermissionGate) portssvc.WorkpaperLockSvc {
	return &workpaperLockService{
		txnRepo:       txnRepo,
		workpaperRepo: workpaperRepo,
		gate:          gate,
	}
}

var _ portssvc.WorkpaperLockSvc = (*workpaperLockService)(nil)

func (s *workpaperLockService) LockForWorkpaper(ctx context.Context, req dto.WorkpaperLockRequest, actor domain.Actor) (*dto.WorkpaperLockResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.CheckLock(actor.Role); err != nil {
		logger.Warn("Lock denied", "workpaper_id", req.WorkpaperID, "role", string(actor.Role), "error", err)
		metrics.ObserveLock(err)
		return nil, err
	}

	if !req.ValidPeriod() {
		return nil, fmt.Errorf("%w: period %q must look like 2024-25, Q1-2025 or FY2025", apperrors.ErrValidation, req.Period)
	}

	// Dedupe the input so a repeated ID cannot inflate either count.
	seen := make(map[string]struct{}, len(req.TransactionIDs))
	ids := make([]string, 0, len(req.TransactionIDs))
	for _, id := range req.TransactionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	lockedCount, err := s.txnRepo.LockTransactions(ctx, ids, req.WorkpaperID, domain.ModuleRouting(req.Module), req.Period, actor)
	metrics.ObserveLock(err)
	if err != nil {
		logger.Error("Failed to lock transactions", "workpaper_id", req.WorkpaperID, "error", err)
		return nil, err
	}

	logger.Info("Transactions locked for workpaper",
		"workpaper_id", req.WorkpaperID,
		"module", req.Module,
		"period", req.Period,
		"locked_count", lockedCount,
		"skipped_count", len(ids)-lockedCount,
	)
	return &dto.WorkpaperLockResponse{
		LockedCount:  lockedCount,
		SkippedCount: len(ids) - lockedCount,
	}, nil
}

func (s *workpaperLockService) UnlockTransaction(ctx context.Context, transactionID string, req dto.UnlockRequest, actor domain.Actor) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.CheckUnlock(actor.Role, req.Comment); err != nil {
		logger.Warn("Unlock denied", "transaction_id", transactionID, "role", string(actor.Role), "error", err)
		metrics.ObserveUnlock(err)
		return nil, err
	}

	txn, err := s.txnRepo.UnlockTransaction(ctx, transactionID, req.Comment, actor)
	metrics.ObserveUnlock(err)
	if err != nil {
		logger.Error("Failed to unlock transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	logger.Info("Transaction unlocked", "transaction_id", transactionID)
	return txn, nil
}

func (s *workpaperLockService) ListWorkpaperLinks(ctx context.Context, workpaperID string) ([]domain.WorkpaperLink, error) {
	return s.workpaperRepo.FindLinksByWorkpaperID(ctx, workpaperID)
}

func (s *workpaperLockService) ListTransactionLinks(ctx context.Context, transactionID string) ([]domain.WorkpaperLink, error) {
	return s.workpaperRepo.FindLinksByTransactionID(ctx, transactionID)
}

package services

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
)

// WorkpaperLockSvc defines the workpaper freeze and release operations.
type WorkpaperLockSvc interface {
	// LockForWorkpaper freezes the requested transactions into a workpaper,
	// snapshotting each one. Already-locked transactions are skipped.
	LockForWorkpaper(ctx context.Context, req dto.WorkpaperLockRequest, actor domain.Actor) (*dto.WorkpaperLockResponse, error)

	// UnlockTransaction releases a locked transaction back to REVIEWED. Admin
	// only, and the comment must carry at least 10 meaningful characters.
	UnlockTransaction(ctx context.Context, transactionID string, req dto.UnlockRequest, actor domain.Actor) (*domain.Transaction, error)

	// ListWorkpaperLinks retrieves every snapshot link held by a workpaper.
	ListWorkpaperLinks(ctx context.Context, workpaperID string) ([]domain.WorkpaperLink, error)

	// ListTransactionLinks retrieves every workpaper link a transaction has
	// been captured in, newest first.
	ListTransactionLinks(ctx context.Context, transactionID string) ([]domain.WorkpaperLink, error)
}

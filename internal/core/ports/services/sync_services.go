package services

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
)

// MyFDCSyncSvc defines the inbound sync operations for the MyFDC client app.
// Pushed updates only ever touch client-provenance fields and are rejected
// (with an audit entry) once the transaction has progressed past PENDING.
type MyFDCSyncSvc interface {
	// SyncCreate ingests a new transaction pushed from MyFDC.
	SyncCreate(ctx context.Context, req dto.MyFDCCreateRequest, userID *string) (*domain.Transaction, error)

	// SyncUpdate applies a client edit if the transaction is still NEW or
	// PENDING. The bool reports whether the update was applied; a rejection
	// still records a history entry.
	SyncUpdate(ctx context.Context, transactionID string, req dto.MyFDCUpdateRequest, userID *string) (*domain.Transaction, bool, error)
}

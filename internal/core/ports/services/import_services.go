package services

import (
	"context"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
)

// ImportSvc defines the batch and OCR ingestion operations.
type ImportSvc interface {
	// ImportBankTransactions creates one transaction per bank feed row.
	ImportBankTransactions(ctx context.Context, req dto.BankImportRequest, actor domain.Actor) ([]domain.Transaction, error)

	// ImportOCRTransaction creates a transaction from a scanned receipt,
	// attaching the source image when a storage reference is provided.
	ImportOCRTransaction(ctx context.Context, req dto.OCRImportRequest, actor domain.Actor) (*domain.Transaction, error)
}

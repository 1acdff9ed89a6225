package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/core/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
)

type ImportServiceTestSuite struct {
	suite.Suite
	mockTxnRepo        *MockTransactionRepository
	mockAttachmentRepo *MockAttachmentRepository
	service            portssvc.ImportSvc
	staff              domain.Actor
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAttachmentRepo = new(MockAttachmentRepository)
	suite.service = services.NewImportService(suite.mockTxnRepo, suite.mockAttachmentRepo)

	suite.staff = domain.Actor{UserID: strPtr(uuid.NewString()), Role: domain.RoleStaff}
}

func (suite *ImportServiceTestSuite) TestImportBankTransactions() {
	ctx := context.Background()
	req := dto.BankImportRequest{
		ClientID: "client-1",
		Transactions: []dto.BankTransactionRow{
			{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(-12.50), PayeeRaw: strPtr("Coles")},
			{Date: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(-44.00), PayeeRaw: strPtr("BP")},
		},
	}

	suite.mockTxnRepo.On("CreateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Source == domain.SourceBank && txn.ClientID == "client-1" && txn.StatusBookkeeper == domain.StatusNew
		}),
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.ActionType == domain.ActionImport && entry.Comment != nil && *entry.Comment == "Imported from BANK"
		}),
	).Return(nil).Twice()

	created, err := suite.service.ImportBankTransactions(ctx, req, suite.staff)

	suite.Require().NoError(err)
	suite.Len(created, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportBankTransactions_PartialFailure() {
	ctx := context.Background()
	req := dto.BankImportRequest{
		ClientID: "client-1",
		Transactions: []dto.BankTransactionRow{
			{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(-12.50)},
			{Date: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromFloat(-44.00)},
		},
	}

	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.HistoryEntry")).
		Return(nil).Once()
	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.HistoryEntry")).
		Return(apperrors.ErrInternal).Once()

	created, err := suite.service.ImportBankTransactions(ctx, req, suite.staff)

	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.Len(created, 1, "rows imported before the failure are reported back")
}

func (suite *ImportServiceTestSuite) TestImportOCRTransaction_WithReceipt() {
	ctx := context.Background()
	req := dto.OCRImportRequest{
		ClientID:   "client-1",
		Date:       time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(-150.00),
		PayeeRaw:   strPtr("Bunnings"),
		StorageRef: strPtr("s3://receipts/scan-991.jpg"),
	}

	suite.mockTxnRepo.On("CreateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Source == domain.SourceOCR
		}),
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.ActionType == domain.ActionImport && *entry.Comment == "Imported from OCR"
		}),
	).Return(nil).Once()
	suite.mockAttachmentRepo.On("AddAttachment", ctx,
		mock.MatchedBy(func(a domain.Attachment) bool {
			return a.StorageRef == "s3://receipts/scan-991.jpg" && a.UploadedByRole == domain.RoleStaff
		}),
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.ActionType == domain.ActionAttachmentAdd
		}),
	).Return(nil).Once()

	txn, err := suite.service.ImportOCRTransaction(ctx, req, suite.staff)

	suite.Require().NoError(err)
	suite.Equal(domain.SourceOCR, txn.Source)
	suite.Equal(1, txn.AttachmentCount)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportOCRTransaction_NoReceipt() {
	ctx := context.Background()
	req := dto.OCRImportRequest{
		ClientID: "client-1",
		Date:     time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(-150.00),
	}

	suite.mockTxnRepo.On("CreateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("domain.HistoryEntry")).
		Return(nil).Once()

	txn, err := suite.service.ImportOCRTransaction(ctx, req, suite.staff)

	suite.Require().NoError(err)
	suite.Equal(0, txn.AttachmentCount)
	suite.mockAttachmentRepo.AssertNotCalled(suite.T(), "AddAttachment", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}

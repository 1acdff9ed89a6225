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

type MyFDCSyncServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.MyFDCSyncSvc
	clientUser  *string
}

func (suite *MyFDCSyncServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewMyFDCSyncService(suite.mockTxnRepo)
	suite.clientUser = strPtr(uuid.NewString())
}

func (suite *MyFDCSyncServiceTestSuite) pendingTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:    uuid.NewString(),
		ClientID:         "client-1",
		Date:             time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Amount:           decimal.NewFromFloat(-89.90),
		Source:           domain.SourceMyFDC,
		StatusBookkeeper: domain.StatusPending,
		CreatedAt:        time.Now().UTC().Add(-time.Hour),
		UpdatedAt:        time.Now().UTC().Add(-time.Hour),
	}
}

func (suite *MyFDCSyncServiceTestSuite) TestSyncCreate() {
	ctx := context.Background()
	req := dto.MyFDCCreateRequest{
		ClientID: "client-1",
		Date:     time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(-89.90),
		PayeeRaw: strPtr("Officeworks"),
	}

	suite.mockTxnRepo.On("CreateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Source == domain.SourceMyFDC && txn.StatusBookkeeper == domain.StatusNew
		}),
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.ActionType == domain.ActionMyFDCCreate &&
				entry.Role == domain.RoleClient &&
				entry.Before == nil && entry.After != nil
		}),
	).Return(nil).Once()

	txn, err := suite.service.SyncCreate(ctx, req, suite.clientUser)

	suite.Require().NoError(err)
	suite.Equal(domain.SourceMyFDC, txn.Source)
	suite.Equal(domain.StatusNew, txn.StatusBookkeeper)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *MyFDCSyncServiceTestSuite) TestSyncUpdate_AppliedBelowReviewed() {
	ctx := context.Background()
	existing := suite.pendingTransaction()
	req := dto.MyFDCUpdateRequest{
		CategoryClient: strPtr("stationery"),
		NotesClient:    strPtr("bought for the playroom"),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.CategoryClient != nil && *txn.CategoryClient == "stationery" &&
				txn.NotesClient != nil && *txn.NotesClient == "bought for the playroom" &&
				txn.StatusBookkeeper == domain.StatusPending
		}),
		domain.StatusPending,
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.ActionType == domain.ActionMyFDCUpdate && entry.Role == domain.RoleClient &&
				entry.Before != nil && entry.After != nil
		}),
	).Return(nil).Once()

	txn, applied, err := suite.service.SyncUpdate(ctx, existing.TransactionID, req, suite.clientUser)

	suite.Require().NoError(err)
	suite.True(applied)
	suite.Equal("stationery", *txn.CategoryClient)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *MyFDCSyncServiceTestSuite) TestSyncUpdate_RejectedOnceReviewed() {
	ctx := context.Background()
	existing := suite.pendingTransaction()
	existing.StatusBookkeeper = domain.StatusReviewed
	notes := "this should not land"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("AppendHistory", ctx,
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.ActionType == domain.ActionMyFDCUpdate &&
				entry.Before == nil && entry.After == nil &&
				entry.Comment != nil && *entry.Comment == "Client update rejected - transaction status is REVIEWED"
		}),
	).Return(nil).Once()

	txn, applied, err := suite.service.SyncUpdate(ctx, existing.TransactionID, dto.MyFDCUpdateRequest{NotesClient: &notes}, suite.clientUser)

	suite.Require().NoError(err)
	suite.False(applied)
	suite.Nil(txn.NotesClient, "a rejected update must not touch the row")
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *MyFDCSyncServiceTestSuite) TestSyncUpdate_RejectedWhenLocked() {
	ctx := context.Background()
	existing := suite.pendingTransaction()
	existing.StatusBookkeeper = domain.StatusLocked

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("AppendHistory", ctx,
		mock.MatchedBy(func(entry domain.HistoryEntry) bool {
			return entry.Comment != nil && *entry.Comment == "Client update rejected - transaction status is LOCKED"
		}),
	).Return(nil).Once()

	_, applied, err := suite.service.SyncUpdate(ctx, existing.TransactionID, dto.MyFDCUpdateRequest{CategoryClient: strPtr("x")}, suite.clientUser)

	suite.Require().NoError(err)
	suite.False(applied)
}

func (suite *MyFDCSyncServiceTestSuite) TestSyncUpdate_NotFound() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.SyncUpdate(ctx, "missing", dto.MyFDCUpdateRequest{}, suite.clientUser)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestMyFDCSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MyFDCSyncServiceTestSuite))
}

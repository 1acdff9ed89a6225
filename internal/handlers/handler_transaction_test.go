package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/handlers"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) GetTransactionHistory(ctx context.Context, transactionID string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.Actor) (*domain.Transaction, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.Actor) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) BulkUpdateTransactions(ctx context.Context, req dto.BulkUpdateRequest, actor domain.Actor) (int, error) {
	args := m.Called(ctx, req, actor)
	return args.Int(0), args.Error(1)
}
func (m *MockTransactionService) AddAttachment(ctx context.Context, transactionID string, req dto.AddAttachmentRequest, actor domain.Actor) (*domain.Attachment, error) {
	args := m.Called(ctx, transactionID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}
func (m *MockTransactionService) RemoveAttachment(ctx context.Context, attachmentID string, actor domain.Actor) error {
	args := m.Called(ctx, attachmentID, actor)
	return args.Error(0)
}
func (m *MockTransactionService) ListAttachments(ctx context.Context, transactionID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTransactionService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT carrying the given role.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	claims := middleware.AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fdc-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockService)
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url string, body any, role domain.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), role))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_Success() {
	transactionID := uuid.NewString()
	category := "office_supplies"
	updated := &domain.Transaction{
		TransactionID:      transactionID,
		ClientID:           "client-1",
		Date:               time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Amount:             decimal.NewFromFloat(-150.00),
		Source:             domain.SourceManual,
		CategoryBookkeeper: &category,
		StatusBookkeeper:   domain.StatusReviewed,
	}

	suite.mockService.On("UpdateTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		transactionID,
		mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
			return req.CategoryBookkeeper != nil && *req.CategoryBookkeeper == category
		}),
		mock.MatchedBy(func(actor domain.Actor) bool {
			return actor.Role == domain.RoleBookkeeper && actor.UserID != nil
		}),
	).Return(updated, nil).Once()

	url := fmt.Sprintf("/api/v1/transactions/%s", transactionID)
	w := suite.doJSON(http.MethodPatch, url, gin.H{"categoryBookkeeper": category}, domain.RoleBookkeeper)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(transactionID, resp.TransactionID)
	suite.Equal(&category, resp.CategoryBookkeeper)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_LockedReturns423() {
	transactionID := uuid.NewString()

	suite.mockService.On("UpdateTransaction",
		mock.AnythingOfType("*context.valueCtx"), transactionID, mock.Anything, mock.Anything,
	).Return(nil, fmt.Errorf("%w: category_bookkeeper", apperrors.ErrLockedField)).Once()

	url := fmt.Sprintf("/api/v1/transactions/%s", transactionID)
	w := suite.doJSON(http.MethodPatch, url, gin.H{"categoryBookkeeper": "travel"}, domain.RoleBookkeeper)

	suite.Equal(http.StatusLocked, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_ForbiddenReturns403() {
	transactionID := uuid.NewString()

	suite.mockService.On("UpdateTransaction",
		mock.AnythingOfType("*context.valueCtx"), transactionID, mock.Anything, mock.Anything,
	).Return(nil, apperrors.ErrForbidden).Once()

	url := fmt.Sprintf("/api/v1/transactions/%s", transactionID)
	w := suite.doJSON(http.MethodPatch, url, gin.H{"notesBookkeeper": "x"}, domain.RoleTaxAgent)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFoundReturns404() {
	transactionID := uuid.NewString()

	suite.mockService.On("GetTransaction",
		mock.AnythingOfType("*context.valueCtx"), transactionID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/transactions/%s", transactionID)
	w := suite.doJSON(http.MethodGet, url, nil, domain.RoleStaff)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestBulkUpdate_EmptyCriteriaReturns400() {
	suite.mockService.On("BulkUpdateTransactions",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything, mock.Anything,
	).Return(0, apperrors.ErrEmptyCriteria).Once()

	body := gin.H{
		"criteria": gin.H{},
		"updates":  gin.H{"categoryBookkeeper": "travel"},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/bulk", body, domain.RoleBookkeeper)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestBulkUpdate_Success() {
	suite.mockService.On("BulkUpdateTransactions",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.BulkUpdateRequest) bool {
			return req.Criteria.ClientID != nil && *req.Criteria.ClientID == "client-1"
		}),
		mock.Anything,
	).Return(7, nil).Once()

	body := gin.H{
		"criteria": gin.H{"clientID": "client-1"},
		"updates":  gin.H{"categoryBookkeeper": "travel"},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/bulk", body, domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BulkUpdateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(7, resp.UpdatedCount)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidCursorReturns400() {
	suite.mockService.On("ListTransactions",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything,
	).Return(nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions/?nextToken=garbage", nil, domain.RoleStaff)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingTokenReturns401() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

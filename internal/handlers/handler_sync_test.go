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

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/handlers"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// --- Mock MyFDCSyncService ---
type MockMyFDCSyncService struct {
	mock.Mock
}

func (m *MockMyFDCSyncService) SyncCreate(ctx context.Context, req dto.MyFDCCreateRequest, userID *string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockMyFDCSyncService) SyncUpdate(ctx context.Context, transactionID string, req dto.MyFDCUpdateRequest, userID *string) (*domain.Transaction, bool, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Bool(1), args.Error(2)
}

var _ portssvc.MyFDCSyncSvc = (*MockMyFDCSyncService)(nil)

// --- Test Suite ---
type SyncHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockMyFDCSyncService
	jwtSecret   string
}

func (suite *SyncHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
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

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockService = new(MockMyFDCSyncService)

	// Mirror the production wiring: the sync surface sits behind auth plus a
	// client/admin role guard.
	v1 := suite.router.Group("/api/v1",
		middleware.AuthMiddleware(suite.jwtSecret),
		middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin),
	)
	handlers.RegisterSyncRoutes(v1, suite.mockService)
}

func (suite *SyncHandlerTestSuite) doJSON(method, url string, body any, role domain.Role) *httptest.ResponseRecorder {
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

func (suite *SyncHandlerTestSuite) TestSyncCreate_ClientAllowed() {
	created := &domain.Transaction{
		TransactionID:    uuid.NewString(),
		ClientID:         "client-1",
		Date:             time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		Amount:           decimal.NewFromFloat(-42.50),
		Source:           domain.SourceMyFDC,
		StatusBookkeeper: domain.StatusNew,
	}

	suite.mockService.On("SyncCreate",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.MyFDCCreateRequest) bool {
			return req.ClientID == "client-1"
		}),
		mock.AnythingOfType("*string"),
	).Return(created, nil).Once()

	body := gin.H{
		"clientID": "client-1",
		"date":     "2025-07-15T00:00:00Z",
		"amount":   "-42.50",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/sync/myfdc/transactions", body, domain.RoleClient)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.MyFDCSyncResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Applied)
	suite.Equal(created.TransactionID, resp.Transaction.TransactionID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestSyncUpdate_AdminAllowed() {
	transactionID := uuid.NewString()
	rejected := &domain.Transaction{
		TransactionID:    transactionID,
		ClientID:         "client-1",
		Source:           domain.SourceMyFDC,
		StatusBookkeeper: domain.StatusReviewed,
	}

	suite.mockService.On("SyncUpdate",
		mock.AnythingOfType("*context.valueCtx"), transactionID, mock.Anything, mock.AnythingOfType("*string"),
	).Return(rejected, false, nil).Once()

	url := fmt.Sprintf("/api/v1/sync/myfdc/transactions/%s", transactionID)
	w := suite.doJSON(http.MethodPut, url, gin.H{"categoryClient": "fuel"}, domain.RoleAdmin)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MyFDCSyncResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Applied)
}

func (suite *SyncHandlerTestSuite) TestSyncRoutes_NonClientRolesForbidden() {
	for _, role := range []domain.Role{domain.RoleStaff, domain.RoleBookkeeper, domain.RoleTaxAgent, domain.RoleSystem} {
		body := gin.H{
			"clientID": "client-1",
			"date":     "2025-07-15T00:00:00Z",
			"amount":   "-42.50",
		}
		w := suite.doJSON(http.MethodPost, "/api/v1/sync/myfdc/transactions", body, role)
		suite.Equal(http.StatusForbidden, w.Code, "role %s must not push sync creates", role)

		w = suite.doJSON(http.MethodPut, "/api/v1/sync/myfdc/transactions/"+uuid.NewString(), gin.H{"categoryClient": "fuel"}, role)
		suite.Equal(http.StatusForbidden, w.Code, "role %s must not push sync updates", role)
	}
	suite.mockService.AssertNotCalled(suite.T(), "SyncCreate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockService.AssertNotCalled(suite.T(), "SyncUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestSyncHandler(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}

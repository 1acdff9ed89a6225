package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// syncHandler handles pushes from the MyFDC client app.
type syncHandler struct {
	syncService portssvc.MyFDCSyncSvc
}

func newSyncHandler(syncService portssvc.MyFDCSyncSvc) *syncHandler {
	return &syncHandler{
		syncService: syncService,
	}
}

// syncCreate godoc
// @Summary Create a transaction pushed from MyFDC
// @Description Creates a MYFDC-sourced transaction carrying the client's own categorisation
// @Tags sync
// @Accept json
// @Produce json
// @Param transaction body dto.MyFDCCreateRequest true "Pushed transaction"
// @Success 201 {object} dto.MyFDCSyncResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /sync/myfdc/transactions [post]
func (h *syncHandler) syncCreate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MyFDCCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for syncCreate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var userID *string
	if id, ok := middleware.GetUserIDFromCtx(c.Request.Context()); ok {
		userID = &id
	}

	txn, err := h.syncService.SyncCreate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to sync transaction")
		return
	}

	logger.Info("MyFDC transaction synced", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.MyFDCSyncResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Applied:     true,
	})
}

// syncUpdate godoc
// @Summary Apply a MyFDC push to an existing transaction
// @Description Applies client-provenance fields while the transaction is below REVIEWED. Once a bookkeeper has reviewed it, the push is rejected and only recorded in the audit trail; applied=false signals the client to refresh.
// @Tags sync
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param update body dto.MyFDCUpdateRequest true "Pushed update"
// @Success 200 {object} dto.MyFDCSyncResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /sync/myfdc/transactions/{transactionID} [put]
func (h *syncHandler) syncUpdate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.MyFDCUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for syncUpdate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var userID *string
	if id, ok := middleware.GetUserIDFromCtx(c.Request.Context()); ok {
		userID = &id
	}

	txn, applied, err := h.syncService.SyncUpdate(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to sync transaction update")
		return
	}

	logger.Info("MyFDC update processed", slog.String("transaction_id", transactionID), slog.Bool("applied", applied))
	c.JSON(http.StatusOK, dto.MyFDCSyncResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Applied:     applied,
	})
}

// RegisterSyncRoutes registers the MyFDC sync surface. The group is expected
// to carry middleware.RequireRoles(client, admin) alongside auth.
func RegisterSyncRoutes(group *gin.RouterGroup, syncService portssvc.MyFDCSyncSvc) {
	h := newSyncHandler(syncService)

	sync := group.Group("/sync/myfdc")
	{
		sync.POST("/transactions", h.syncCreate)
		sync.PUT("/transactions/:transactionID", h.syncUpdate)
	}
}

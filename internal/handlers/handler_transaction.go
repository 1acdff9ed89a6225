package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Creates a new transaction in NEW status and records its creation in the audit trail
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction to create"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /transactions/ [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Retrieves a transaction by its ID
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a filtered, cursor-paginated list of transactions
// @Tags transactions
// @Produce json
// @Param clientID query string false "Client ID"
// @Param status query string false "Bookkeeper status"
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param search query string false "Free-text search over payee, description and notes"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter or cursor"
// @Router /transactions/ [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update after the permission gate has authorized every touched field
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param update body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Role not permitted to edit these fields"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction changed concurrently"
// @Failure 423 {object} map[string]string "Transaction is locked"
// @Router /transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// bulkUpdateTransactions godoc
// @Summary Bulk update transactions
// @Description Applies the same recode to every transaction matching the criteria, atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Param bulk body dto.BulkUpdateRequest true "Criteria and updates"
// @Success 200 {object} dto.BulkUpdateResponse
// @Failure 400 {object} map[string]string "Empty criteria or invalid updates"
// @Failure 403 {object} map[string]string "Role not permitted"
// @Router /transactions/bulk [post]
func (h *transactionHandler) bulkUpdateTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bulkUpdateTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	count, err := h.transactionService.BulkUpdateTransactions(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to bulk update transactions")
		return
	}

	logger.Info("Bulk update applied", slog.Int("updated_count", count))
	c.JSON(http.StatusOK, dto.BulkUpdateResponse{UpdatedCount: count})
}

// getTransactionHistory godoc
// @Summary Get the audit trail of a transaction
// @Description Retrieves all history entries of a transaction, newest first
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {array} dto.HistoryEntryResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID}/history [get]
func (h *transactionHandler) getTransactionHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	entries, err := h.transactionService.GetTransactionHistory(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryEntryResponses(entries))
}

// addAttachment godoc
// @Summary Attach a file reference to a transaction
// @Tags attachments
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param attachment body dto.AddAttachmentRequest true "Attachment metadata"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID}/attachments [post]
func (h *transactionHandler) addAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addAttachment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	attachment, err := h.transactionService.AddAttachment(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to add attachment")
		return
	}

	logger.Info("Attachment added", slog.String("transaction_id", transactionID), slog.String("attachment_id", attachment.AttachmentID))
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// listAttachments godoc
// @Summary List the attachments of a transaction
// @Tags attachments
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {array} dto.AttachmentResponse
// @Router /transactions/{transactionID}/attachments [get]
func (h *transactionHandler) listAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	attachments, err := h.transactionService.ListAttachments(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentResponses(attachments))
}

// removeAttachment godoc
// @Summary Remove an attachment
// @Tags attachments
// @Produce json
// @Param attachmentID path string true "Attachment ID"
// @Success 204 "Attachment removed"
// @Failure 404 {object} map[string]string "Attachment not found"
// @Router /attachments/{attachmentID} [delete]
func (h *transactionHandler) removeAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	attachmentID := c.Param("attachmentID")

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.transactionService.RemoveAttachment(c.Request.Context(), attachmentID, actor); err != nil {
		respondError(c, logger, err, "Failed to remove attachment")
		return
	}

	logger.Info("Attachment removed", slog.String("attachment_id", attachmentID))
	c.Status(http.StatusNoContent)
}

// RegisterTransactionRoutes registers transaction specific routes
func RegisterTransactionRoutes(group *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := group.Group("/transactions")
	{
		transactions.POST("/", h.createTransaction)
		transactions.GET("/", h.listTransactions)
		transactions.POST("/bulk", h.bulkUpdateTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PATCH("/:transactionID", h.updateTransaction)
		transactions.GET("/:transactionID/history", h.getTransactionHistory)
		transactions.POST("/:transactionID/attachments", h.addAttachment)
		transactions.GET("/:transactionID/attachments", h.listAttachments)
	}

	group.DELETE("/attachments/:attachmentID", h.removeAttachment)
}

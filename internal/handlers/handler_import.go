package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// importHandler handles bank feed and OCR ingestion.
type importHandler struct {
	importService portssvc.ImportSvc
}

func newImportHandler(importService portssvc.ImportSvc) *importHandler {
	return &importHandler{
		importService: importService,
	}
}

// importBankTransactions godoc
// @Summary Import a batch of bank feed transactions
// @Description Creates one BANK-sourced transaction per row, each with an import history entry
// @Tags imports
// @Accept json
// @Produce json
// @Param import body dto.BankImportRequest true "Bank feed rows"
// @Success 201 {object} dto.BankImportResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /imports/bank [post]
func (h *importHandler) importBankTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BankImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importBankTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.importService.ImportBankTransactions(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to import bank transactions")
		return
	}

	logger.Info("Bank feed imported", slog.String("client_id", req.ClientID), slog.Int("imported_count", len(created)))
	c.JSON(http.StatusCreated, dto.BankImportResponse{
		ImportedCount: len(created),
		Transactions:  dto.ToTransactionResponses(created),
	})
}

// importOCRTransaction godoc
// @Summary Import a transaction from a scanned receipt
// @Description Creates an OCR-sourced transaction, attaching the receipt image when a storage reference is provided
// @Tags imports
// @Accept json
// @Produce json
// @Param import body dto.OCRImportRequest true "Extracted receipt data"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /imports/ocr [post]
func (h *importHandler) importOCRTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OCRImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importOCRTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.importService.ImportOCRTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to import OCR transaction")
		return
	}

	logger.Info("OCR transaction imported", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// registerImportRoutes registers bank feed and OCR ingestion routes
func registerImportRoutes(group *gin.RouterGroup, importService portssvc.ImportSvc) {
	h := newImportHandler(importService)

	imports := group.Group("/imports")
	{
		imports.POST("/bank", h.importBankTransactions)
		imports.POST("/ocr", h.importOCRTransaction)
	}
}

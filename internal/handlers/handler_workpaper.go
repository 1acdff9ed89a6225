package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fdcsoft/fdc_core_app/internal/core/ports/services"
	"github.com/fdcsoft/fdc_core_app/internal/dto"
	"github.com/fdcsoft/fdc_core_app/internal/middleware"
)

// workpaperHandler handles workpaper lock and unlock requests.
type workpaperHandler struct {
	workpaperService portssvc.WorkpaperLockSvc
}

func newWorkpaperHandler(workpaperService portssvc.WorkpaperLockSvc) *workpaperHandler {
	return &workpaperHandler{
		workpaperService: workpaperService,
	}
}

// lockForWorkpaper godoc
// @Summary Lock transactions into a workpaper
// @Description Freezes each eligible transaction, snapshots its state into a workpaper link, and skips already locked rows
// @Tags workpapers
// @Accept json
// @Produce json
// @Param lock body dto.WorkpaperLockRequest true "Transactions and workpaper details"
// @Success 200 {object} dto.WorkpaperLockResponse
// @Failure 400 {object} map[string]string "Invalid request or period format"
// @Router /workpapers/lock [post]
func (h *workpaperHandler) lockForWorkpaper(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WorkpaperLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for lockForWorkpaper", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.workpaperService.LockForWorkpaper(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to lock transactions")
		return
	}

	logger.Info("Workpaper lock applied",
		slog.String("workpaper_id", req.WorkpaperID),
		slog.Int("locked_count", resp.LockedCount),
		slog.Int("skipped_count", resp.SkippedCount),
	)
	c.JSON(http.StatusOK, resp)
}

// unlockTransaction godoc
// @Summary Unlock a transaction
// @Description Releases a LOCKED transaction back to REVIEWED. Admin only, and the comment is mandatory.
// @Tags workpapers
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param unlock body dto.UnlockRequest true "Unlock reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Only admins may unlock"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Comment too short or transaction not locked"
// @Router /transactions/{transactionID}/unlock [post]
func (h *workpaperHandler) unlockTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for unlockTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.workpaperService.UnlockTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to unlock transaction")
		return
	}

	logger.Info("Transaction unlocked", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listWorkpaperLinks godoc
// @Summary List the transaction snapshots captured in a workpaper
// @Tags workpapers
// @Produce json
// @Param workpaperID path string true "Workpaper ID"
// @Success 200 {array} dto.WorkpaperLinkResponse
// @Router /workpapers/{workpaperID}/links [get]
func (h *workpaperHandler) listWorkpaperLinks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workpaperID := c.Param("workpaperID")

	links, err := h.workpaperService.ListWorkpaperLinks(c.Request.Context(), workpaperID)
	if err != nil {
		respondError(c, logger, err, "Failed to list workpaper links")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkpaperLinkResponses(links))
}

// listTransactionLinks godoc
// @Summary List the workpapers a transaction has been captured in
// @Tags workpapers
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {array} dto.WorkpaperLinkResponse
// @Router /transactions/{transactionID}/workpapers [get]
func (h *workpaperHandler) listTransactionLinks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	links, err := h.workpaperService.ListTransactionLinks(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to list transaction workpapers")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkpaperLinkResponses(links))
}

// registerWorkpaperRoutes registers workpaper lock/unlock routes
func registerWorkpaperRoutes(group *gin.RouterGroup, workpaperService portssvc.WorkpaperLockSvc) {
	h := newWorkpaperHandler(workpaperService)

	workpapers := group.Group("/workpapers")
	{
		workpapers.POST("/lock", h.lockForWorkpaper)
		workpapers.GET("/:workpaperID/links", h.listWorkpaperLinks)
	}

	group.POST("/transactions/:transactionID/unlock", h.unlockTransaction)
	group.GET("/transactions/:transactionID/workpapers", h.listTransactionLinks)
}

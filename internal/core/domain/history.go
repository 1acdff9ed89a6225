package domain

import "time"

// HistoryActionType categorizes the operation a history entry records.
type HistoryActionType string

const (
	ActionManual           HistoryActionType = "manual"            // Manual edit by user
	ActionBulkRecode       HistoryActionType = "bulk_recode"       // Bulk update operation
	ActionImport           HistoryActionType = "import"            // Import from external source
	ActionMyFDCCreate      HistoryActionType = "myfdc_create"      // Created via MyFDC sync
	ActionMyFDCUpdate      HistoryActionType = "myfdc_update"      // Updated (or rejected) via MyFDC sync
	ActionLock             HistoryActionType = "lock"              // Locked for workpaper
	ActionUnlock           HistoryActionType = "unlock"            // Admin unlock
	ActionAttachmentAdd    HistoryActionType = "attachment_add"    // Attachment reference added
	ActionAttachmentRemove HistoryActionType = "attachment_remove" // Attachment reference removed
)

// FieldSnapshot is a structured before/after field map stored as jsonb.
type FieldSnapshot map[string]any

// HistoryEntry is one append-only audit record. Entries are never mutated or deleted;
// the ledger must be reconstructable into a per-transaction timeline.
type HistoryEntry struct {
	HistoryID     string            `json:"historyID"`
	TransactionID string            `json:"transactionID"` // Representative ID for bulk batches
	UserID        *string           `json:"userID,omitempty"` // Nil for system actions
	Role          Role              `json:"role"`
	ActionType    HistoryActionType `json:"actionType"`
	Before        FieldSnapshot     `json:"before,omitempty"` // Nil for creates and rejected updates
	After         FieldSnapshot     `json:"after,omitempty"`  // Nil for rejected updates
	Comment       *string           `json:"comment,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

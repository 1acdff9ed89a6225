package models

import "time"

// HistoryEntry is the persistence shape of the transaction_history table.
// Before/After are jsonb snapshots; nil means "not applicable" (create, rejected update).
type HistoryEntry struct {
	HistoryID     string         `db:"history_id"`
	TransactionID string         `db:"transaction_id"`
	UserID        *string        `db:"user_id"`
	Role          string         `db:"role"`
	ActionType    string         `db:"action_type"`
	Before        map[string]any `db:"before"`
	After         map[string]any `db:"after"`
	Comment       *string        `db:"comment"`
	Timestamp     time.Time      `db:"timestamp"`
}

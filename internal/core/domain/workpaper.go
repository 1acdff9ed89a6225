package domain

import "time"

// WorkpaperLink joins a transaction to a workpaper with the frozen field snapshot
// taken at lock time. Links are created once per lock and never updated; a re-lock
// after an unlock produces a new link. Downstream workpaper rendering reads the
// snapshot, never the live row.
type WorkpaperLink struct {
	LinkID        string        `json:"linkID"`
	TransactionID string        `json:"transactionID"`
	WorkpaperID   string        `json:"workpaperID"`
	Module        ModuleRouting `json:"module"`
	Period        string        `json:"period"` // e.g. "2024-25", "Q1-2025"
	Snapshot      FieldSnapshot `json:"snapshot"`
	CreatedAt     time.Time     `json:"createdAt"`
}

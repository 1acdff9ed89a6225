package models

import "time"

// WorkpaperLink is the persistence shape of the transaction_workpaper_links table.
type WorkpaperLink struct {
	LinkID        string         `db:"link_id"`
	TransactionID string         `db:"transaction_id"`
	WorkpaperID   string         `db:"workpaper_id"`
	Module        string         `db:"module"`
	Period        string         `db:"period"`
	Snapshot      map[string]any `db:"snapshot"`
	CreatedAt     time.Time      `db:"created_at"`
}

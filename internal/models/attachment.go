package models

import "time"

// Attachment is the persistence shape of the transaction_attachments table.
type Attachment struct {
	AttachmentID   string    `db:"attachment_id"`
	TransactionID  string    `db:"transaction_id"`
	StorageRef     string    `db:"storage_ref"`
	UploadedByRole string    `db:"uploaded_by_role"`
	UploadedAt     time.Time `db:"uploaded_at"`
	Checksum       *string   `db:"checksum"`
	Filename       *string   `db:"filename"`
	MimeType       *string   `db:"mime_type"`
	FileSize       *int64    `db:"file_size"`
}

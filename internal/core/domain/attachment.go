package domain

import "time"

// Attachment records a receipt/document reference for a transaction.
// StorageRef is opaque (S3 key, document ID, ...); this core never touches the bytes.
type Attachment struct {
	AttachmentID   string    `json:"attachmentID"`
	TransactionID  string    `json:"transactionID"`
	StorageRef     string    `json:"storageRef"`
	UploadedByRole Role      `json:"uploadedByRole"`
	UploadedAt     time.Time `json:"uploadedAt"`
	Checksum       *string   `json:"checksum,omitempty"` // SHA-256, for duplicate detection
	Filename       *string   `json:"filename,omitempty"`
	MimeType       *string   `json:"mimeType,omitempty"`
	FileSize       *int64    `json:"fileSize,omitempty"`
}

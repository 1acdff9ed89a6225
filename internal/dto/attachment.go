package dto

import (
	"time"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// AddAttachmentRequest defines the data needed to register an attachment
// against a transaction. The file itself lives in object storage; only the
// reference is recorded here.
type AddAttachmentRequest struct {
	StorageRef string  `json:"storageRef" binding:"required"`
	Filename   *string `json:"filename"`
	MimeType   *string `json:"mimeType"`
	FileSize   *int64  `json:"fileSize" binding:"omitempty,min=0"`
	Checksum   *string `json:"checksum"`
}

// AttachmentResponse defines the data returned for an attachment.
type AttachmentResponse struct {
	AttachmentID   string    `json:"attachmentID"`
	TransactionID  string    `json:"transactionID"`
	StorageRef     string    `json:"storageRef"`
	UploadedByRole string    `json:"uploadedByRole"`
	UploadedAt     time.Time `json:"uploadedAt"`
	Filename       *string   `json:"filename,omitempty"`
	MimeType       *string   `json:"mimeType,omitempty"`
	FileSize       *int64    `json:"fileSize,omitempty"`
	Checksum       *string   `json:"checksum,omitempty"`
}

// ToAttachmentResponse converts a domain.Attachment to its response DTO.
func ToAttachmentResponse(att *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID:   att.AttachmentID,
		TransactionID:  att.TransactionID,
		StorageRef:     att.StorageRef,
		UploadedByRole: string(att.UploadedByRole),
		UploadedAt:     att.UploadedAt,
		Filename:       att.Filename,
		MimeType:       att.MimeType,
		FileSize:       att.FileSize,
		Checksum:       att.Checksum,
	}
}

// ToAttachmentResponses converts a slice of attachments.
func ToAttachmentResponses(atts []domain.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(atts))
	for i := range atts {
		responses[i] = ToAttachmentResponse(&atts[i])
	}
	return responses
}

package mapping

import (
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
	"github.com/fdcsoft/fdc_core_app/internal/models"
)

// ToModelHistoryEntry converts a domain HistoryEntry to a model HistoryEntry
func ToModelHistoryEntry(d domain.HistoryEntry) models.HistoryEntry {
	return models.HistoryEntry{
		HistoryID:     d.HistoryID,
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Role:          string(d.Role),
		ActionType:    string(d.ActionType),
		Before:        d.Before,
		After:         d.After,
		Comment:       d.Comment,
		Timestamp:     d.Timestamp,
	}
}

// ToDomainHistoryEntry converts a model HistoryEntry to a domain HistoryEntry
func ToDomainHistoryEntry(m models.HistoryEntry) domain.HistoryEntry {
	return domain.HistoryEntry{
		HistoryID:     m.HistoryID,
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Role:          domain.Role(m.Role),
		ActionType:    domain.HistoryActionType(m.ActionType),
		Before:        m.Before,
		After:         m.After,
		Comment:       m.Comment,
		Timestamp:     m.Timestamp,
	}
}

// ToModelWorkpaperLink converts a domain WorkpaperLink to a model WorkpaperLink
func ToModelWorkpaperLink(d domain.WorkpaperLink) models.WorkpaperLink {
	return models.WorkpaperLink{
		LinkID:        d.LinkID,
		TransactionID: d.TransactionID,
		WorkpaperID:   d.WorkpaperID,
		Module:        string(d.Module),
		Period:        d.Period,
		Snapshot:      d.Snapshot,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainWorkpaperLink converts a model WorkpaperLink to a domain WorkpaperLink
func ToDomainWorkpaperLink(m models.WorkpaperLink) domain.WorkpaperLink {
	return domain.WorkpaperLink{
		LinkID:        m.LinkID,
		TransactionID: m.TransactionID,
		WorkpaperID:   m.WorkpaperID,
		Module:        domain.ModuleRouting(m.Module),
		Period:        m.Period,
		Snapshot:      m.Snapshot,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainAttachment converts a model Attachment to a domain Attachment
func ToDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID:   m.AttachmentID,
		TransactionID:  m.TransactionID,
		StorageRef:     m.StorageRef,
		UploadedByRole: domain.Role(m.UploadedByRole),
		UploadedAt:     m.UploadedAt,
		Checksum:       m.Checksum,
		Filename:       m.Filename,
		MimeType:       m.MimeType,
		FileSize:       m.FileSize,
	}
}

// ToModelAttachment converts a domain Attachment to a model Attachment
func ToModelAttachment(d domain.Attachment) models.Attachment {
	return models.Attachment{
		AttachmentID:   d.AttachmentID,
		TransactionID:  d.TransactionID,
		StorageRef:     d.StorageRef,
		UploadedByRole: string(d.UploadedByRole),
		UploadedAt:     d.UploadedAt,
		Checksum:       d.Checksum,
		Filename:       d.Filename,
		MimeType:       d.MimeType,
		FileSize:       d.FileSize,
	}
}

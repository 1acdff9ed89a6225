package dto

import (
	"regexp"
	"time"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// WorkpaperLockRequest defines a request to freeze transactions into a workpaper.
// Period must be a month or year span ("2025-07", "2024-25"), a quarter
// ("Q1-2025"), or a financial year ("FY2025").
type WorkpaperLockRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
	WorkpaperID    string   `json:"workpaperID" binding:"required"`
	Module         string   `json:"module" binding:"required,oneof=MOTOR_VEHICLE HOME_OCCUPANCY UTILITIES INTERNET GENERAL DISALLOWED"`
	Period         string   `json:"period" binding:"required"`
}

var periodPattern = regexp.MustCompile(`^(\d{4}-\d{2}|Q[1-4]-\d{4}|FY\d{4})$`)

// ValidPeriod reports whether the period is a month or year span ("2025-07",
// "2024-25"), a quarter ("Q1-2025"), or a financial year ("FY2025").
func (r WorkpaperLockRequest) ValidPeriod() bool {
	return periodPattern.MatchString(r.Period)
}

// WorkpaperLockResponse reports the outcome of a lock request.
type WorkpaperLockResponse struct {
	LockedCount  int `json:"lockedCount"`
	SkippedCount int `json:"skippedCount"`
}

// UnlockRequest defines a request to release a locked transaction.
// The comment is mandatory and is recorded verbatim in the audit trail.
type UnlockRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// WorkpaperLinkResponse defines the data returned for a workpaper link.
type WorkpaperLinkResponse struct {
	LinkID        string               `json:"linkID"`
	TransactionID string               `json:"transactionID"`
	WorkpaperID   string               `json:"workpaperID"`
	Module        string               `json:"module"`
	Period        string               `json:"period"`
	Snapshot      domain.FieldSnapshot `json:"snapshot"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToWorkpaperLinkResponse converts a domain.WorkpaperLink to its response DTO.
func ToWorkpaperLinkResponse(link *domain.WorkpaperLink) WorkpaperLinkResponse {
	return WorkpaperLinkResponse{
		LinkID:        link.LinkID,
		TransactionID: link.TransactionID,
		WorkpaperID:   link.WorkpaperID,
		Module:        string(link.Module),
		Period:        link.Period,
		Snapshot:      link.Snapshot,
		CreatedAt:     link.CreatedAt,
	}
}

// ToWorkpaperLinkResponses converts a slice of workpaper links.
func ToWorkpaperLinkResponses(links []domain.WorkpaperLink) []WorkpaperLinkResponse {
	responses := make([]WorkpaperLinkResponse, len(links))
	for i := range links {
		responses[i] = ToWorkpaperLinkResponse(&links[i])
	}
	return responses
}

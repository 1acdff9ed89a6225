package dto

import (
	"time"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// HistoryEntryResponse defines the data returned for a single audit entry.
type HistoryEntryResponse struct {
	HistoryID     string               `json:"historyID"`
	TransactionID string               `json:"transactionID"`
	UserID        *string              `json:"userID,omitempty"`
	Role          string               `json:"role"`
	ActionType    string               `json:"actionType"`
	Before        domain.FieldSnapshot `json:"before,omitempty"`
	After         domain.FieldSnapshot `json:"after,omitempty"`
	Comment       *string              `json:"comment,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`
}

// ToHistoryEntryResponse converts a domain.HistoryEntry to its response DTO.
func ToHistoryEntryResponse(entry *domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		HistoryID:     entry.HistoryID,
		TransactionID: entry.TransactionID,
		UserID:        entry.UserID,
		Role:          string(entry.Role),
		ActionType:    string(entry.ActionType),
		Before:        entry.Before,
		After:         entry.After,
		Comment:       entry.Comment,
		Timestamp:     entry.Timestamp,
	}
}

// ToHistoryEntryResponses converts a slice of history entries.
func ToHistoryEntryResponses(entries []domain.HistoryEntry) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToHistoryEntryResponse(&entries[i])
	}
	return responses
}

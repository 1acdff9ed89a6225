package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MyFDCCreateRequest is a new transaction pushed from the MyFDC client app.
type MyFDCCreateRequest struct {
	ClientID         string          `json:"clientID" binding:"required"`
	JobID            *string         `json:"jobID"`
	ModuleInstanceID *string         `json:"moduleInstanceID"`
	Date             time.Time       `json:"date" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	PayeeRaw         *string         `json:"payeeRaw"`
	DescriptionRaw   *string         `json:"descriptionRaw"`
	CategoryClient   *string         `json:"categoryClient"`
	ModuleHintClient *string         `json:"moduleHintClient"`
	NotesClient      *string         `json:"notesClient"`
}

// MyFDCUpdateRequest is a client-side edit pushed from the MyFDC app. Only
// client-provenance fields are accepted; everything else is dropped upstream.
type MyFDCUpdateRequest struct {
	CategoryClient   *string `json:"categoryClient"`
	ModuleHintClient *string `json:"moduleHintClient"`
	NotesClient      *string `json:"notesClient"`
}

// MyFDCSyncResponse reports whether a pushed update was applied or rejected
// because the transaction had moved past client-editable review states.
type MyFDCSyncResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Applied     bool                `json:"applied"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransactionRow is one row of a bank feed import.
type BankTransactionRow struct {
	Date           time.Time       `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PayeeRaw       *string         `json:"payeeRaw"`
	DescriptionRaw *string         `json:"descriptionRaw"`
}

// BankImportRequest defines a batch import from a bank feed.
type BankImportRequest struct {
	ClientID     string               `json:"clientID" binding:"required"`
	JobID        *string              `json:"jobID"`
	Transactions []BankTransactionRow `json:"transactions" binding:"required,min=1,max=1000,dive"`
}

// BankImportResponse reports the outcome of a bank feed import.
type BankImportResponse struct {
	ImportedCount int                   `json:"importedCount"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// OCRImportRequest defines a single transaction extracted from a scanned receipt.
type OCRImportRequest struct {
	ClientID       string          `json:"clientID" binding:"required"`
	JobID          *string         `json:"jobID"`
	Date           time.Time       `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PayeeRaw       *string         `json:"payeeRaw"`
	DescriptionRaw *string         `json:"descriptionRaw"`
	StorageRef     *string         `json:"storageRef"` // Receipt image, attached when present
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence shape of the transactions table.
// Enum columns are plain strings here; the domain layer owns the valid value sets.
type Transaction struct {
	TransactionID    string  `db:"transaction_id"`
	ClientID         string  `db:"client_id"`
	JobID            *string `db:"job_id"`
	ModuleInstanceID *string `db:"module_instance_id"`

	Date           time.Time       `db:"date"`
	Amount         decimal.Decimal `db:"amount"`
	PayeeRaw       *string         `db:"payee_raw"`
	DescriptionRaw *string         `db:"description_raw"`
	Source         string          `db:"source"`

	CategoryClient   *string `db:"category_client"`
	ModuleHintClient *string `db:"module_hint_client"`
	NotesClient      *string `db:"notes_client"`

	CategoryBookkeeper *string `db:"category_bookkeeper"`
	GSTCodeBookkeeper  *string `db:"gst_code_bookkeeper"`
	NotesBookkeeper    *string `db:"notes_bookkeeper"`
	StatusBookkeeper   string  `db:"status_bookkeeper"`
	Flags              Flags   `db:"flags"` // jsonb
	ModuleRouting      *string `db:"module_routing"`

	IsDuplicate   bool `db:"is_duplicate"`
	IsLateReceipt bool `db:"is_late_receipt"`

	LockedAt     *time.Time `db:"locked_at"`
	LockedByRole *string    `db:"locked_by_role"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	AttachmentCount int `db:"-"`
}

// Flags is the jsonb review-marker column.
type Flags struct {
	Duplicate bool `json:"duplicate"`
	Late      bool `json:"late"`
	HighRisk  bool `json:"high_risk"`
}

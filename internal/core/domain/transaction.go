package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSource identifies where a transaction originated.
type TransactionSource string

const (
	SourceManual TransactionSource = "MANUAL" // Manual entry
	SourceMyFDC  TransactionSource = "MYFDC"  // MyFDC client app
	SourceBank   TransactionSource = "BANK"   // Bank feed import
	SourceOCR    TransactionSource = "OCR"    // OCR/receipt scan
)

// IsValid reports whether s is a known source.
func (s TransactionSource) IsValid() bool {
	switch s {
	case SourceManual, SourceMyFDC, SourceBank, SourceOCR:
		return true
	}
	return false
}

// GSTCode is an Australian GST treatment code.
type GSTCode string

const (
	GSTStandard   GSTCode = "GST"          // Standard GST (10%)
	GSTFree       GSTCode = "GST_FREE"     // GST-free supply
	GSTInputTaxed GSTCode = "INPUT_TAXED"  // Input taxed (no GST credit)
	GSTOutOfScope GSTCode = "OUT_OF_SCOPE" // Outside GST system
	GSTPrivate    GSTCode = "PRIVATE"      // Private/non-business
)

// IsValid reports whether g is a known GST code.
func (g GSTCode) IsValid() bool {
	switch g {
	case GSTStandard, GSTFree, GSTInputTaxed, GSTOutOfScope, GSTPrivate:
		return true
	}
	return false
}

// ModuleRouting is the target workpaper module for a transaction.
type ModuleRouting string

const (
	ModuleMotorVehicle  ModuleRouting = "MOTOR_VEHICLE"
	ModuleHomeOccupancy ModuleRouting = "HOME_OCCUPANCY"
	ModuleUtilities     ModuleRouting = "UTILITIES"
	ModuleInternet      ModuleRouting = "INTERNET"
	ModuleGeneral       ModuleRouting = "GENERAL"
	ModuleDisallowed    ModuleRouting = "DISALLOWED"
)

// IsValid reports whether m is a known module.
func (m ModuleRouting) IsValid() bool {
	switch m {
	case ModuleMotorVehicle, ModuleHomeOccupancy, ModuleUtilities, ModuleInternet, ModuleGeneral, ModuleDisallowed:
		return true
	}
	return false
}

// Flags is the closed set of review markers a bookkeeper can set.
type Flags struct {
	Duplicate bool `json:"duplicate"`
	Late      bool `json:"late"`
	HighRisk  bool `json:"high_risk"`
}

// Field identifiers used by the permission gate and history snapshots.
const (
	FieldDate               = "date"
	FieldAmount             = "amount"
	FieldPayeeRaw           = "payee_raw"
	FieldDescriptionRaw     = "description_raw"
	FieldCategoryBookkeeper = "category_bookkeeper"
	FieldGSTCodeBookkeeper  = "gst_code_bookkeeper"
	FieldNotesBookkeeper    = "notes_bookkeeper"
	FieldStatusBookkeeper   = "status_bookkeeper"
	FieldFlags              = "flags"
	FieldModuleRouting      = "module_routing"
)

// Transaction is the canonical ledger entity.
// Client-provenance fields (CategoryClient, ModuleHintClient, NotesClient) belong to
// the submitting party while the lifecycle is early; bookkeeper-provenance fields are
// curated during review and frozen into workpaper snapshots at lock time.
type Transaction struct {
	TransactionID    string  `json:"transactionID"` // Primary Key (UUID)
	ClientID         string  `json:"clientID"`      // Owning client (Not Null)
	JobID            *string `json:"jobID,omitempty"`
	ModuleInstanceID *string `json:"moduleInstanceID,omitempty"`

	Date           time.Time         `json:"date"`   // Monetary date
	Amount         decimal.Decimal   `json:"amount"` // Signed, exact to 2dp
	PayeeRaw       *string           `json:"payeeRaw,omitempty"`
	DescriptionRaw *string           `json:"descriptionRaw,omitempty"`
	Source         TransactionSource `json:"source"`

	CategoryClient   *string `json:"categoryClient,omitempty"`
	ModuleHintClient *string `json:"moduleHintClient,omitempty"`
	NotesClient      *string `json:"notesClient,omitempty"`

	CategoryBookkeeper *string           `json:"categoryBookkeeper,omitempty"`
	GSTCodeBookkeeper  *GSTCode          `json:"gstCodeBookkeeper,omitempty"`
	NotesBookkeeper    *string           `json:"notesBookkeeper,omitempty"`
	StatusBookkeeper   TransactionStatus `json:"statusBookkeeper"`
	Flags              Flags             `json:"flags"`
	ModuleRouting      *ModuleRouting    `json:"moduleRouting,omitempty"`

	// Mirrored from Flags for fast filtering.
	IsDuplicate   bool `json:"isDuplicate"`
	IsLateReceipt bool `json:"isLateReceipt"`

	LockedAt     *time.Time `json:"lockedAt,omitempty"`
	LockedByRole *Role      `json:"lockedByRole,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// AttachmentCount is derived on read; it is not a stored column.
	AttachmentCount int `json:"attachmentCount"`
}

// Snapshot captures the bookkeeper-relevant field set as a history/workpaper snapshot.
// The set matches what workpaper rendering needs once the row is frozen; snapshots are
// complete so each history entry is auditable without replaying prior entries.
func (t *Transaction) Snapshot() FieldSnapshot {
	snap := FieldSnapshot{
		"id":                  t.TransactionID,
		FieldAmount:           t.Amount.StringFixed(2),
		FieldDate:             t.Date.Format("2006-01-02"),
		FieldPayeeRaw:         strOrNil(t.PayeeRaw),
		FieldDescriptionRaw:   strOrNil(t.DescriptionRaw),
		FieldCategoryBookkeeper: strOrNil(t.CategoryBookkeeper),
		FieldNotesBookkeeper:  strOrNil(t.NotesBookkeeper),
		FieldFlags: map[string]bool{
			"duplicate": t.Flags.Duplicate,
			"late":      t.Flags.Late,
			"high_risk": t.Flags.HighRisk,
		},
	}
	if t.GSTCodeBookkeeper != nil {
		snap[FieldGSTCodeBookkeeper] = string(*t.GSTCodeBookkeeper)
	} else {
		snap[FieldGSTCodeBookkeeper] = nil
	}
	if t.ModuleRouting != nil {
		snap[FieldModuleRouting] = string(*t.ModuleRouting)
	} else {
		snap[FieldModuleRouting] = nil
	}
	if t.LockedAt != nil {
		snap["locked_at"] = t.LockedAt.UTC().Format(time.RFC3339Nano)
	} else {
		snap["locked_at"] = nil
	}
	return snap
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

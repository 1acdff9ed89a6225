package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionPatch is a partial update to a single transaction. Nil fields are
// untouched. ClearGSTCode and ClearModuleRouting reset the respective field to
// null; they take precedence over the matching pointer.
type TransactionPatch struct {
	Date               *time.Time
	Amount             *decimal.Decimal
	PayeeRaw           *string
	DescriptionRaw     *string
	CategoryBookkeeper *string
	GSTCodeBookkeeper  *GSTCode
	ClearGSTCode       bool
	NotesBookkeeper    *string
	StatusBookkeeper   *TransactionStatus
	Flags              *Flags
	ModuleRouting      *ModuleRouting
	ClearModuleRouting bool
}

// Fields returns the canonical names of every field the patch touches.
func (p TransactionPatch) Fields() []string {
	var fields []string
	if p.Date != nil {
		fields = append(fields, FieldDate)
	}
	if p.Amount != nil {
		fields = append(fields, FieldAmount)
	}
	if p.PayeeRaw != nil {
		fields = append(fields, FieldPayeeRaw)
	}
	if p.DescriptionRaw != nil {
		fields = append(fields, FieldDescriptionRaw)
	}
	if p.CategoryBookkeeper != nil {
		fields = append(fields, FieldCategoryBookkeeper)
	}
	if p.GSTCodeBookkeeper != nil || p.ClearGSTCode {
		fields = append(fields, FieldGSTCodeBookkeeper)
	}
	if p.NotesBookkeeper != nil {
		fields = append(fields, FieldNotesBookkeeper)
	}
	if p.StatusBookkeeper != nil {
		fields = append(fields, FieldStatusBookkeeper)
	}
	if p.Flags != nil {
		fields = append(fields, FieldFlags)
	}
	if p.ModuleRouting != nil || p.ClearModuleRouting {
		fields = append(fields, FieldModuleRouting)
	}
	return fields
}

// IsEmpty reports whether the patch touches no field at all.
func (p TransactionPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply writes the patch onto the transaction. Flag mirrors are kept in step
// with the flags object so the filterable columns never drift.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.PayeeRaw != nil {
		t.PayeeRaw = p.PayeeRaw
	}
	if p.DescriptionRaw != nil {
		t.DescriptionRaw = p.DescriptionRaw
	}
	if p.CategoryBookkeeper != nil {
		t.CategoryBookkeeper = p.CategoryBookkeeper
	}
	if p.ClearGSTCode {
		t.GSTCodeBookkeeper = nil
	} else if p.GSTCodeBookkeeper != nil {
		code := *p.GSTCodeBookkeeper
		t.GSTCodeBookkeeper = &code
	}
	if p.NotesBookkeeper != nil {
		t.NotesBookkeeper = p.NotesBookkeeper
	}
	if p.StatusBookkeeper != nil {
		t.StatusBookkeeper = *p.StatusBookkeeper
	}
	if p.Flags != nil {
		t.Flags = *p.Flags
		t.IsDuplicate = p.Flags.Duplicate
		t.IsLateReceipt = p.Flags.Late
	}
	if p.ClearModuleRouting {
		t.ModuleRouting = nil
	} else if p.ModuleRouting != nil {
		routing := *p.ModuleRouting
		t.ModuleRouting = &routing
	}
}

// BulkPatch is the restricted field set allowed in a bulk recode. It reuses
// TransactionPatch semantics for the fields it carries.
type BulkPatch struct {
	CategoryBookkeeper *string
	GSTCodeBookkeeper  *GSTCode
	ClearGSTCode       bool
	StatusBookkeeper   *TransactionStatus
	ModuleRouting      *ModuleRouting
	ClearModuleRouting bool
	Flags              *Flags
}

// AsPatch widens the bulk patch into a TransactionPatch for applying and
// permission checks.
func (p BulkPatch) AsPatch() TransactionPatch {
	return TransactionPatch{
		CategoryBookkeeper: p.CategoryBookkeeper,
		GSTCodeBookkeeper:  p.GSTCodeBookkeeper,
		ClearGSTCode:       p.ClearGSTCode,
		StatusBookkeeper:   p.StatusBookkeeper,
		ModuleRouting:      p.ModuleRouting,
		ClearModuleRouting: p.ClearModuleRouting,
		Flags:              p.Flags,
	}
}

// IsEmpty reports whether the bulk patch carries no updates.
func (p BulkPatch) IsEmpty() bool {
	return p.AsPatch().IsEmpty()
}

// AuditMap renders the requested updates for embedding in a history entry,
// mirroring the shape the client submitted.
func (p BulkPatch) AuditMap() FieldSnapshot {
	updates := FieldSnapshot{}
	if p.CategoryBookkeeper != nil {
		updates[FieldCategoryBookkeeper] = *p.CategoryBookkeeper
	}
	if p.ClearGSTCode {
		updates[FieldGSTCodeBookkeeper] = nil
	} else if p.GSTCodeBookkeeper != nil {
		updates[FieldGSTCodeBookkeeper] = string(*p.GSTCodeBookkeeper)
	}
	if p.StatusBookkeeper != nil {
		updates[FieldStatusBookkeeper] = string(*p.StatusBookkeeper)
	}
	if p.ClearModuleRouting {
		updates[FieldModuleRouting] = nil
	} else if p.ModuleRouting != nil {
		updates[FieldModuleRouting] = string(*p.ModuleRouting)
	}
	if p.Flags != nil {
		updates[FieldFlags] = map[string]bool{
			"duplicate": p.Flags.Duplicate,
			"late":      p.Flags.Late,
			"high_risk": p.Flags.HighRisk,
		}
	}
	return updates
}

package domain

import "time"

// Actor identifies who is performing an operation. UserID is nil for system actions.
type Actor struct {
	UserID *string
	Role   Role
}

// TransactionFilter holds the optional predicates for listing transactions.
// Nil fields are ignored.
type TransactionFilter struct {
	ClientID         *string
	JobID            *string
	ModuleInstanceID *string
	DateFrom         *time.Time
	DateTo           *time.Time
	Status           *TransactionStatus
	Category         *string
	Source           *TransactionSource
	ModuleRouting    *ModuleRouting
	IsDuplicate      *bool
	IsLateReceipt    *bool
	HasAttachment    *bool
	Search           *string // Matched against payee, description and both notes fields
}

// BulkCriteria selects the target set for a bulk update.
// An empty criteria set is invalid; bulk operations never match "everything" implicitly.
type BulkCriteria struct {
	ClientID       *string
	TransactionIDs []string
	Status         *TransactionStatus
	Category       *string
	DateFrom       *time.Time
	DateTo         *time.Time
}

// IsEmpty reports whether no criterion is set.
func (c BulkCriteria) IsEmpty() bool {
	return c.ClientID == nil &&
		len(c.TransactionIDs) == 0 &&
		c.Status == nil &&
		c.Category == nil &&
		c.DateFrom == nil &&
		c.DateTo == nil
}

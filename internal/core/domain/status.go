package domain

// TransactionStatus is the bookkeeper lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusNew               TransactionStatus = "NEW"
	StatusPending           TransactionStatus = "PENDING"
	StatusReviewed          TransactionStatus = "REVIEWED"
	StatusReadyForWorkpaper TransactionStatus = "READY_FOR_WORKPAPER"
	StatusLocked            TransactionStatus = "LOCKED"
)

// statusRank defines the total order over lifecycle states.
// NEW < PENDING < REVIEWED < READY_FOR_WORKPAPER < LOCKED.
var statusRank = map[TransactionStatus]int{
	StatusNew:               0,
	StatusPending:           1,
	StatusReviewed:          2,
	StatusReadyForWorkpaper: 3,
	StatusLocked:            4,
}

// AtLeast reports whether s has progressed at least as far as other.
func (s TransactionStatus) AtLeast(other TransactionStatus) bool {
	return statusRank[s] >= statusRank[other]
}

// IsValid reports whether s is one of the five lifecycle states.
func (s TransactionStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to create a new transaction.
type CreateTransactionRequest struct {
	ClientID         string          `json:"clientID" binding:"required"`
	JobID            *string         `json:"jobID"`
	ModuleInstanceID *string         `json:"moduleInstanceID"`
	Date             time.Time       `json:"date" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	PayeeRaw         *string         `json:"payeeRaw"`
	DescriptionRaw   *string         `json:"descriptionRaw"`
	Source           string          `json:"source" binding:"omitempty,oneof=MANUAL MYFDC BANK OCR"`
	CategoryClient   *string         `json:"categoryClient"`
	ModuleHintClient *string         `json:"moduleHintClient"`
	NotesClient      *string         `json:"notesClient"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
// An explicit empty string for gstCodeBookkeeper or moduleRouting clears the field.
type UpdateTransactionRequest struct {
	Date               *time.Time       `json:"date"`
	Amount             *decimal.Decimal `json:"amount"`
	PayeeRaw           *string          `json:"payeeRaw"`
	DescriptionRaw     *string          `json:"descriptionRaw"`
	CategoryBookkeeper *string          `json:"categoryBookkeeper"`
	GSTCodeBookkeeper  *string          `json:"gstCodeBookkeeper" binding:"omitempty,oneof=GST GST_FREE INPUT_TAXED OUT_OF_SCOPE PRIVATE"`
	NotesBookkeeper    *string          `json:"notesBookkeeper"`
	StatusBookkeeper   *string          `json:"statusBookkeeper" binding:"omitempty,oneof=NEW PENDING REVIEWED READY_FOR_WORKPAPER LOCKED"`
	Flags              *domain.Flags    `json:"flags"`
	ModuleRouting      *string          `json:"moduleRouting" binding:"omitempty,oneof=MOTOR_VEHICLE HOME_OCCUPANCY UTILITIES INTERNET GENERAL DISALLOWED"`
	Comment            *string          `json:"comment"`
}

// ToPatch converts the request into a domain patch. Binding validation has
// already vetted the enum values; empty strings become clears.
func (r UpdateTransactionRequest) ToPatch() domain.TransactionPatch {
	patch := domain.TransactionPatch{
		Date:               r.Date,
		Amount:             r.Amount,
		PayeeRaw:           r.PayeeRaw,
		DescriptionRaw:     r.DescriptionRaw,
		CategoryBookkeeper: r.CategoryBookkeeper,
		NotesBookkeeper:    r.NotesBookkeeper,
		Flags:              r.Flags,
	}
	if r.GSTCodeBookkeeper != nil {
		if *r.GSTCodeBookkeeper == "" {
			patch.ClearGSTCode = true
		} else {
			code := domain.GSTCode(*r.GSTCodeBookkeeper)
			patch.GSTCodeBookkeeper = &code
		}
	}
	if r.StatusBookkeeper != nil {
		status := domain.TransactionStatus(*r.StatusBookkeeper)
		patch.StatusBookkeeper = &status
	}
	if r.ModuleRouting != nil {
		if *r.ModuleRouting == "" {
			patch.ClearModuleRouting = true
		} else {
			routing := domain.ModuleRouting(*r.ModuleRouting)
			patch.ModuleRouting = &routing
		}
	}
	return patch
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	ClientID         string          `json:"clientID"`
	JobID            *string         `json:"jobID,omitempty"`
	ModuleInstanceID *string         `json:"moduleInstanceID,omitempty"`
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	PayeeRaw         *string         `json:"payeeRaw,omitempty"`
	DescriptionRaw   *string         `json:"descriptionRaw,omitempty"`
	Source           string          `json:"source"`

	CategoryClient   *string `json:"categoryClient,omitempty"`
	ModuleHintClient *string `json:"moduleHintClient,omitempty"`
	NotesClient      *string `json:"notesClient,omitempty"`

	CategoryBookkeeper *string      `json:"categoryBookkeeper,omitempty"`
	GSTCodeBookkeeper  *string      `json:"gstCodeBookkeeper,omitempty"`
	NotesBookkeeper    *string      `json:"notesBookkeeper,omitempty"`
	StatusBookkeeper   string       `json:"statusBookkeeper"`
	Flags              domain.Flags `json:"flags"`
	ModuleRouting      *string      `json:"moduleRouting,omitempty"`

	IsDuplicate   bool `json:"isDuplicate"`
	IsLateReceipt bool `json:"isLateReceipt"`

	LockedAt     *time.Time `json:"lockedAt,omitempty"`
	LockedByRole *string    `json:"lockedByRole,omitempty"`

	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	AttachmentCount int       `json:"attachmentCount"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:      txn.TransactionID,
		ClientID:           txn.ClientID,
		JobID:              txn.JobID,
		ModuleInstanceID:   txn.ModuleInstanceID,
		Date:               txn.Date,
		Amount:             txn.Amount,
		PayeeRaw:           txn.PayeeRaw,
		DescriptionRaw:     txn.DescriptionRaw,
		Source:             string(txn.Source),
		CategoryClient:     txn.CategoryClient,
		ModuleHintClient:   txn.ModuleHintClient,
		NotesClient:        txn.NotesClient,
		CategoryBookkeeper: txn.CategoryBookkeeper,
		NotesBookkeeper:    txn.NotesBookkeeper,
		StatusBookkeeper:   string(txn.StatusBookkeeper),
		Flags:              txn.Flags,
		IsDuplicate:        txn.IsDuplicate,
		IsLateReceipt:      txn.IsLateReceipt,
		LockedAt:           txn.LockedAt,
		CreatedAt:          txn.CreatedAt,
		UpdatedAt:          txn.UpdatedAt,
		AttachmentCount:    txn.AttachmentCount,
	}
	if txn.GSTCodeBookkeeper != nil {
		code := string(*txn.GSTCodeBookkeeper)
		resp.GSTCodeBookkeeper = &code
	}
	if txn.ModuleRouting != nil {
		routing := string(*txn.ModuleRouting)
		resp.ModuleRouting = &routing
	}
	if txn.LockedByRole != nil {
		role := string(*txn.LockedByRole)
		resp.LockedByRole = &role
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	ClientID         *string `form:"clientID"`
	JobID            *string `form:"jobID"`
	ModuleInstanceID *string `form:"moduleInstanceID"`
	DateFrom         *string `form:"dateFrom"` // YYYY-MM-DD
	DateTo           *string `form:"dateTo"`   // YYYY-MM-DD
	Status           *string `form:"status" binding:"omitempty,oneof=NEW PENDING REVIEWED READY_FOR_WORKPAPER LOCKED"`
	Category         *string `form:"category"`
	Source           *string `form:"source" binding:"omitempty,oneof=MANUAL MYFDC BANK OCR"`
	ModuleRouting    *string `form:"moduleRouting" binding:"omitempty,oneof=MOTOR_VEHICLE HOME_OCCUPANCY UTILITIES INTERNET GENERAL DISALLOWED"`
	IsDuplicate      *bool   `form:"isDuplicate"`
	IsLateReceipt    *bool   `form:"isLateReceipt"`
	HasAttachment    *bool   `form:"hasAttachment"`
	Search           *string `form:"search"`
	Limit            int     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken        *string `form:"nextToken"`
}

// ToFilter converts the query params into a domain filter. Malformed date
// strings are reported back to the caller as a parse error.
func (p ListTransactionsParams) ToFilter() (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		ClientID:         p.ClientID,
		JobID:            p.JobID,
		ModuleInstanceID: p.ModuleInstanceID,
		Category:         p.Category,
		IsDuplicate:      p.IsDuplicate,
		IsLateReceipt:    p.IsLateReceipt,
		HasAttachment:    p.HasAttachment,
		Search:           p.Search,
	}
	if p.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *p.DateFrom)
		if err != nil {
			return domain.TransactionFilter{}, err
		}
		filter.DateFrom = &from
	}
	if p.DateTo != nil {
		to, err := time.Parse("2006-01-02", *p.DateTo)
		if err != nil {
			return domain.TransactionFilter{}, err
		}
		filter.DateTo = &to
	}
	if p.Status != nil {
		status := domain.TransactionStatus(*p.Status)
		filter.Status = &status
	}
	if p.Source != nil {
		source := domain.TransactionSource(*p.Source)
		filter.Source = &source
	}
	if p.ModuleRouting != nil {
		routing := domain.ModuleRouting(*p.ModuleRouting)
		filter.ModuleRouting = &routing
	}
	return filter, nil
}

// ListTransactionsResponse defines the paginated list payload.
type ListTransactionsResponse struct {
	Items     []TransactionResponse `json:"items"`
	Total     int64                 `json:"total"`
	NextToken *string               `json:"nextToken,omitempty"`
	HasMore   bool                  `json:"hasMore"`
}

// BulkCriteriaRequest selects the target set of a bulk update.
type BulkCriteriaRequest struct {
	ClientID       *string  `json:"clientID"`
	TransactionIDs []string `json:"transactionIDs"`
	Status         *string  `json:"status" binding:"omitempty,oneof=NEW PENDING REVIEWED READY_FOR_WORKPAPER LOCKED"`
	Category       *string  `json:"category"`
	DateFrom       *string  `json:"dateFrom"` // YYYY-MM-DD
	DateTo         *string  `json:"dateTo"`   // YYYY-MM-DD
}

// BulkUpdatesRequest carries the fields a bulk update may set.
type BulkUpdatesRequest struct {
	CategoryBookkeeper *string       `json:"categoryBookkeeper"`
	GSTCodeBookkeeper  *string       `json:"gstCodeBookkeeper" binding:"omitempty,oneof=GST GST_FREE INPUT_TAXED OUT_OF_SCOPE PRIVATE"`
	StatusBookkeeper   *string       `json:"statusBookkeeper" binding:"omitempty,oneof=NEW PENDING REVIEWED READY_FOR_WORKPAPER LOCKED"`
	ModuleRouting      *string       `json:"moduleRouting" binding:"omitempty,oneof=MOTOR_VEHICLE HOME_OCCUPANCY UTILITIES INTERNET GENERAL DISALLOWED"`
	Flags              *domain.Flags `json:"flags"`
}

// BulkUpdateRequest defines a bulk recode: criteria pick the rows, updates say
// what changes.
type BulkUpdateRequest struct {
	Criteria BulkCriteriaRequest `json:"criteria" binding:"required"`
	Updates  BulkUpdatesRequest  `json:"updates" binding:"required"`
}

// ToCriteria converts the request criteria into domain criteria.
func (r BulkCriteriaRequest) ToCriteria() (domain.BulkCriteria, error) {
	criteria := domain.BulkCriteria{
		ClientID:       r.ClientID,
		TransactionIDs: r.TransactionIDs,
		Category:       r.Category,
	}
	if r.Status != nil {
		status := domain.TransactionStatus(*r.Status)
		criteria.Status = &status
	}
	if r.DateFrom != nil {
		from, err := time.Parse("2006-01-02", *r.DateFrom)
		if err != nil {
			return domain.BulkCriteria{}, err
		}
		criteria.DateFrom = &from
	}
	if r.DateTo != nil {
		to, err := time.Parse("2006-01-02", *r.DateTo)
		if err != nil {
			return domain.BulkCriteria{}, err
		}
		criteria.DateTo = &to
	}
	return criteria, nil
}

// ToPatch converts the requested updates into a domain bulk patch.
func (r BulkUpdatesRequest) ToPatch() domain.BulkPatch {
	patch := domain.BulkPatch{
		CategoryBookkeeper: r.CategoryBookkeeper,
		Flags:              r.Flags,
	}
	if r.GSTCodeBookkeeper != nil {
		if *r.GSTCodeBookkeeper == "" {
			patch.ClearGSTCode = true
		} else {
			code := domain.GSTCode(*r.GSTCodeBookkeeper)
			patch.GSTCodeBookkeeper = &code
		}
	}
	if r.StatusBookkeeper != nil {
		status := domain.TransactionStatus(*r.StatusBookkeeper)
		patch.StatusBookkeeper = &status
	}
	if r.ModuleRouting != nil {
		if *r.ModuleRouting == "" {
			patch.ClearModuleRouting = true
		} else {
			routing := domain.ModuleRouting(*r.ModuleRouting)
			patch.ModuleRouting = &routing
		}
	}
	return patch
}

// BulkUpdateResponse reports how many transactions a bulk update touched.
type BulkUpdateResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

package pgsql

import (
	"strconv"
	"strings"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

// filterBuilder assembles a WHERE clause from typed predicates. Values are
// always bound as positional parameters; no caller-provided value ever reaches
// the SQL text itself.
type filterBuilder struct {
	clauses []string
	args    []any
}

// add appends one predicate. Each "?" in the condition is replaced with the
// next positional placeholder and its value is bound.
func (b *filterBuilder) add(condition string, values ...any) {
	for _, v := range values {
		b.args = append(b.args, v)
		condition = strings.Replace(condition, "?", "$"+strconv.Itoa(len(b.args)), 1)
	}
	b.clauses = append(b.clauses, condition)
}

// bind registers an extra bound value outside the predicate list (cursor
// boundaries, limits) and returns its placeholder.
func (b *filterBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// whereClause renders the accumulated predicates, or an empty string when
// there are none.
func (b *filterBuilder) whereClause() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.clauses, " AND ")
}

// applyTransactionFilter adds the list-endpoint predicates. Columns are
// prefixed with the "t" table alias.
func applyTransactionFilter(b *filterBuilder, f domain.TransactionFilter) {
	if f.ClientID != nil {
		b.add("t.client_id = ?", *f.ClientID)
	}
	if f.JobID != nil {
		b.add("t.job_id = ?", *f.JobID)
	}
	if f.ModuleInstanceID != nil {
		b.add("t.module_instance_id = ?", *f.ModuleInstanceID)
	}
	if f.DateFrom != nil {
		b.add("t.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		b.add("t.date <= ?", *f.DateTo)
	}
	if f.Status != nil {
		b.add("t.status_bookkeeper = ?", string(*f.Status))
	}
	if f.Category != nil {
		b.add("t.category_bookkeeper = ?", *f.Category)
	}
	if f.Source != nil {
		b.add("t.source = ?", string(*f.Source))
	}
	if f.ModuleRouting != nil {
		b.add("t.module_routing = ?", string(*f.ModuleRouting))
	}
	if f.IsDuplicate != nil {
		b.add("t.is_duplicate = ?", *f.IsDuplicate)
	}
	if f.IsLateReceipt != nil {
		b.add("t.is_late_receipt = ?", *f.IsLateReceipt)
	}
	if f.HasAttachment != nil {
		if *f.HasAttachment {
			b.add("EXISTS (SELECT 1 FROM transaction_attachments a WHERE a.transaction_id = t.transaction_id)")
		} else {
			b.add("NOT EXISTS (SELECT 1 FROM transaction_attachments a WHERE a.transaction_id = t.transaction_id)")
		}
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		b.add("(t.payee_raw ILIKE ? OR t.description_raw ILIKE ? OR t.notes_client ILIKE ? OR t.notes_bookkeeper ILIKE ?)",
			pattern, pattern, pattern, pattern)
	}
}

// applyBulkCriteria adds the bulk-update target predicates. Columns are
// unprefixed for use in UPDATE and row-locking SELECT statements.
func applyBulkCriteria(b *filterBuilder, c domain.BulkCriteria) {
	if c.ClientID != nil {
		b.add("client_id = ?", *c.ClientID)
	}
	if len(c.TransactionIDs) > 0 {
		b.add("transaction_id = ANY(?)", c.TransactionIDs)
	}
	if c.Status != nil {
		b.add("status_bookkeeper = ?", string(*c.Status))
	}
	if c.Category != nil {
		b.add("category_bookkeeper = ?", *c.Category)
	}
	if c.DateFrom != nil {
		b.add("date >= ?", *c.DateFrom)
	}
	if c.DateTo != nil {
		b.add("date <= ?", *c.DateTo)
	}
}

package pgsql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

func TestFilterBuilder_Empty(t *testing.T) {
	b := &filterBuilder{}
	applyTransactionFilter(b, domain.TransactionFilter{})

	assert.Empty(t, b.whereClause(), "empty filter should produce no WHERE clause")
	assert.Empty(t, b.args)
}

func TestFilterBuilder_ValuesAreAlwaysBound(t *testing.T) {
	clientID := "client-1"
	search := "'; DROP TABLE transactions; --"
	status := domain.StatusReviewed

	b := &filterBuilder{}
	applyTransactionFilter(b, domain.TransactionFilter{
		ClientID: &clientID,
		Status:   &status,
		Search:   &search,
	})

	where := b.whereClause()
	assert.Contains(t, where, "t.client_id = $1")
	assert.Contains(t, where, "t.status_bookkeeper = $2")
	assert.Contains(t, where, "t.payee_raw ILIKE $3")
	assert.Contains(t, where, "t.notes_bookkeeper ILIKE $6")

	// The raw search string never appears in the SQL text; it is bound.
	assert.NotContains(t, where, "DROP TABLE")
	assert.Equal(t, []any{"client-1", "REVIEWED", "%" + search + "%", "%" + search + "%", "%" + search + "%", "%" + search + "%"}, b.args)
}

func TestFilterBuilder_AttachmentPresence(t *testing.T) {
	has := true
	b := &filterBuilder{}
	applyTransactionFilter(b, domain.TransactionFilter{HasAttachment: &has})
	assert.Contains(t, b.whereClause(), "EXISTS (SELECT 1 FROM transaction_attachments")
	assert.Empty(t, b.args, "presence check binds no values")

	hasNot := false
	b2 := &filterBuilder{}
	applyTransactionFilter(b2, domain.TransactionFilter{HasAttachment: &hasNot})
	assert.Contains(t, b2.whereClause(), "NOT EXISTS (SELECT 1 FROM transaction_attachments")
}

func TestFilterBuilder_BulkCriteria(t *testing.T) {
	clientID := "client-9"
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	b := &filterBuilder{}
	applyBulkCriteria(b, domain.BulkCriteria{
		ClientID:       &clientID,
		TransactionIDs: []string{"txn-1", "txn-2"},
		DateFrom:       &from,
		DateTo:         &to,
	})

	where := b.whereClause()
	assert.Equal(t, "WHERE client_id = $1 AND transaction_id = ANY($2) AND date >= $3 AND date <= $4", where)
	assert.Len(t, b.args, 4)
	assert.Equal(t, []string{"txn-1", "txn-2"}, b.args[1])
}

func TestFilterBuilder_Bind(t *testing.T) {
	b := &filterBuilder{}
	b.add("client_id = ?", "c-1")
	placeholder := b.bind(42)

	assert.Equal(t, "$2", placeholder)
	assert.Equal(t, []any{"c-1", 42}, b.args)
	assert.Equal(t, "WHERE client_id = $1", b.whereClause(), "bind must not add a clause")
}

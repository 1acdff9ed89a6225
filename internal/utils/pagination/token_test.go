package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2024, 8, 15, 14, 30, 45, 123456789, time.UTC)
	id := "7e0dbd8c-15c7-44c0-a2d2-58c0cf2b5e44"

	token := EncodeCursor(createdAt, id)
	assert.NotEmpty(t, token, "Cursor should not be empty")

	decodedCreatedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// Test case 2: Current time values
	now := time.Now().UTC()
	nowToken := EncodeCursor(now, "txn-1")
	decodedNow, decodedNowID, err := DecodeCursor(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
	assert.Equal(t, "txn-1", decodedNowID)
}

func TestDecodeCursorError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	_, _, err = DecodeCursor("MjAyMy0wNS0xNVQwMDowMDowMFo=") // no "|id" part
	assert.Error(t, err, "Should return an error for invalid cursor format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid timestamp
	badTime := EncodeCursor(time.Time{}, "ignored")
	_, _, err = DecodeCursor(badTime)
	assert.NoError(t, err, "Zero time is still a parseable RFC3339 value")

	_, _, err = DecodeCursor("bm90YXRpbWV8dHhuLTE=") // "notatime|txn-1"
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention time parsing issue")
}

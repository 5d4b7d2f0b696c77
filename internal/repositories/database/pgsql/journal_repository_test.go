package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReversalInsertAssignsEntryNumber(t *testing.T) {
	// journal_entries enforces (status = 'DRAFT') = (entry_number IS NULL) on
	// every row, and the reversing entry is born POSTED. The sequence number
	// must therefore be assigned by the INSERT itself; a follow-up UPDATE
	// would never run because the row fails the check on insert.
	assert.Contains(t, insertReversalEntryQuery, "nextval('journal_entry_number_seq')")
	assert.Contains(t, insertReversalEntryQuery, "RETURNING entry_number")

	// entry_number is the only column not bound from the model: 13 columns,
	// 12 placeholders.
	assert.Equal(t, 13, len(strings.Split(entryColumns, ",")))
	assert.Contains(t, insertReversalEntryQuery, "$12")
	assert.NotContains(t, insertReversalEntryQuery, "$13")
}

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePrecedence(t *testing.T) {
	base := Table{
		"J1": {JobsiteID: "J1", QBOCustomerID: "10", QBODisplayName: "From API"},
		"J2": {JobsiteID: "J2", QBOCustomerID: "20"},
	}
	overrides := Table{
		"J1": {JobsiteID: "J1", QBOCustomerID: "99", QBODisplayName: "Manual"},
		"J3": {JobsiteID: "J3", QBOCustomerID: "30"},
	}

	merged := Merge(base, overrides)
	require.Len(t, merged, 3)

	// The override replaces the base entry wholesale.
	assert.Equal(t, "99", merged["J1"].QBOCustomerID)
	assert.Equal(t, "Manual", merged["J1"].QBODisplayName)
	assert.Equal(t, "20", merged["J2"].QBOCustomerID)
	assert.Equal(t, "30", merged["J3"].QBOCustomerID)
}

func TestLookup(t *testing.T) {
	table := Table{"J1": {JobsiteID: "J1", QBOCustomerID: "10"}}

	m, ok := Lookup(table, "J1")
	require.True(t, ok)
	assert.Equal(t, "10", m.QBOCustomerID)

	_, ok = Lookup(table, "missing")
	assert.False(t, ok)

	assert.Equal(t, "10", QBOCustomerID(table, "J1"))
	assert.Empty(t, QBOCustomerID(table, "missing"))
}

func TestFindUnmapped(t *testing.T) {
	table := Table{"J2": {JobsiteID: "J2", QBOCustomerID: "20"}}

	unmapped := FindUnmapped([]string{"J3", "J2", "J1"}, table)
	assert.Equal(t, []string{"J3", "J1"}, unmapped, "input order preserved")

	assert.Empty(t, FindUnmapped(nil, table))
}

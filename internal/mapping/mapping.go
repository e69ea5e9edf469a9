// Package mapping resolves LMN jobsite IDs to QuickBooks customer IDs.
//
// Mappings come from up to three sources: the LMN job-matching API as a base
// layer, with database overrides (or a CSV file when no database is
// configured) layered on top. Overrides replace the base entry for a jobsite
// wholesale.
package mapping

// Mapping links an LMN jobsite to a QuickBooks Online customer.
type Mapping struct {
	JobsiteID      string
	QBOCustomerID  string
	QBODisplayName string
	Notes          string
}

// Table is a full mapping keyed by jobsite ID.
type Table map[string]Mapping

// Merge folds mapping layers left to right. A later layer's entry replaces an
// earlier one for the same jobsite ID.
func Merge(layers ...Table) Table {
	merged := make(Table)
	for _, layer := range layers {
		for jobsiteID, m := range layer {
			merged[jobsiteID] = m
		}
	}
	return merged
}

// Lookup returns the mapping for a jobsite ID, if present.
func Lookup(table Table, jobsiteID string) (Mapping, bool) {
	m, ok := table[jobsiteID]
	return m, ok
}

// QBOCustomerID returns the mapped customer ID for a jobsite, or "" when
// the jobsite is unmapped.
func QBOCustomerID(table Table, jobsiteID string) string {
	return table[jobsiteID].QBOCustomerID
}

// FindUnmapped returns the jobsite IDs absent from the table, preserving
// input order.
func FindUnmapped(jobsiteIDs []string, table Table) []string {
	var unmapped []string
	for _, id := range jobsiteIDs {
		if _, ok := table[id]; !ok {
			unmapped = append(unmapped, id)
		}
	}
	return unmapped
}

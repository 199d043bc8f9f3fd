// Package merge coalesces duplicate product records into one row per
// identifier.
package merge

import "catmerge/pkg/rowset"

// Merge groups rows by the identifier field and reduces each group to a
// single row. For every field the merged value is the first non-missing value
// in original row order; a field missing from every row of a group stays
// missing. Fields are reduced independently, so conflicting values never
// raise an error: the first one wins.
//
// Rows with a missing identifier cannot be grouped and are dropped; the
// second return value is how many were. Output rows come in first-seen
// identifier order, one per distinct identifier.
func Merge(rows []rowset.Row, identifier string, fields []string) ([]rowset.Row, int) {
	merged := make([]rowset.Row, 0)
	byID := make(map[string]rowset.Row)
	dropped := 0

	for _, row := range rows {
		id, ok := row.Get(identifier)
		if !ok {
			dropped++
			continue
		}

		acc, ok := byID[id]
		if !ok {
			acc = rowset.Row{identifier: id}
			byID[id] = acc
			merged = append(merged, acc)
		}

		for _, f := range fields {
			if _, done := acc.Get(f); done {
				continue
			}
			if v, ok := row.Get(f); ok {
				acc[f] = v
			}
		}
	}

	return merged, dropped
}

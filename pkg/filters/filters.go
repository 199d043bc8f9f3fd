// Package filters derives the "active filters" summary field from free-text
// filter columns and boolean-flag filter columns.
package filters

import (
	"strings"

	"catmerge/pkg/rowset"
	"catmerge/pkg/schema"
)

// Extractor computes the derived filters value for rows. Boolean-flag column
// discovery is a pure function of a column universe, so results are memoized
// per distinct universe rather than re-scanned per row.
type Extractor struct {
	rules *schema.FilterRules

	flagCols map[string][]string
}

// New creates an extractor for the given rules.
func New(rules *schema.FilterRules) *Extractor {
	return &Extractor{
		rules:    rules,
		flagCols: make(map[string][]string),
	}
}

// Extract builds the filters summary for one row against the column universe
// of the row's originating table. It returns false when no filter is active,
// leaving the derived field missing.
//
// Free-text filter columns contribute their value verbatim, in configured
// order. Boolean-flag columns contribute a label (the column name with the
// configured prefix stripped) when the row's value is affirmative; a missing
// value is simply non-affirmative.
func (e *Extractor) Extract(row rowset.Row, universe []string) (string, bool) {
	var active []string

	for _, col := range e.rules.Direct {
		v, ok := row.Get(col)
		if ok && strings.TrimSpace(v) != "" {
			active = append(active, v)
		}
	}

	for _, col := range e.flagColumns(universe) {
		v, ok := row.Get(col)
		if ok && e.rules.Affirmative(v) {
			active = append(active, strings.ReplaceAll(col, e.rules.StripPrefix, ""))
		}
	}

	if len(active) == 0 {
		return "", false
	}
	return strings.Join(active, ", "), true
}

// flagColumns returns the boolean-flag filter columns of a universe: every
// column whose name contains the marker phrase (case-insensitive) and is not
// one of the direct free-text columns. Order follows the universe.
func (e *Extractor) flagColumns(universe []string) []string {
	key := strings.Join(universe, "\x1f")
	if cols, ok := e.flagCols[key]; ok {
		return cols
	}

	marker := strings.ToLower(e.rules.Marker)
	cols := []string{}
	for _, c := range universe {
		if !strings.Contains(strings.ToLower(c), marker) {
			continue
		}
		if e.isDirect(c) {
			continue
		}
		cols = append(cols, c)
	}

	e.flagCols[key] = cols
	return cols
}

func (e *Extractor) isDirect(col string) bool {
	for _, d := range e.rules.Direct {
		if col == d {
			return true
		}
	}
	return false
}

// Package rowset provides the in-memory table primitives the merge engine
// operates on: rows with first-class missing values, loaded source tables,
// and vertical concatenation with column-set union.
package rowset

// Row maps a column name to a cell value. A column absent from the map is
// missing, which is distinct from a present empty string.
type Row map[string]string

// Get returns the value for column col and whether it is present.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is one loaded source file: its name, its header columns in file
// order, and its rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// RowSet is the vertical concatenation of one or more source tables. Columns
// is the union of all source columns in first-seen order. Origins records,
// per row, the column set of the table the row came from; rows from the same
// table share the same slice.
type RowSet struct {
	Columns []string
	Rows    []Row
	Origins [][]string
}

// Len returns the number of rows.
func (rs *RowSet) Len() int { return len(rs.Rows) }

// HasColumn reports whether col is part of the column universe.
func (rs *RowSet) HasColumn(col string) bool {
	for _, c := range rs.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Concat stacks tables vertically. Row order is table order then row order
// within each table. A column missing from a row's source table stays missing
// for that row; no empty-string fill happens. The operation is associative
// and, up to column ordering, commutative in table order.
func Concat(tables []Table) *RowSet {
	rs := &RowSet{}
	seen := make(map[string]struct{})

	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			rs.Columns = append(rs.Columns, c)
		}
		for _, row := range t.Rows {
			rs.Rows = append(rs.Rows, row)
			rs.Origins = append(rs.Origins, t.Columns)
		}
	}

	return rs
}

// Package reconcile projects a heterogeneous row-set onto the canonical
// schema using the priority-ordered alias map.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"catmerge/pkg/rowset"
	"catmerge/pkg/schema"
)

// ErrIdentifierMissing is returned when the identifier column is absent from
// the whole dataset. Without it duplicates cannot be merged, so the run
// aborts with no output.
var ErrIdentifierMissing = errors.New("identifier column not found in dataset")

// Binding records which source column (if any) was chosen for a canonical
// field. Source is empty when no alias matched anything in the dataset.
type Binding struct {
	Field  string
	Source string
}

// Bound reports whether the field found a source column.
func (b Binding) Bound() bool { return b.Source != "" }

// Reconciler maps source columns onto canonical fields.
type Reconciler struct {
	log logrus.FieldLogger
	cfg *schema.Config
}

// New creates a reconciler for the given schema.
func New(log logrus.FieldLogger, cfg *schema.Config) *Reconciler {
	return &Reconciler{log: log, cfg: cfg}
}

// Reconcile produces canonical rows from rs. The identifier is copied
// verbatim; every other canonical field is filled from the first alias found
// in the column universe (dataset scope) or in each row's originating table
// (row scope). Row order is preserved, as are the per-row origin column sets.
func (r *Reconciler) Reconcile(rs *rowset.RowSet) (*rowset.RowSet, []Binding, error) {
	if !rs.HasColumn(r.cfg.Identifier) {
		return nil, nil, fmt.Errorf("%w: %q", ErrIdentifierMissing, r.cfg.Identifier)
	}

	bindings := r.resolve(rs.Columns)
	for _, b := range bindings {
		if b.Bound() {
			r.log.WithField("source", b.Source).Infof("Mapped field %q", b.Field)
		} else {
			r.log.Warnf("Field not found: %q", b.Field)
		}
	}

	out := &rowset.RowSet{
		Columns: append([]string{r.cfg.Identifier}, r.cfg.FieldNames()...),
		Rows:    make([]rowset.Row, 0, rs.Len()),
		Origins: rs.Origins,
	}

	perRow := r.cfg.AliasScope == schema.ScopeRow

	for i, src := range rs.Rows {
		row := make(rowset.Row, len(out.Columns))
		if id, ok := src.Get(r.cfg.Identifier); ok {
			row[r.cfg.Identifier] = id
		}

		fieldBindings := bindings
		if perRow {
			fieldBindings = r.resolve(rs.Origins[i])
		}
		for _, b := range fieldBindings {
			if !b.Bound() {
				continue
			}
			if v, ok := src.Get(b.Source); ok {
				row[b.Field] = v
			}
		}

		out.Rows = append(out.Rows, row)
	}

	return out, bindings, nil
}

// resolve picks, for every canonical field, the first alias present in the
// given column set.
func (r *Reconciler) resolve(columns []string) []Binding {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	bindings := make([]Binding, 0, len(r.cfg.Fields))
	for _, m := range r.cfg.Fields {
		b := Binding{Field: m.Field}
		for _, alias := range m.Aliases {
			if _, ok := present[alias]; ok {
				b.Source = alias
				break
			}
		}
		bindings = append(bindings, b)
	}

	return bindings
}

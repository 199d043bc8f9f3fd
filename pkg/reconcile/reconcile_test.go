package reconcile

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catmerge/pkg/rowset"
	"catmerge/pkg/schema"
)

func testSchema(scope string) *schema.Config {
	cfg := &schema.Config{
		Identifier: "Артикул",
		AliasScope: scope,
		Fields: []schema.FieldMapping{
			{Field: "Производитель", Aliases: []string{"Бренд", "Производитель"}},
			{Field: "Цена", Aliases: []string{"Цена", "РРЦ"}},
		},
	}
	cfg.Filters.SetDefaults()
	return cfg
}

func TestReconcileAliasPriority(t *testing.T) {
	tests := []struct {
		name       string
		columns    []string
		row        rowset.Row
		wantSource string
		wantValue  string
	}{
		{
			name:       "first alias wins when both present",
			columns:    []string{"Артикул", "Бренд", "Производитель"},
			row:        rowset.Row{"Артикул": "X1", "Бренд": "Midea", "Производитель": "Мидея"},
			wantSource: "Бренд",
			wantValue:  "Midea",
		},
		{
			name:       "second alias used when first absent",
			columns:    []string{"Артикул", "Производитель"},
			row:        rowset.Row{"Артикул": "X1", "Производитель": "Мидея"},
			wantSource: "Производитель",
			wantValue:  "Мидея",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := rowset.Concat([]rowset.Table{
				{Name: "a.xlsx", Columns: tt.columns, Rows: []rowset.Row{tt.row}},
			})

			r := New(logrus.New(), testSchema(schema.ScopeDataset))
			out, bindings, err := r.Reconcile(rs)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSource, bindings[0].Source)
			assert.Equal(t, tt.wantValue, out.Rows[0]["Производитель"])
		})
	}
}

func TestReconcileMissingIdentifierFails(t *testing.T) {
	rs := rowset.Concat([]rowset.Table{
		{Name: "a.xlsx", Columns: []string{"Бренд"}, Rows: []rowset.Row{{"Бренд": "Midea"}}},
	})

	r := New(logrus.New(), testSchema(schema.ScopeDataset))
	out, _, err := r.Reconcile(rs)

	assert.ErrorIs(t, err, ErrIdentifierMissing)
	assert.Nil(t, out)
}

func TestReconcileUnmappedFieldStaysMissing(t *testing.T) {
	rs := rowset.Concat([]rowset.Table{
		{
			Name:    "a.xlsx",
			Columns: []string{"Артикул", "Бренд"},
			Rows:    []rowset.Row{{"Артикул": "X1", "Бренд": "Midea"}},
		},
	})

	r := New(logrus.New(), testSchema(schema.ScopeDataset))
	out, bindings, err := r.Reconcile(rs)
	require.NoError(t, err)

	require.Len(t, bindings, 2)
	assert.False(t, bindings[1].Bound())

	_, ok := out.Rows[0].Get("Цена")
	assert.False(t, ok)
}

// Dataset-scope resolution binds one alias globally: a file carrying the
// field only under a lower-priority alias ends up with the field missing.
func TestReconcileDatasetScopeAcrossFiles(t *testing.T) {
	rs := rowset.Concat([]rowset.Table{
		{
			Name:    "a.xlsx",
			Columns: []string{"Артикул", "Бренд"},
			Rows:    []rowset.Row{{"Артикул": "X1", "Бренд": "Midea"}},
		},
		{
			Name:    "b.xlsx",
			Columns: []string{"Артикул", "Производитель"},
			Rows:    []rowset.Row{{"Артикул": "X2", "Производитель": "Haier"}},
		},
	})

	r := New(logrus.New(), testSchema(schema.ScopeDataset))
	out, bindings, err := r.Reconcile(rs)
	require.NoError(t, err)

	assert.Equal(t, "Бренд", bindings[0].Source)
	assert.Equal(t, "Midea", out.Rows[0]["Производитель"])

	_, ok := out.Rows[1].Get("Производитель")
	assert.False(t, ok, "row from the file using the lower-priority alias loses the value")
}

func TestReconcileRowScopeAcrossFiles(t *testing.T) {
	rs := rowset.Concat([]rowset.Table{
		{
			Name:    "a.xlsx",
			Columns: []string{"Артикул", "Бренд"},
			Rows:    []rowset.Row{{"Артикул": "X1", "Бренд": "Midea"}},
		},
		{
			Name:    "b.xlsx",
			Columns: []string{"Артикул", "Производитель"},
			Rows:    []rowset.Row{{"Артикул": "X2", "Производитель": "Haier"}},
		},
	})

	r := New(logrus.New(), testSchema(schema.ScopeRow))
	out, _, err := r.Reconcile(rs)
	require.NoError(t, err)

	assert.Equal(t, "Midea", out.Rows[0]["Производитель"])
	assert.Equal(t, "Haier", out.Rows[1]["Производитель"])
}

func TestReconcilePreservesRowOrderAndOrigins(t *testing.T) {
	a := rowset.Table{
		Name:    "a.xlsx",
		Columns: []string{"Артикул"},
		Rows:    []rowset.Row{{"Артикул": "1"}, {"Артикул": "2"}},
	}
	rs := rowset.Concat([]rowset.Table{a})

	r := New(logrus.New(), testSchema(schema.ScopeDataset))
	out, _, err := r.Reconcile(rs)
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "1", out.Rows[0]["Артикул"])
	assert.Equal(t, "2", out.Rows[1]["Артикул"])
	assert.Equal(t, rs.Origins, out.Origins)
}

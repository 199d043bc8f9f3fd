// Package testutil provides shared test fixtures: throwaway xlsx workbooks
// and source tables in the shapes the engine consumes.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catmerge/pkg/rowset"
)

// WriteWorkbook writes an xlsx file named name under dir, one sheet, with the
// given cell grid (first line is the header). Returns the full path.
func WriteWorkbook(t *testing.T, dir, name string, cells [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, line := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)

		row := line
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))

	return path
}

// Table builds a source table. Row maps may omit columns; omitted means
// missing.
func Table(name string, columns []string, rows ...rowset.Row) rowset.Table {
	return rowset.Table{Name: name, Columns: columns, Rows: rows}
}

package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"catmerge/pkg/rowset"
)

const outputSheet = "Sheet1"

// Write persists rows to an xlsx file at path. The header is exactly columns,
// in order; missing values become empty cells; no row-number column is
// written. A save failure usually means the file is open elsewhere, so the
// error says to close it and retry.
func Write(path string, columns []string, rows []rowset.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(outputSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		line := make([]interface{}, len(columns))
		for j, c := range columns {
			if v, ok := row.Get(c); ok {
				line[j] = v
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(outputSheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %q, close the file and retry: %w", path, err)
	}

	return nil
}

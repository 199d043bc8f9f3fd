// Package xlsx loads source catalog spreadsheets into row-sets and persists
// the merged catalog back to a spreadsheet file.
package xlsx

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catmerge/pkg/rowset"
)

// LoadDir loads every .xlsx file in dir into a table. The first row of each
// file's first sheet is the header; header names are trimmed of surrounding
// whitespace. Blank cells load as missing. A file that fails to parse is
// logged and skipped; if nothing loads, ErrNoSources is returned.
func LoadDir(log logrus.FieldLogger, dir string) ([]rowset.Table, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoSources, dir)
	}

	log.WithField("count", len(paths)).Info("Files found")

	tables := make([]rowset.Table, 0, len(paths))
	for _, path := range paths {
		t, err := loadFile(path)
		if err != nil {
			log.WithError(err).WithField("file", path).Error("Skipping source file")
			continue
		}

		log.WithFields(logrus.Fields{
			"file": path,
			"rows": len(t.Rows),
		}).Info("Loaded source file")
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoSources, dir)
	}

	return tables, nil
}

func loadFile(path string) (rowset.Table, error) {
	t := rowset.Table{Name: filepath.Base(path)}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return t, ErrEmptySheet
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return t, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return t, ErrEmptySheet
	}

	// Header: trimmed names; blank header cells carry no data column.
	var keep []int
	for i, name := range cells[0] {
		if n := strings.TrimSpace(name); n != "" {
			t.Columns = append(t.Columns, n)
			keep = append(keep, i)
		}
	}
	if len(t.Columns) == 0 {
		return t, ErrEmptySheet
	}

	for _, line := range cells[1:] {
		row := make(rowset.Row, len(keep))
		for j, idx := range keep {
			if idx < len(line) && line[idx] != "" {
				row[t.Columns[j]] = line[idx]
			}
		}
		// Fully blank lines are padding, not records.
		if len(row) > 0 {
			t.Rows = append(t.Rows, row)
		}
	}

	return t, nil
}

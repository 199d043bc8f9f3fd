package xlsx

import "errors"

// Package-specific errors
var (
	// ErrNoSources is returned when the input directory yields no loadable
	// source files.
	ErrNoSources = errors.New("no loadable xlsx files found")
	// ErrEmptySheet is returned for a workbook whose first sheet has no
	// header row.
	ErrEmptySheet = errors.New("workbook has no header row")
)

// Package pipeline orchestrates one catalog run: load source spreadsheets,
// reconcile columns, extract filters, merge duplicates, sort, persist.
package pipeline

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catmerge/pkg/filters"
	"catmerge/pkg/merge"
	"catmerge/pkg/reconcile"
	"catmerge/pkg/rowset"
	"catmerge/pkg/xlsx"
)

// Service runs the catalog pipeline.
type Service struct {
	log logrus.FieldLogger
	cfg *Config
}

// NewService creates a pipeline service from a validated configuration.
func NewService(log logrus.FieldLogger, cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Service{
		log: log.WithField("run_id", uuid.New().String()),
		cfg: cfg,
	}, nil
}

// Run executes one full pass: load, build, write. Structural problems (no
// loadable sources, identifier column absent) abort with an error and no
// output file; a write failure is returned with a close-and-retry hint.
func (s *Service) Run() error {
	tables, err := xlsx.LoadDir(s.log, s.cfg.InputDir)
	if err != nil {
		return err
	}

	columns, rows, err := s.Build(tables)
	if err != nil {
		return err
	}

	if err := xlsx.Write(s.cfg.Output, columns, rows); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"output": s.cfg.Output,
		"items":  len(rows),
	}).Info("Catalog saved")

	return nil
}

// Build turns loaded source tables into the final catalog: the output header
// and one merged, sorted row per distinct product identifier.
func (s *Service) Build(tables []rowset.Table) ([]string, []rowset.Row, error) {
	s.log.Info("Building unified catalog")

	rs := rowset.Concat(tables)

	canonical, _, err := reconcile.New(s.log, &s.cfg.Schema).Reconcile(rs)
	if err != nil {
		return nil, nil, err
	}

	// Filters are read from the raw source row against its originating
	// table's columns: a column blank in this file differs from a column the
	// file never had.
	ex := filters.New(&s.cfg.Schema.Filters)
	for i, row := range canonical.Rows {
		if v, ok := ex.Extract(rs.Rows[i], rs.Origins[i]); ok {
			row[s.cfg.Schema.Filters.Output] = v
		}
	}

	s.log.Info("Merging duplicates and filling gaps")

	fields := append(s.cfg.Schema.FieldNames(), s.cfg.Schema.Filters.Output)
	merged, dropped := merge.Merge(canonical.Rows, s.cfg.Schema.Identifier, fields)
	if dropped > 0 {
		s.log.WithField("rows", dropped).Warn("Dropped rows with missing identifier")
	}

	s.sortRows(merged)

	s.log.WithField("items", len(merged)).Info("Unique items in catalog")

	return s.cfg.Schema.OutputColumns(), merged, nil
}

// sortRows orders the catalog by the configured sort field ascending, rows
// with the field missing last. Equal keys keep their pre-sort order.
func (s *Service) sortRows(rows []rowset.Row) {
	key := s.cfg.Schema.SortBy
	if key == "" {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := rows[i].Get(key)
		vj, okj := rows[j].Get(key)

		if oki != okj {
			return oki
		}
		return oki && vi < vj
	})
}

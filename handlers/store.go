package handlers

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/op/go-logging"

	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/analysis"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/config"
	"github.com/GerediNIYIBIGIRA/Rwanda-Financial-Inclusion-Analysis/dataset"
)

var log = logging.MustGetLogger("log")

// Snapshot is one immutable generation of the dashboard's data: the
// loaded source tables, the prepared merged table and the distinct
// province list for the filter controls. Requests read whichever
// snapshot is current when they arrive; a reload swaps in a new one
// without disturbing in-flight readers.
type Snapshot struct {
	Tables    *dataset.Tables
	Merged    *analysis.MergedTable
	Provinces []string
}

// Store owns the current snapshot and knows how to rebuild it from the
// configured source.
type Store struct {
	source   dataset.Source
	snapshot atomic.Pointer[Snapshot]
}

func NewStore(source dataset.Source) *Store {
	return &Store{source: source}
}

// Load reads the source tables, prepares the merged dataset and swaps
// it in as the current snapshot. On failure the previous snapshot (if
// any) keeps serving.
func (s *Store) Load(ctx context.Context) error {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return err
	}
	merged, err := analysis.Prepare(tables)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	var provinces []string
	for _, r := range merged.Rows {
		if _, ok := seen[r.Province]; ok {
			continue
		}
		seen[r.Province] = struct{}{}
		provinces = append(provinces, r.Province)
	}
	sort.Strings(provinces)

	s.snapshot.Store(&Snapshot{Tables: tables, Merged: merged, Provinces: provinces})
	if config.ViewCache != nil {
		config.ClearViewCache()
	}
	log.Infof("Snapshot ready: %d merged rows across %d provinces", len(merged.Rows), len(provinces))
	return nil
}

// Snapshot returns the current data generation, or nil before the
// first successful Load.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// store is the package-level handle the handlers read, set once from
// main during startup.
var store *Store

func Init(s *Store) {
	store = s
}

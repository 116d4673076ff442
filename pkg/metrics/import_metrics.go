package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Per-entity counters for bulk import runs. Labels carry the entity name
// ("contractors" or "insurance").
var (
	ImportRowsImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilops_import_rows_imported_total",
		Help: "Rows successfully persisted by bulk import runs.",
	}, []string{"entity"})

	ImportRowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilops_import_rows_skipped_total",
		Help: "Rows skipped as duplicates by bulk import runs.",
	}, []string{"entity"})

	ImportRowsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilops_import_rows_failed_total",
		Help: "Rows rejected by validation or storage during bulk import runs.",
	}, []string{"entity"})

	ImportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilops_import_runs_total",
		Help: "Completed bulk import runs.",
	}, []string{"entity", "outcome"})
)

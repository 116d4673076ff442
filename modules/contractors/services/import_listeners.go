package services

import (
	"github.com/sirupsen/logrus"

	"github.com/facilops/facilops/pkg/eventbus"
	"github.com/facilops/facilops/pkg/metrics"
)

// RegisterImportListeners attaches the module's import event consumers.
// Completed runs feed the Prometheus counters and the log; progress is
// logged at debug level.
func RegisterImportListeners(bus eventbus.EventBus, log *logrus.Logger) {
	l := &importListeners{log: log}
	bus.Subscribe(l.onProgress)
	bus.Subscribe(l.onCompleted)
}

type importListeners struct {
	log *logrus.Logger
}

func (l *importListeners) onProgress(e *ImportProgressEvent) {
	if l.log == nil {
		return
	}
	l.log.WithFields(logrus.Fields{
		"entity":  e.Entity,
		"percent": e.Percent,
	}).Debug("import progress")
}

func (l *importListeners) onCompleted(e *ImportCompletedEvent) {
	metrics.ImportRowsImported.WithLabelValues(e.Entity).Add(float64(e.Result.Imported))
	metrics.ImportRowsSkipped.WithLabelValues(e.Entity).Add(float64(e.Result.DuplicatesSkipped))
	metrics.ImportRowsFailed.WithLabelValues(e.Entity).Add(float64(len(e.Result.Errors)))

	outcome := "failed"
	if e.Result.Success() {
		outcome = "success"
	}
	metrics.ImportRuns.WithLabelValues(e.Entity, outcome).Inc()

	if l.log == nil {
		return
	}
	l.log.WithFields(logrus.Fields{
		"entity":             e.Entity,
		"imported":           e.Result.Imported,
		"duplicates_skipped": e.Result.DuplicatesSkipped,
		"errors":             len(e.Result.Errors),
		"acting_user":        e.ActingUser,
		"outcome":            outcome,
	}).Info("import run completed")
}

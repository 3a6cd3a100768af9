// Package metrics exposes runtime counters via expvar.
package metrics

import "expvar"

var (
	AnalysesTotal          = expvar.NewInt("analyses_total")
	ValidationFailures     = expvar.NewInt("validation_failures")
	ClassificationFailures = expvar.NewInt("classification_failures")
	InsertFailures         = expvar.NewInt("insert_failures")
	ArchiveFailures        = expvar.NewInt("archive_failures")
	ObjectListFailures     = expvar.NewInt("object_list_failures")
)

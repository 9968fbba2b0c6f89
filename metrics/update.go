package metrics

import "sync/atomic"

// SyncMetrics counts one Rakuten ingest run.
type SyncMetrics struct {
	ProcessedCount atomic.Int32
	UpsertedCount  atomic.Int32
	SkippedCount   atomic.Int32
	ErroredCount   atomic.Int32
}

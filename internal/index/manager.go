// Package index owns the lifecycle of the in-memory search index: wholesale
// rebuilds, atomic swaps, and the triggers (filesystem events, periodic
// schedule) that cause them.
package index

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/docserve/internal/logfields"
	"git.home.luguber.info/inful/docserve/internal/metrics"
	"git.home.luguber.info/inful/docserve/internal/search"
)

// Manager holds the current search index. Queries read a snapshot; rebuilds
// swap the whole record slice, never mutating it in place.
type Manager struct {
	indexer  *search.Indexer
	recorder metrics.Recorder

	mu      sync.RWMutex
	records []search.Record
}

// NewManager creates a Manager. recorder may be nil.
func NewManager(indexer *search.Indexer, recorder metrics.Recorder) *Manager {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Manager{indexer: indexer, recorder: recorder}
}

// Rebuild builds a fresh index and swaps it in. On failure the previous
// index stays in place.
func (m *Manager) Rebuild(ctx context.Context) error {
	start := time.Now()
	records, err := m.indexer.BuildIndex(ctx)
	if err != nil {
		slog.Warn("Search index rebuild failed", logfields.Error(err))
		return err
	}

	m.mu.Lock()
	m.records = records
	m.mu.Unlock()

	d := time.Since(start)
	m.recorder.ObserveIndexBuildDuration(d)
	m.recorder.SetIndexRecords(len(records))
	slog.Info("Search index rebuilt",
		logfields.Count(len(records)),
		logfields.DurationMS(float64(d.Milliseconds())))
	return nil
}

// Records returns the current index snapshot.
func (m *Manager) Records() []search.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records
}

// Query runs a search over the current snapshot.
func (m *Manager) Query(rawQuery string) []search.Match {
	matches := search.Query(m.Records(), rawQuery)
	m.recorder.IncSearchQuery(len(matches) > 0)
	return matches
}

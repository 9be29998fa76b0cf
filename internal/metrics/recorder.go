// Package metrics defines the observability hooks for composition, index
// builds, search, and the HTTP surface.
package metrics

import "time"

// Recorder defines the metric hooks. Implementations may forward to
// Prometheus or drop everything (NoopRecorder), allowing optional injection.
type Recorder interface {
	ObserveComposeDuration(d time.Duration, success bool)
	ObserveIndexBuildDuration(d time.Duration)
	SetIndexRecords(n int)
	IncSearchQuery(matched bool)
	IncTreeExpansion()
	IncHTTPRequest(code int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveComposeDuration(time.Duration, bool) {}
func (NoopRecorder) ObserveIndexBuildDuration(time.Duration)    {}
func (NoopRecorder) SetIndexRecords(int)                        {}
func (NoopRecorder) IncSearchQuery(bool)                        {}
func (NoopRecorder) IncTreeExpansion()                          {}
func (NoopRecorder) IncHTTPRequest(int)                         {}

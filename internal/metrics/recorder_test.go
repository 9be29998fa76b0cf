package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveComposeDuration(time.Second, true)
	r.IncSearchQuery(false)
	r.IncHTTPRequest(200)
}

func TestPrometheusRecorder_RegistersAndCounts(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveComposeDuration(50*time.Millisecond, true)
	pr.ObserveIndexBuildDuration(time.Second)
	pr.SetIndexRecords(42)
	pr.IncSearchQuery(true)
	pr.IncSearchQuery(false)
	pr.IncTreeExpansion()
	pr.IncHTTPRequest(200)
	pr.IncHTTPRequest(404)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["docserve_compose_duration_seconds"])
	require.True(t, names["docserve_index_build_duration_seconds"])
	require.True(t, names["docserve_index_records"])
	require.True(t, names["docserve_search_queries_total"])
	require.True(t, names["docserve_tree_expansions_total"])
	require.True(t, names["docserve_http_requests_total"])
}

func TestPrometheusRecorder_NilRegistryGetsFreshOne(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	require.NotNil(t, pr.Handler())
}

package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesRunMetrics(t *testing.T) {
	IncRunStarted()
	IncRunCompleted()
	IncRunFailed("ANALYSIS_FAILED")
	ObserveRunDurationMs(1234)

	out := Render()
	for _, want := range []string{
		"resume_run_started_total",
		"resume_run_completed_total",
		"resume_run_failed_total",
		`resume_run_failures{kind="ANALYSIS_FAILED"}`,
		"resume_run_duration_ms_bucket",
		"resume_run_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count: got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("per-bucket counts: got %v", snap.counts)
	}
}

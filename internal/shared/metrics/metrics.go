package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	runStartedTotal   atomic.Uint64
	runCompletedTotal atomic.Uint64
	runFailedTotal    atomic.Uint64

	runDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})

	failedByKindMu sync.Mutex
	failedByKind   = map[string]uint64{}
)

// IncRunStarted increments the started counter.
func IncRunStarted() {
	runStartedTotal.Add(1)
}

// IncRunCompleted increments the completed counter.
func IncRunCompleted() {
	runCompletedTotal.Add(1)
}

// IncRunFailed increments the failed counter, tagged by failure kind.
func IncRunFailed(kind string) {
	runFailedTotal.Add(1)
	failedByKindMu.Lock()
	failedByKind[kind]++
	failedByKindMu.Unlock()
}

// ObserveRunDurationMs records a pipeline run duration in milliseconds.
func ObserveRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	runDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_run_started_total", "Total pipeline runs started", runStartedTotal.Load())
	writeCounter(&buf, "resume_run_completed_total", "Total pipeline runs completed", runCompletedTotal.Load())
	writeCounter(&buf, "resume_run_failed_total", "Total pipeline runs failed", runFailedTotal.Load())
	writeFailedByKind(&buf)
	writeHistogram(&buf, "resume_run_duration_ms", "Pipeline run duration in milliseconds", runDuration.Snapshot())
	return buf.String()
}

func writeFailedByKind(buf *bytes.Buffer) {
	failedByKindMu.Lock()
	kinds := make([]string, 0, len(failedByKind))
	for kind := range failedByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	fmt.Fprintf(buf, "# HELP resume_run_failures Pipeline run failures by kind\n")
	fmt.Fprintf(buf, "# TYPE resume_run_failures counter\n")
	for _, kind := range kinds {
		fmt.Fprintf(buf, "resume_run_failures{kind=%q} %d\n", kind, failedByKind[kind])
	}
	failedByKindMu.Unlock()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

package prometheus

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "biorxn"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestRegisterCounter_IncrementsAndScrapes(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterCounter("reactions_parsed_total", "help", "source", "status")
	vec.WithLabelValues("brenda", "ok").Inc()
	vec.WithLabelValues("brenda", "ok").Add(2)

	body := scrape(t, c)
	assert.Contains(t, body, `biorxn_reactions_parsed_total{source="brenda",status="ok"} 3`)
}

func TestRegisterCounter_DuplicateReturnsExisting(t *testing.T) {
	c := newTestCollector(t)

	a := c.RegisterCounter("dup_total", "help", "l")
	b := c.RegisterCounter("dup_total", "help", "l")
	a.WithLabelValues("x").Inc()
	b.WithLabelValues("x").Inc()

	assert.Contains(t, scrape(t, c), `biorxn_dup_total{l="x"} 2`)
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterGauge("queue_depth", "help", "queue")
	g := vec.WithLabelValues("main")
	g.Set(10)
	g.Inc()
	g.Dec()
	g.Add(5)
	g.Sub(3)

	assert.Contains(t, scrape(t, c), `biorxn_queue_depth{queue="main"} 12`)
}

func TestRegisterHistogram(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterHistogram("stage_seconds", "help", []float64{0.1, 1}, "stage")
	vec.WithLabelValues("filter").Observe(0.05)
	vec.WithLabelValues("filter").Observe(0.5)

	body := scrape(t, c)
	assert.Contains(t, body, `biorxn_stage_seconds_count{stage="filter"} 2`)
	assert.Contains(t, body, `biorxn_stage_seconds_bucket{stage="filter",le="0.1"} 1`)
}

func TestRegistrationFailureDegradesToNoop(t *testing.T) {
	c := newTestCollector(t)

	// Same name, conflicting label set: second registration fails.
	_ = c.RegisterCounter("conflict_total", "help", "a")
	bad := c.RegisterCounter("conflict_total", "other help", "b")

	assert.NotPanics(t, func() { bad.WithLabelValues("x").Inc() })
}

func TestTimer(t *testing.T) {
	c := newTestCollector(t)
	vec := c.RegisterHistogram("timed_seconds", "help", nil, "op")

	timer := NewTimer(vec.WithLabelValues("parse"))
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	assert.Contains(t, scrape(t, c), `biorxn_timed_seconds_count{op="parse"} 1`)

	assert.NotPanics(t, func() { (&Timer{}).ObserveDuration() })
}

func TestWriteTo_DumpsTextExposition(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("runs_total", "help", "status").WithLabelValues("ok").Inc()

	var buf bytes.Buffer
	require.NoError(t, c.WriteTo(&buf))
	assert.Contains(t, buf.String(), `biorxn_runs_total{status="ok"} 1`)
	assert.Contains(t, buf.String(), "# HELP biorxn_runs_total help")
}

func TestEngineMetrics(t *testing.T) {
	c := newTestCollector(t)
	m := NewEngineMetrics(c)

	RecordParse(m, "rhea", nil)
	RecordParse(m, "rhea", errors.New("bad"))
	RecordTokenization(m, "tokenize", nil)
	RecordStage(m, "split", 2*time.Millisecond)
	m.MoleculesRemovedTotal.WithLabelValues("pattern").Inc()
	m.ReactionsEmittedTotal.WithLabelValues("rhea").Inc()

	body := scrape(t, c)
	assert.Contains(t, body, `biorxn_reactions_parsed_total{source="rhea",status="ok"} 1`)
	assert.Contains(t, body, `biorxn_reactions_parsed_total{source="rhea",status="error"} 1`)
	assert.Contains(t, body, `biorxn_tokenizations_total{direction="tokenize",status="ok"} 1`)
	assert.Contains(t, body, `biorxn_preprocess_stage_duration_seconds_count{stage="split"} 1`)
	assert.Contains(t, body, `biorxn_molecules_removed_total{reason="pattern"} 1`)
	assert.Contains(t, body, `biorxn_reactions_emitted_total{source="rhea"} 1`)
}

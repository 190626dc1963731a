package prometheus

import "time"

// EngineMetrics holds every metric the reaction engine emits.
type EngineMetrics struct {
	// Parsing
	ReactionsParsedTotal CounterVec // source, status
	ECDepthObserved      HistogramVec

	// Tokenization
	TokenizationsTotal CounterVec // direction, status

	// Preprocessing pipeline
	PreprocessDuration     HistogramVec // stage
	ReactionsDroppedTotal  CounterVec   // reason
	MoleculesRemovedTotal  CounterVec   // reason
	ReactionsSplitTotal    CounterVec
	ReactionsReversedTotal CounterVec
	ReactionsEmittedTotal  CounterVec // source
}

// Histogram buckets tuned for a pure in-memory string pipeline.
var (
	DefaultStageDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}
	ecDepthBuckets              = []float64{0, 1, 2, 3, 4}
)

// NewEngineMetrics registers all engine metrics on the collector.
func NewEngineMetrics(collector MetricsCollector) *EngineMetrics {
	m := &EngineMetrics{}

	m.ReactionsParsedTotal = collector.RegisterCounter(
		"reactions_parsed_total", "Reactions parsed, by source and status", "source", "status")
	m.ECDepthObserved = collector.RegisterHistogram(
		"ec_depth_observed", "Depth of EC numbers seen during parsing", ecDepthBuckets)

	m.TokenizationsTotal = collector.RegisterCounter(
		"tokenizations_total", "Tokenize/detokenize operations, by direction and status", "direction", "status")

	m.PreprocessDuration = collector.RegisterHistogram(
		"preprocess_stage_duration_seconds", "Preprocess stage duration", DefaultStageDurationBuckets, "stage")
	m.ReactionsDroppedTotal = collector.RegisterCounter(
		"reactions_dropped_total", "Reactions dropped by the preprocess filter", "reason")
	m.MoleculesRemovedTotal = collector.RegisterCounter(
		"molecules_removed_total", "Product molecules removed during preprocessing", "reason")
	m.ReactionsSplitTotal = collector.RegisterCounter(
		"reactions_split_total", "Multi-product reactions split into single-product reactions")
	m.ReactionsReversedTotal = collector.RegisterCounter(
		"reactions_reversed_total", "Reverse reactions emitted for bi-directional datasets")
	m.ReactionsEmittedTotal = collector.RegisterCounter(
		"reactions_emitted_total", "Reactions surviving the full preprocess pipeline", "source")

	return m
}

// RecordParse counts one parse attempt.
func RecordParse(m *EngineMetrics, source string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ReactionsParsedTotal.WithLabelValues(source, status).Inc()
}

// RecordTokenization counts one tokenize or detokenize call.
func RecordTokenization(m *EngineMetrics, direction string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TokenizationsTotal.WithLabelValues(direction, status).Inc()
}

// RecordStage observes the duration of one preprocess stage.
func RecordStage(m *EngineMetrics, stage string, elapsed time.Duration) {
	m.PreprocessDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

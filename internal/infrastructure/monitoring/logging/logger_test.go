package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 3}, Int("n", 3))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))

	assert.Equal(t, "boom", Err(errors.New("boom")).Value)
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestZapLogger_EmitsStructuredEntries(t *testing.T) {
	log, observed := newObserved(zapcore.DebugLevel)

	log.Info("reaction parsed", String("source", "brenda"), Int("molecules", 3))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "reaction parsed", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "brenda", ctx["source"])
	assert.Equal(t, int64(3), ctx["molecules"])
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	log, observed := newObserved(zapcore.WarnLevel)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("shown")

	assert.Equal(t, 2, observed.Len())
}

func TestZapLogger_WithAttachesFields(t *testing.T) {
	log, observed := newObserved(zapcore.DebugLevel)

	child := log.With(String("component", "preprocess"))
	child.Info("first")
	child.Info("second")
	log.Info("parent untouched")

	entries := observed.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "preprocess", entries[0].ContextMap()["component"])
	assert.Equal(t, "preprocess", entries[1].ContextMap()["component"])
	assert.NotContains(t, entries[2].ContextMap(), "component")
}

func TestZapLogger_Named(t *testing.T) {
	log, observed := newObserved(zapcore.DebugLevel)

	log.Named("biorxn").Named("tokenizer").Info("hi")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "biorxn.tokenizer", entries[0].LoggerName)
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(Options{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	log, err := NewLogger(Options{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Info("x", Err(errors.New("ignored")))
		log.With(String("a", "b")).Named("n").Warn("x")
	})
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	log, observed := newObserved(zapcore.InfoLevel)
	SetDefault(log)
	Default().Info("via default")
	assert.Equal(t, 1, observed.Len())

	// Setting nil is ignored.
	SetDefault(nil)
	assert.Equal(t, log, Default())
}

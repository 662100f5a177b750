package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observedContext returns a context carrying a logger whose entries are recorded.
func observedContext(level zapcore.LevelEnabler) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return ToContext(context.Background(), zap.New(core).Sugar()), logs
}

// TestNew tests that New honours the level it is given.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		level        zapcore.LevelEnabler
		debugEnabled bool
		errorEnabled bool
	}{
		{name: "debug level", level: zapcore.DebugLevel, debugEnabled: true, errorEnabled: true},
		{name: "error level", level: zapcore.ErrorLevel, debugEnabled: false, errorEnabled: true},
		{name: "fatal level", level: zapcore.FatalLevel, debugEnabled: false, errorEnabled: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := New(tt.level)
			require.NotNil(t, l)
			assert.Equal(t, tt.debugEnabled, l.Desugar().Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.errorEnabled, l.Desugar().Core().Enabled(zapcore.ErrorLevel))
		})
	}
}

// TestParseLogLevel tests the ParseLogLevel function.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
		valid    bool
	}{
		{input: "debug", expected: zapcore.DebugLevel, valid: true},
		{input: "INFO", expected: zapcore.InfoLevel, valid: true},
		{input: " warn ", expected: zapcore.WarnLevel, valid: true},
		{input: "error", expected: zapcore.ErrorLevel, valid: true},
		{input: "dpanic", expected: zapcore.DPanicLevel, valid: true},
		{input: "panic", expected: zapcore.PanicLevel, valid: true},
		{input: "fatal", expected: zapcore.FatalLevel, valid: true},
		{input: "verbose", expected: zapcore.InfoLevel, valid: false},
		{input: "", expected: zapcore.InfoLevel, valid: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			level, ok := ParseLogLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

// TestSetLevel tests that the global level drives the global logger.
func TestSetLevel(t *testing.T) {
	// Not parallel: the global level is shared.
	originalLevel := Level()
	defer SetLevel(originalLevel)

	SetLevel(zapcore.DebugLevel)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, IsDebugLevel())
	assert.True(t, Logger().Desugar().Core().Enabled(zapcore.DebugLevel))

	SetLevel(zapcore.WarnLevel)
	assert.Equal(t, zapcore.WarnLevel, Level())
	assert.False(t, IsDebugLevel())
	assert.False(t, Logger().Desugar().Core().Enabled(zapcore.InfoLevel))
}

// TestSetLogger tests replacing the global logger.
func TestSetLogger(t *testing.T) {
	// Not parallel: the global logger is shared.
	original := Logger()
	defer SetLogger(original)

	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core).Sugar())

	Info(context.Background(), "through global")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "through global", logs.All()[0].Message)
}

// TestContextHelpers tests that every helper writes at its level to the context logger.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext(zapcore.DebugLevel)

	Debug(ctx, "debug ", 1)
	Debugf(ctx, "debug %d", 2)
	DebugKV(ctx, "debug kv", "n", 3)
	Info(ctx, "info")
	Infof(ctx, "info %s", "f")
	InfoKV(ctx, "info kv", "k", "v")
	Warn(ctx, "warn")
	Warnf(ctx, "warn %s", "f")
	WarnKV(ctx, "warn kv", "k", "v")
	Error(ctx, "error")
	Errorf(ctx, "error %s", "f")
	ErrorKV(ctx, "error kv", "k", "v")

	expected := []struct {
		level   zapcore.Level
		message string
	}{
		{zapcore.DebugLevel, "debug 1"},
		{zapcore.DebugLevel, "debug 2"},
		{zapcore.DebugLevel, "debug kv"},
		{zapcore.InfoLevel, "info"},
		{zapcore.InfoLevel, "info f"},
		{zapcore.InfoLevel, "info kv"},
		{zapcore.WarnLevel, "warn"},
		{zapcore.WarnLevel, "warn f"},
		{zapcore.WarnLevel, "warn kv"},
		{zapcore.ErrorLevel, "error"},
		{zapcore.ErrorLevel, "error f"},
		{zapcore.ErrorLevel, "error kv"},
	}

	entries := logs.All()
	require.Len(t, entries, len(expected))

	for i, e := range expected {
		assert.Equal(t, e.level, entries[i].Level, "entry %d", i)
		assert.Equal(t, e.message, entries[i].Message, "entry %d", i)
	}

	assert.Equal(t, map[string]any{"k": "v"}, entries[5].ContextMap())
}

// TestContextHelpers_LevelFiltering tests that entries below the logger level are dropped.
func TestContextHelpers_LevelFiltering(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext(zapcore.WarnLevel)

	Debug(ctx, "dropped")
	Info(ctx, "dropped")
	Warn(ctx, "kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

// TestPanic tests that Panic and Panicf log before panicking.
func TestPanic(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext(zapcore.DebugLevel)

	assert.Panics(t, func() { Panic(ctx, "boom") })
	assert.Panics(t, func() { Panicf(ctx, "boom %d", 2) })

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.PanicLevel, logs.All()[1].Level)
	assert.Equal(t, "boom 2", logs.All()[1].Message)
}

// TestFromContext tests that a logger stored in the context is returned.
func TestFromContext(t *testing.T) {
	t.Parallel()

	stored := New(zapcore.WarnLevel)
	ctx := ToContext(context.Background(), stored)

	assert.Same(t, stored, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // A nil context falls back to the global logger.
}

// TestWithKV tests that fields attached to the context are emitted.
func TestWithKV(t *testing.T) {
	t.Parallel()

	ctx, logs := observedContext(zapcore.DebugLevel)

	derived := WithKV(ctx, "request_id", "abc")
	named := WithName(derived, "client")

	Info(named, "sent")
	Info(ctx, "plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"request_id": "abc"}, entries[0].ContextMap())
	assert.Equal(t, "client", entries[0].LoggerName)
	assert.Empty(t, entries[1].ContextMap(), "parent context must not see derived fields")
}

// TestConcurrentAccess tests that the global logger can be swapped while in use.
func TestConcurrentAccess(t *testing.T) {
	// Not parallel: the global logger is shared.
	original := Logger()
	defer SetLogger(original)

	core, _ := observer.New(zapcore.InfoLevel)
	replacement := zap.New(core).Sugar()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			if i%2 == 0 {
				SetLogger(replacement)
			}

			Infof(context.Background(), "goroutine %d", i)
			_ = Level()
		}()
	}

	wg.Wait()
}

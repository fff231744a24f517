package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)

	changed := gl.LogMode(gormlogger.Error)
	require.NotSame(t, gl, changed, "LogMode returns a copy")
	assert.Equal(t, gormlogger.Warn, gl.logLevel, "original is untouched")
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Silent)
		gl.Trace(ctx, time.Now(), query, nil)
		assert.Zero(t, logs.Len())
	})

	t.Run("errors are logged", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), query, errors.New("syntax error"))

		entries := logs.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
	})

	t.Run("record not found is suppressed by default", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Zero(t, logs.Len())
	})

	t.Run("record not found is logged when not ignored", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Equal(t, 1, logs.FilterMessage("SQL Error").Len())
	})

	t.Run("slow queries are logged at warn", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(ctx, time.Now().Add(-time.Millisecond), query, nil)

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
	})

	t.Run("request id is carried through", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)
		reqCtx, _ := WithRequestID(ctx, zap.NewNop(), "req-789")
		gl.Trace(reqCtx, time.Now(), query, nil)

		entries := logs.FilterMessage("SQL Query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-789", entries[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.input), "level %q", tt.input)
	}
}

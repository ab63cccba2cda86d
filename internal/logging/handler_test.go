package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 28, 20, 0, 0, 0, time.UTC)
}

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(buf, &Options{Level: level, Now: fixedClock}))
}

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelDebug)

	record := slog.NewRecord(time.Time{}, slog.LevelInfo, "Starting pull operation...", 0)
	require.NoError(t, logger.Handler().Handle(t.Context(), record))

	assert.Equal(t, "INFO    2025-06-28 20:00:00  - Starting pull operation...\n", buf.String())
}

func TestHandler_Title(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelDebug).With(TitleKey, "Puller")

	logger.Warn("no .gitignore found")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "WARN    "), line)
	assert.Contains(t, line, "  Puller no .gitignore found\n")
}

func TestHandler_TitleOnRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelDebug)

	logger.Info("resolved", TitleKey, "fqn", "source", "appsflyer")

	assert.Contains(t, buf.String(), "  fqn resolved source=appsflyer\n")
}

func TestHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelDebug).With("env", "dev").WithGroup("req")

	logger.Debug("loading", "path", "includes/configs/dev.yaml", "note", "two words", slog.Group("g", "a", 1))

	line := buf.String()
	assert.Contains(t, line, "DEBUG ")
	assert.Contains(t, line, " env=dev")
	assert.Contains(t, line, " req.path=includes/configs/dev.yaml")
	assert.Contains(t, line, ` req.note="two words"`)
	assert.Contains(t, line, " req.g.a=1")
}

func TestHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Error("shown")
	assert.Contains(t, buf.String(), "ERROR   ")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "sqlinc")

	logger.Info("hello")
	assert.Contains(t, buf.String(), "  sqlinc hello\n")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

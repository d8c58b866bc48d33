package internal

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "0m"},
		{34 * time.Minute, "34m"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
		{7*24*time.Hour + 12*time.Hour + 34*time.Minute, "7d 12h 34m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanDuration(tt.in))
	}
}

func TestBoolToFloat64(t *testing.T) {
	assert.Equal(t, 1.0, BoolToFloat64(true))
	assert.Equal(t, 0.0, BoolToFloat64(false))
}

func TestPrettyHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.With("component", "gate").WithGroup("session").Info("login accepted", "controller", "abhi")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "INFO  login accepted")
	assert.Contains(t, line, "component=gate")
	assert.Contains(t, line, "session.controller=abhi")
}

func TestPrettyHandler_Level(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestGetLoggingHandler(t *testing.T) {
	assert.IsType(t, &slog.JSONHandler{}, GetLoggingHandler("info", false, true))
	assert.IsType(t, &PrettyHandler{}, GetLoggingHandler("debug", true, false))
	assert.IsType(t, &slog.TextHandler{}, GetLoggingHandler("unknown", false, false))
}

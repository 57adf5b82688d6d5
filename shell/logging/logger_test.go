package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-rentals-go/shell/config"
)

func Test_ParseLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.in))
		})
	}
}

func Test_NewHandler_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(config.LogConfig{Level: "info", Format: "json"}, &buf))

	logger.Info("title rented", "member_id", 1)
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), `"msg":"title rented"`)
	assert.Contains(t, buf.String(), `"member_id":1`)
	assert.NotContains(t, buf.String(), "hidden")
}

func Test_NewHandler_TextFormatEnablesDebug(t *testing.T) {
	handler := newHandler(config.LogConfig{Level: "debug", Format: "text"}, &bytes.Buffer{})

	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theirongolddev/bizdash/internal/status"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"", false, zapcore.WarnLevel},
		{"info", false, zapcore.InfoLevel},
		{"error", false, zapcore.ErrorLevel},
		{"error", true, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		logger, err := New(tc.level, tc.verbose)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(tc.want), "%q enables %v", tc.level, tc.want)
		if tc.want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(tc.want-1), "%q disables %v", tc.level, tc.want-1)
		}
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}

func TestStatusSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := status.New(StatusSink(zap.New(core)))

	assert.Equal(t, status.Success, c.Classify("Paid"))

	entries := logs.FilterMessage("status classified").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Paid", fields["label"])
	assert.Equal(t, "success", fields["category"])
}

func TestStatusSink_NilLogger(t *testing.T) {
	assert.Nil(t, StatusSink(nil))
	assert.Equal(t, status.Error, status.New(StatusSink(nil)).Classify("overdue"))
}

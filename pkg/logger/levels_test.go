package logger

import (
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	errUtils "github.com/matrixci/matrixci/errors"
)

func TestTraceLevel_RelativeToDebug(t *testing.T) {
	assert.Equal(t, charm.DebugLevel-1, TraceLevel)
	assert.Less(t, int(TraceLevel), int(charm.DebugLevel),
		"trace must be more verbose than debug")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected charm.Level
	}{
		{"", charm.InfoLevel},
		{"Trace", TraceLevel},
		{"debug", charm.DebugLevel},
		{"Info", charm.InfoLevel},
		{"Warning", charm.WarnLevel},
		{"warn", charm.WarnLevel},
		{"Off", OffLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseLevelInvalid(t *testing.T) {
	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, errUtils.ErrInvalidLogLevel)
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	before := Default()
	SetDefault(nil)
	assert.Same(t, before, Default())
}

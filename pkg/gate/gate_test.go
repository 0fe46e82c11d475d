package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/schema"
)

func cpython(version string) schema.InterpreterInfo {
	return schema.InterpreterInfo{
		Executable:     "python",
		Implementation: "cpython",
		Version:        version,
	}
}

func TestEvaluateNoGates(t *testing.T) {
	batch := schema.BatchDefinition{Name: "core"}

	result, err := Evaluate(&batch, cpython("2.7.18"), "linux")
	require.NoError(t, err)
	assert.True(t, result.Selected)
	assert.Empty(t, result.Reason)
}

func TestEvaluatePlatformGate(t *testing.T) {
	batch := schema.BatchDefinition{
		Name:      "numeric",
		Platforms: []string{"linux", "windows"},
	}

	result, err := Evaluate(&batch, cpython("3.12.1"), "linux")
	require.NoError(t, err)
	assert.True(t, result.Selected)

	result, err = Evaluate(&batch, cpython("3.12.1"), "darwin")
	require.NoError(t, err)
	assert.False(t, result.Selected)
	assert.Contains(t, result.Reason, "platform 'darwin'")
}

func TestEvaluateVersionGate(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		version    string
		selected   bool
	}{
		{"major 2 matches py2 range", ">=2.0.0 <3.0.0", "2.7.18", true},
		{"py3 excluded from py2 range", ">=2.0.0 <3.0.0", "3.12.1", false},
		{"legacy minor <= 2.6", ">=2.0.0 <2.7.0", "2.6.9", true},
		{"2.7 excluded from legacy range", ">=2.0.0 <2.7.0", "2.7.18", false},
		{"modern range includes 2.7", ">=2.7.0", "2.7.18", true},
		{"modern range excludes 2.6", ">=2.7.0", "2.6.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := schema.BatchDefinition{Name: "gated", Python: tt.constraint}

			result, err := Evaluate(&batch, cpython(tt.version), "linux")
			require.NoError(t, err)
			assert.Equal(t, tt.selected, result.Selected)
			if !tt.selected {
				assert.Contains(t, result.Reason, tt.constraint)
			}
		})
	}
}

func TestEvaluateImplementationGate(t *testing.T) {
	batch := schema.BatchDefinition{
		Name:            "cpython-only",
		Implementations: []string{"cpython"},
	}

	info := schema.InterpreterInfo{Implementation: "pypy", Version: "3.10.14"}
	result, err := Evaluate(&batch, info, "linux")
	require.NoError(t, err)
	assert.False(t, result.Selected)
	assert.Contains(t, result.Reason, "pypy")
}

func TestEvaluateInvalidConstraint(t *testing.T) {
	batch := schema.BatchDefinition{Name: "broken", Python: "not-a-range"}

	_, err := Evaluate(&batch, cpython("2.7.18"), "linux")
	assert.ErrorIs(t, err, errUtils.ErrInvalidConstraint)
}

func TestHaltAfter(t *testing.T) {
	batch := schema.BatchDefinition{
		Name:        "datetime",
		HaltAfterOn: []string{"darwin"},
	}

	assert.True(t, HaltAfter(&batch, "darwin"))
	assert.False(t, HaltAfter(&batch, "linux"))
	assert.False(t, HaltAfter(&schema.BatchDefinition{}, "darwin"))
}

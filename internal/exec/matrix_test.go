package exec

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/schema"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, including subprocess output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	err = w.Close()
	require.NoError(t, err)
	os.Stdout = oldStdout

	output, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(output)
}

func echoConfig() schema.Configuration {
	return schema.Configuration{
		Commands: schema.Commands{
			Install:   "echo install",
			Uninstall: "echo uninstall",
			Test:      "echo test",
		},
	}
}

func cpythonOn(platform, version string) *MatrixOptions {
	return &MatrixOptions{
		Platform: platform,
		Interpreter: schema.InterpreterInfo{
			Executable:     "python",
			Implementation: "cpython",
			Version:        version,
		},
	}
}

func defaultStyleManifest() schema.MatrixManifest {
	return schema.MatrixManifest{
		Name: "optional-dependencies",
		Batches: []schema.BatchDefinition{
			{
				Name: "core",
			},
			{
				Name:        "datetime",
				Requires:    []string{"pytz"},
				Tests:       []string{"tests/datetime"},
				HaltAfterOn: []string{"darwin"},
			},
			{
				Name:     "fakedata-legacy",
				Requires: []string{"fake-factory"},
				Tests:    []string{"tests/fakefactory"},
				Python:   ">=2.0.0 <2.7.0",
			},
			{
				Name:     "fakedata",
				Requires: []string{"faker"},
				Tests:    []string{"tests/fakefactory"},
				Python:   ">=2.7.0",
			},
			{
				Name:     "numpy",
				Requires: []string{"numpy"},
				Tests:    []string{"tests/numpy"},
			},
		},
	}
}

func TestExecuteMatrixRunsBatchesInWrittenOrder(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "2.7.18")
	opts.Manifest = defaultStyleManifest()

	expectedOutput := `test
install pytz
test tests/datetime
uninstall pytz
install faker
test tests/fakefactory
uninstall faker
install numpy
test tests/numpy
uninstall numpy
`

	var err error
	output := captureStdout(t, func() {
		err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
	})

	require.NoError(t, err)
	assert.Equal(t, expectedOutput, output)
}

func TestExecuteMatrixHaltsAfterBatchOnPlatform(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("darwin", "2.7.18")
	opts.Manifest = defaultStyleManifest()

	var err error
	output := captureStdout(t, func() {
		err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
	})

	require.NoError(t, err, "the platform short-circuit must exit successfully")
	assert.Contains(t, output, "test tests/datetime")
	assert.NotContains(t, output, "fakefactory", "batches after the halting one must not run")
	assert.NotContains(t, output, "numpy")
}

func TestExecuteMatrixVersionGates(t *testing.T) {
	cliConfig := echoConfig()

	t.Run("legacy interpreter selects the legacy batch", func(t *testing.T) {
		opts := cpythonOn("linux", "2.6.9")
		opts.Manifest = defaultStyleManifest()

		var err error
		output := captureStdout(t, func() {
			err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
		})

		require.NoError(t, err)
		assert.Contains(t, output, "install fake-factory")
		assert.NotContains(t, output, "install faker")
	})

	t.Run("modern interpreter selects the modern batch", func(t *testing.T) {
		opts := cpythonOn("linux", "3.12.1")
		opts.Manifest = defaultStyleManifest()

		var err error
		output := captureStdout(t, func() {
			err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
		})

		require.NoError(t, err)
		assert.Contains(t, output, "install faker")
		assert.NotContains(t, output, "install fake-factory")
	})
}

func TestExecuteMatrixFailFast(t *testing.T) {
	cliConfig := echoConfig()
	cliConfig.Commands.Test = "false"

	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = schema.MatrixManifest{
		Batches: []schema.BatchDefinition{
			{Name: "first"},
			{Name: "second", Requires: []string{"numpy"}},
		},
	}

	var err error
	output := captureStdout(t, func() {
		err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
	})

	require.Error(t, err)
	assert.Equal(t, 1, errUtils.GetExitCode(err))
	assert.Contains(t, err.Error(), "batch 'first' failed!")
	assert.Contains(t, err.Error(), "--from-batch first")
	assert.NotContains(t, output, "install numpy", "later batches must not run after a failure")
}

func TestExecuteMatrixFromBatch(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = defaultStyleManifest()
	opts.FromBatch = "numpy"

	var err error
	output := captureStdout(t, func() {
		err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
	})

	require.NoError(t, err)
	assert.NotContains(t, output, "tests/datetime")
	assert.Contains(t, output, "install numpy")
}

func TestExecuteMatrixFromBatchUnknown(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = defaultStyleManifest()
	opts.FromBatch = "nope"

	err := ExecuteMatrix(context.TODO(), &cliConfig, opts)
	assert.ErrorIs(t, err, errUtils.ErrInvalidFromBatch)
}

func TestExecuteMatrixSelectedBatches(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = defaultStyleManifest()
	opts.Batches = []string{"numpy", "core"}

	var err error
	output := captureStdout(t, func() {
		err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
	})

	require.NoError(t, err)
	// Manifest order is kept regardless of the order on the command line.
	assert.Equal(t, "test\ninstall numpy\ntest tests/numpy\nuninstall numpy\n", output)
}

func TestExecuteMatrixUnknownBatch(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = defaultStyleManifest()
	opts.Batches = []string{"web"}

	err := ExecuteMatrix(context.TODO(), &cliConfig, opts)
	assert.ErrorIs(t, err, errUtils.ErrUnknownBatch)
}

func TestExecuteMatrixDryRun(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = defaultStyleManifest()
	opts.DryRun = true

	var err error
	output := captureStdout(t, func() {
		err = ExecuteMatrix(context.TODO(), &cliConfig, opts)
	})

	require.NoError(t, err)
	assert.Empty(t, output, "dry-run must not execute any command")
}

func TestExecuteBatchRunScript(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = schema.MatrixManifest{
		Env: map[string]string{"SUITE": "django"},
		Batches: []schema.BatchDefinition{
			{
				Name: "django",
				Run:  `echo "running $SUITE"`,
			},
		},
	}

	var err error
	output := captureStdout(t, func() {
		err = ExecuteBatch(context.TODO(), &cliConfig, opts, &opts.Manifest.Batches[0])
	})

	require.NoError(t, err)
	assert.Equal(t, "running django\n", output)
}

func TestExecuteBatchRunScriptExitCode(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = schema.MatrixManifest{
		Batches: []schema.BatchDefinition{
			{Name: "failing", Run: "exit 3"},
		},
	}

	err := ExecuteBatch(context.TODO(), &cliConfig, opts, &opts.Manifest.Batches[0])
	require.Error(t, err)
	assert.Equal(t, 3, errUtils.GetExitCode(err))
}

func TestExecuteBatchKeepInstalled(t *testing.T) {
	cliConfig := echoConfig()
	opts := cpythonOn("linux", "3.12.1")
	opts.Manifest = schema.MatrixManifest{
		Batches: []schema.BatchDefinition{
			{
				Name:          "datetime",
				Requires:      []string{"pytz"},
				KeepInstalled: true,
			},
		},
	}

	var err error
	output := captureStdout(t, func() {
		err = ExecuteBatch(context.TODO(), &cliConfig, opts, &opts.Manifest.Batches[0])
	})

	require.NoError(t, err)
	assert.Contains(t, output, "install pytz")
	assert.NotContains(t, output, "uninstall pytz")
}

func TestExecuteDescribeBatches(t *testing.T) {
	manifest := defaultStyleManifest()
	info := schema.InterpreterInfo{Implementation: "cpython", Version: "2.6.9"}

	items, err := ExecuteDescribeBatches(&manifest, info, "linux")
	require.NoError(t, err)
	require.Len(t, items, len(manifest.Batches))

	byName := map[string]schema.DescribeBatchesItem{}
	for _, item := range items {
		byName[item.Batch] = item
	}

	assert.True(t, byName["core"].Selected)
	assert.True(t, byName["fakedata-legacy"].Selected)
	assert.False(t, byName["fakedata"].Selected)
	assert.Contains(t, byName["fakedata"].Reason, ">=2.7.0")
}

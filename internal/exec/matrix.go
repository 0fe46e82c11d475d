package exec

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"mvdan.cc/sh/v3/interp"

	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/env"
	"github.com/matrixci/matrixci/pkg/gate"
	"github.com/matrixci/matrixci/pkg/logger"
	"github.com/matrixci/matrixci/pkg/schema"
)

// MatrixOptions selects and parameterizes the batches of one run.
type MatrixOptions struct {
	Manifest     schema.MatrixManifest
	ManifestPath string

	// Batches restricts the run to the named batches (manifest order is kept).
	Batches []string

	// FromBatch skips every batch before the named one.
	FromBatch string

	DryRun      bool
	Platform    string
	Interpreter schema.InterpreterInfo
}

// ExecuteMatrix runs the batches of a manifest strictly in written order.
// Each batch is an install/test/uninstall triple; the first failing command
// aborts the whole run with that command's exit code. A batch whose
// `halt_after_on` list contains the host platform stops the run successfully
// after it completes.
func ExecuteMatrix(ctx context.Context, cliConfig *schema.Configuration, opts *MatrixOptions) error {
	batches := opts.Manifest.Batches
	if len(batches) == 0 {
		return errUtils.ErrNoBatches
	}

	if len(opts.Batches) > 0 {
		names := lo.Map(batches, func(batch schema.BatchDefinition, _ int) string {
			return batch.Name
		})
		for _, requested := range opts.Batches {
			if !lo.Contains(names, requested) {
				return errUtils.Wrapf(errUtils.ErrUnknownBatch, "'%s' is not defined in the manifest", requested)
			}
		}
		batches = lo.Filter(batches, func(batch schema.BatchDefinition, _ int) bool {
			return lo.Contains(opts.Batches, batch.Name)
		})
	}

	if opts.FromBatch != "" {
		batches = lo.DropWhile(batches, func(batch schema.BatchDefinition) bool {
			return batch.Name != opts.FromBatch
		})
		if len(batches) == 0 {
			return errUtils.Wrapf(errUtils.ErrInvalidFromBatch,
				"the run does not include a batch with the name '%s'", opts.FromBatch)
		}
	}

	runID := uuid.NewString()
	logger.Debug("Starting matrix run",
		"run_id", runID,
		"platform", opts.Platform,
		"implementation", opts.Interpreter.Implementation,
		"version", opts.Interpreter.Version,
		"dry_run", opts.DryRun,
	)

	// Environment dump precedes execution.
	if dump, err := env.FormatData(EnvironMap(), env.FormatEnv); err == nil {
		logger.Trace("Process environment:\n" + dump)
	}

	for index := range batches {
		batch := batches[index]

		result, err := gate.Evaluate(&batch, opts.Interpreter, opts.Platform)
		if err != nil {
			return err
		}

		if !result.Selected {
			logger.Info("Skipping batch", "batch", batch.Name, "reason", result.Reason)
			continue
		}

		if err := ExecuteBatch(ctx, cliConfig, opts, &batch); err != nil {
			code := errUtils.GetExitCode(err)
			logger.Debug("Batch failed", "run_id", runID, "batch", batch.Name, "exit_code", code)
			return errUtils.WithExitCode(
				errUtils.Wrapf(err, "batch '%s' failed!%s", batch.Name, resumeHint(opts, batch.Name)),
				code,
			)
		}

		if gate.HaltAfter(&batch, opts.Platform) {
			logger.Info("Halting the run after batch on this platform",
				"batch", batch.Name, "platform", opts.Platform)
			return nil
		}
	}

	logger.Debug("Matrix run finished", "run_id", runID)

	return nil
}

// ExecuteBatch runs one batch: install its packages, run its tests, then
// uninstall the packages. There is no cleanup on failure: a failing install
// or test aborts immediately, leaving the environment as-is.
func ExecuteBatch(ctx context.Context, cliConfig *schema.Configuration, opts *MatrixOptions, batch *schema.BatchDefinition) error {
	logger.Info("Executing batch", "batch", batch.Name)
	if batch.Description != "" {
		logger.Debug(batch.Description, "batch", batch.Name)
	}

	envEntries, err := batchEnviron(&opts.Manifest, batch, InterpreterEnviron(opts.Interpreter, opts.Platform))
	if err != nil {
		return err
	}

	if len(batch.Requires) > 0 {
		if err := runCommandLine(cliConfig.Commands.Install, batch.Requires, envEntries, opts.DryRun); err != nil {
			return errUtils.Wrap(err, "install")
		}
	}

	if batch.Run != "" {
		name := fmt.Sprintf("%s-run", batch.Name)
		if err := ExecuteShell(ctx, batch.Run, name, ".", envEntries, opts.DryRun); err != nil {
			return withShellExitCode(err)
		}
	} else {
		if err := runCommandLine(cliConfig.Commands.Test, batch.Tests, envEntries, opts.DryRun); err != nil {
			return err
		}
	}

	if len(batch.Requires) > 0 && !batch.KeepInstalled {
		if err := runCommandLine(cliConfig.Commands.Uninstall, batch.Requires, envEntries, opts.DryRun); err != nil {
			return errUtils.Wrap(err, "uninstall")
		}
	}

	return nil
}

// runCommandLine executes a configured command prefix (e.g. `pip install`)
// with extra arguments appended.
func runCommandLine(commandLine string, extraArgs []string, envEntries []string, dryRun bool) error {
	parts := strings.Fields(strings.TrimSpace(commandLine))
	if len(parts) == 0 {
		return errUtils.Wrap(errUtils.ErrInvalidManifest, "empty command configured")
	}

	args := make([]string, 0, len(parts)-1+len(extraArgs))
	args = append(args, parts[1:]...)
	args = append(args, extraArgs...)

	return ExecuteShellCommand(parts[0], args, ".", envEntries, dryRun)
}

// withShellExitCode surfaces the exit status of a script run through the
// shell interpreter, which reports it as interp.ExitStatus rather than
// exec.ExitError.
func withShellExitCode(err error) error {
	if status, ok := interp.IsExitStatus(err); ok {
		return errUtils.WithExitCode(err, int(status))
	}
	return err
}

func resumeHint(opts *MatrixOptions, batchName string) string {
	fileFlag := ""
	if opts.ManifestPath != "" {
		fileFlag = fmt.Sprintf(" --file %s", opts.ManifestPath)
	}
	return fmt.Sprintf("\nTo resume the run from this batch, run:\nmatrixci run%s --from-batch %s", fileFlag, batchName)
}

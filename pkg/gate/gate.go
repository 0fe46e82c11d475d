// Package gate evaluates batch gates: host platform, interpreter version
// constraint, and interpreter implementation.
package gate

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"

	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/schema"
)

// Result is the outcome of evaluating a batch's gates.
type Result struct {
	Selected bool
	// Reason is a human-readable explanation when the batch is skipped.
	Reason string
}

// Evaluate checks all gates of a batch against the host platform and the
// probed interpreter. A batch with no gates is always selected.
func Evaluate(batch *schema.BatchDefinition, info schema.InterpreterInfo, platform string) (Result, error) {
	if len(batch.Platforms) > 0 && !lo.Contains(batch.Platforms, platform) {
		return Result{
			Selected: false,
			Reason:   fmt.Sprintf("platform '%s' is not in [%s]", platform, strings.Join(batch.Platforms, ", ")),
		}, nil
	}

	if len(batch.Implementations) > 0 && !lo.Contains(batch.Implementations, info.Implementation) {
		return Result{
			Selected: false,
			Reason: fmt.Sprintf("implementation '%s' is not in [%s]",
				info.Implementation, strings.Join(batch.Implementations, ", ")),
		}, nil
	}

	if batch.Python != "" {
		ok, err := checkVersionConstraint(batch, info.Version)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{
				Selected: false,
				Reason:   fmt.Sprintf("interpreter version %s does not satisfy '%s'", info.Version, batch.Python),
			}, nil
		}
	}

	return Result{Selected: true}, nil
}

// HaltAfter reports whether a successful run of the batch should stop the
// whole matrix on the given platform.
func HaltAfter(batch *schema.BatchDefinition, platform string) bool {
	return lo.Contains(batch.HaltAfterOn, platform)
}

func checkVersionConstraint(batch *schema.BatchDefinition, version string) (bool, error) {
	constraint, err := semver.NewConstraint(batch.Python)
	if err != nil {
		return false, errUtils.Wrapf(errUtils.ErrInvalidConstraint, "batch '%s': '%s': %v", batch.Name, batch.Python, err)
	}

	parsed, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, errUtils.Wrapf(errUtils.ErrInterpreterProbe, "unparsable interpreter version '%s': %v", version, err)
	}

	return constraint.Check(parsed), nil
}

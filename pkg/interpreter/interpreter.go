// Package interpreter probes the target Python interpreter for its
// implementation name and version, and resolves the host platform.
package interpreter

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/schema"
)

// PlatformEnvVar overrides the detected host platform.
const PlatformEnvVar = "MATRIXCI_PLATFORM"

// DefaultExecutable is used when the configuration does not name an interpreter.
const DefaultExecutable = "python"

const probeTimeout = 30 * time.Second

// probeScript prints `implementation major.minor.micro` on one line,
// e.g. `cpython 2.7.18`. It must run on every interpreter version the
// gates can select, so it avoids anything newer than Python 2 syntax.
const probeScript = "import platform, sys; sys.stdout.write(platform.python_implementation().lower() + ' ' + platform.python_version())"

// Probe executes the interpreter and returns its implementation and version.
func Probe(ctx context.Context, executable string) (schema.InterpreterInfo, error) {
	if executable == "" {
		executable = DefaultExecutable
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, "-c", probeScript)
	output, err := cmd.Output()
	if err != nil {
		return schema.InterpreterInfo{}, errUtils.Wrapf(errUtils.ErrInterpreterProbe, "executable '%s': %v", executable, err)
	}

	implementation, version, err := ParseProbeOutput(string(output))
	if err != nil {
		return schema.InterpreterInfo{}, err
	}

	return schema.InterpreterInfo{
		Executable:     executable,
		Implementation: implementation,
		Version:        version,
	}, nil
}

// ParseProbeOutput parses the `implementation version` line printed by the probe.
func ParseProbeOutput(output string) (string, string, error) {
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) != 2 {
		return "", "", errUtils.Wrapf(errUtils.ErrInterpreterProbe, "unexpected probe output: %q", output)
	}
	return strings.ToLower(fields[0]), fields[1], nil
}

// Platform resolves the host platform name used by the gate checks.
// Priority: the explicit override (configuration), the MATRIXCI_PLATFORM
// environment variable, then the runtime host.
func Platform(override string) string {
	if override != "" {
		return strings.ToLower(override)
	}
	if fromEnv := os.Getenv(PlatformEnvVar); fromEnv != "" {
		return strings.ToLower(fromEnv)
	}
	return runtime.GOOS
}

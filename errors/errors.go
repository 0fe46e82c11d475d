// Package errors defines the sentinel errors used across matrixci and
// helpers for attaching and extracting process exit codes.
package errors

import (
	"os"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNoBatches is returned when a manifest defines no batches.
	ErrNoBatches = errors.New("the manifest does not define any batches")

	// ErrUnknownBatch is returned when a requested batch is not present in the manifest.
	ErrUnknownBatch = errors.New("unknown batch")

	// ErrInvalidManifest is returned when a manifest file cannot be parsed.
	ErrInvalidManifest = errors.New("invalid matrix manifest")

	// ErrInvalidFromBatch is returned when `--from-batch` names a batch that is not in the run.
	ErrInvalidFromBatch = errors.New("invalid '--from-batch' flag")

	// ErrInvalidFormat is returned for unsupported output formats.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidLogLevel is returned for unsupported log levels.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInterpreterProbe is returned when the target interpreter cannot be probed.
	ErrInterpreterProbe = errors.New("failed to probe the interpreter")

	// ErrInvalidConstraint is returned when a batch declares an unparsable version constraint.
	ErrInvalidConstraint = errors.New("invalid version constraint")
)

// OsExit is a variable for os.Exit so tests can intercept process termination.
var OsExit = os.Exit

// Wrap annotates err with a message, preserving the error chain.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message, preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/matrixci/matrixci/cmd"
	errUtils "github.com/matrixci/matrixci/errors"
	"github.com/matrixci/matrixci/pkg/ui/theme"
)

func main() {
	// Set up signal handling so an interrupted run exits with the correct
	// POSIX exit code (128 + signal number).
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run())
}

// run executes the CLI and returns the process exit code: 0 on success,
// otherwise the exit code of the failing command.
func run() int {
	err := cmd.Execute()
	if err != nil {
		theme.Colors.Error.Fprintln(os.Stderr, err.Error())
		return errUtils.GetExitCode(err)
	}
	return 0
}

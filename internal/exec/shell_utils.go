package exec

import (
	"context"
	"io"
	"os"
	osexec "os/exec"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/matrixci/matrixci/pkg/logger"
)

// ExecuteShellCommand prints and executes the provided command with args.
func ExecuteShellCommand(
	command string,
	args []string,
	dir string,
	env []string,
	dryRun bool,
) error {
	cmd := osexec.Command(command, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info("Executing", "command", cmd.String())

	if dryRun {
		return nil
	}

	return cmd.Run()
}

// ExecuteShell runs a shell script.
func ExecuteShell(
	ctx context.Context,
	command string,
	name string,
	dir string,
	env []string,
	dryRun bool,
) error {
	logger.Info("Executing", "command", command)

	if dryRun {
		return nil
	}

	return shellRunner(ctx, command, name, dir, env, os.Stdout)
}

// shellRunner uses mvdan.cc/sh/v3's parser and interpreter to run a shell
// script and divert its stdout.
func shellRunner(ctx context.Context, command string, name string, dir string, env []string, out io.Writer) error {
	parser, err := syntax.NewParser().Parse(strings.NewReader(command), name)
	if err != nil {
		return err
	}

	environ := append(os.Environ(), env...)
	listEnviron := expand.ListEnviron(environ...)
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(listEnviron),
		interp.StdIO(os.Stdin, out, os.Stderr),
	)
	if err != nil {
		return err
	}

	return runner.Run(ctx, parser)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	e "github.com/matrixci/matrixci/internal/exec"
	"github.com/matrixci/matrixci/pkg/env"
	"github.com/matrixci/matrixci/pkg/interpreter"
	"github.com/matrixci/matrixci/pkg/logger"
)

// envCmd dumps the environment the batches would run with.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Dump the process environment and interpreter probe results",
	Long: `This command prints the process environment plus the MATRIXCI_* entries
describing the probed interpreter, in one of several formats:
matrixci env --format env|dotenv|bash|github`,
	Example: "matrixci env\n" +
		"matrixci env --format bash\n" +
		"matrixci env --format github >> \"$GITHUB_ENV\"",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		executable, _ := cmd.Flags().GetString("python")

		format, err := env.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		data := e.EnvironMap()

		if executable == "" {
			executable = cliConfig.Interpreter.Executable
		}

		// The environment dump stays useful without a working interpreter.
		info, err := interpreter.Probe(cmd.Context(), executable)
		if err != nil {
			logger.Warn("Interpreter probe failed, dumping the process environment only", "error", err)
		} else {
			platform := interpreter.Platform(cliConfig.Interpreter.Platform)
			for key, value := range e.InterpreterEnviron(info, platform) {
				data[key] = value
			}
		}

		out, err := env.FormatData(data, format)
		if err != nil {
			return err
		}

		fmt.Print(out)
		return nil
	},
}

func init() {
	envCmd.PersistentFlags().String("format", "env", "Output format: env, dotenv, bash, github")
	envCmd.PersistentFlags().String("python", "", "The interpreter executable to probe and gate on")

	RootCmd.AddCommand(envCmd)
}

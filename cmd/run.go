package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/matrixci/matrixci/internal/exec"
	cfg "github.com/matrixci/matrixci/pkg/config"
	"github.com/matrixci/matrixci/pkg/interpreter"
)

// runCmd executes the test matrix.
var runCmd = &cobra.Command{
	Use:   "run [batch...]",
	Short: "Run the test matrix",
	Long: `This command runs the batches of a matrix manifest strictly in written
order: matrixci run [batch...] --file <manifest>

Each batch installs its required packages, runs its tests, and uninstalls the
packages again. Batches whose gates do not match the host platform or the
target interpreter are skipped. The first failing command aborts the run with
that command's exit code.`,
	Example: "matrixci run\n" +
		"matrixci run datetime numpy\n" +
		"matrixci run --file matrix.yaml\n" +
		"matrixci run --file matrix.yaml --from-batch django\n" +
		"matrixci run --dry-run",
	FParseErrWhitelist: struct{ UnknownFlags bool }{UnknownFlags: false},
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath, _ := cmd.Flags().GetString("file")
		fromBatch, _ := cmd.Flags().GetString("from-batch")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		executable, _ := cmd.Flags().GetString("python")

		manifest, err := cfg.LoadManifest(&cliConfig, manifestPath)
		if err != nil {
			return err
		}

		if executable == "" {
			executable = cliConfig.Interpreter.Executable
		}

		info, err := interpreter.Probe(cmd.Context(), executable)
		if err != nil {
			return err
		}

		return e.ExecuteMatrix(cmd.Context(), &cliConfig, &e.MatrixOptions{
			Manifest:     manifest,
			ManifestPath: manifestPath,
			Batches:      args,
			FromBatch:    fromBatch,
			DryRun:       dryRun,
			Platform:     interpreter.Platform(cliConfig.Interpreter.Platform),
			Interpreter:  info,
		})
	},
}

func init() {
	runCmd.PersistentFlags().StringP("file", "f", "", "The manifest file with the batch definitions")
	runCmd.PersistentFlags().String("from-batch", "", "Resume the run from the named batch, skipping everything before it")
	runCmd.PersistentFlags().Bool("dry-run", false, "Print the commands without executing them")
	runCmd.PersistentFlags().String("python", "", "The interpreter executable to probe and gate on")

	RootCmd.AddCommand(runCmd)
}

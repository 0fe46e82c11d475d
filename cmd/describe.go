package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	e "github.com/matrixci/matrixci/internal/exec"
	cfg "github.com/matrixci/matrixci/pkg/config"
	"github.com/matrixci/matrixci/pkg/interpreter"
	"github.com/matrixci/matrixci/pkg/ui/theme"
)

// describeCmd shows every batch and whether it is selected on this host.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the batches and their gate results for this host",
	Long: `This command evaluates every batch's gates against the host platform and
the target interpreter and prints one row per batch, in manifest order, with
the reason a batch would be skipped.`,
	Example: "matrixci describe\n" +
		"matrixci describe --file matrix.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath, _ := cmd.Flags().GetString("file")
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

		platform := interpreter.Platform(cliConfig.Interpreter.Platform)
		items, err := e.ExecuteDescribeBatches(&manifest, info, platform)
		if err != nil {
			return err
		}

		theme.Colors.Info.Fprintf(os.Stdout, "# platform=%s implementation=%s version=%s\n",
			platform, info.Implementation, info.Version)

		out, err := yaml.Marshal(items)
		if err != nil {
			return err
		}
		fmt.Print(string(out))

		return nil
	},
}

func init() {
	describeCmd.PersistentFlags().StringP("file", "f", "", "The manifest file with the batch definitions")
	describeCmd.PersistentFlags().String("python", "", "The interpreter executable to probe and gate on")

	RootCmd.AddCommand(describeCmd)
}

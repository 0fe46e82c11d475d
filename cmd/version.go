package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	tuiUtils "github.com/matrixci/matrixci/internal/tui/utils"
	"github.com/matrixci/matrixci/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the CLI version",
	Long:    `This command prints the CLI version`,
	Example: "matrixci version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println()
		if err := tuiUtils.PrintStyledText("MATRIXCI"); err != nil {
			return err
		}

		fmt.Printf("matrixci %s on %s/%s\n\n", version.Version, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

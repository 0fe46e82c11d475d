package cmd

import (
	"fmt"
	"os"

	charm "github.com/charmbracelet/log"
	"github.com/elewis787/boa"
	"github.com/spf13/cobra"

	tuiUtils "github.com/matrixci/matrixci/internal/tui/utils"
	cfg "github.com/matrixci/matrixci/pkg/config"
	"github.com/matrixci/matrixci/pkg/logger"
	"github.com/matrixci/matrixci/pkg/schema"
	"github.com/matrixci/matrixci/pkg/ui/theme"
)

var cliConfig schema.Configuration

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "matrixci",
	Short: "Sequence test-suite batches across interpreters and optional dependencies",
	Long: `matrixci runs a test suite as a sequence of batches, each gated by host
platform and interpreter version, installing a batch's optional dependencies
before its tests and uninstalling them after. Any failing command aborts the
whole run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Determine if the command is a help command or if the help flag is set.
		isHelpRequested := cmd.Name() == "help" || cmd.Flags().Changed("help")

		if isHelpRequested {
			cmd.SilenceUsage = false
			cmd.SilenceErrors = false
		} else {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
		}

		if flagLevel, _ := cmd.Flags().GetString("logs-level"); flagLevel != "" {
			cliConfig.Logs.Level = flagLevel
		}
		if flagFile, _ := cmd.Flags().GetString("logs-file"); flagFile != "" {
			cliConfig.Logs.File = flagFile
		}

		return setupLogger(&cliConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println()
		if err := tuiUtils.PrintStyledText("MATRIXCI"); err != nil {
			return err
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	// InitCliConfig finds and merges CLI configurations in the following order:
	// system dir, home dir, current dir, ENV vars.
	var initErr error
	cliConfig, initErr = cfg.InitCliConfig()
	if initErr != nil {
		return initErr
	}

	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off")
	RootCmd.PersistentFlags().String("logs-file", "", "The file to write logs to. Logs can be written to any file or any standard file descriptor, including '/dev/stdout', '/dev/stderr' and '/dev/null'")

	cobra.OnInitialize(initStyles)
}

// initStyles wires the styled usage and help renderers.
func initStyles() {
	styles := boa.DefaultStyles()
	b := boa.New(boa.WithStyles(styles))

	RootCmd.SetUsageFunc(b.UsageFunc)
	RootCmd.SetHelpFunc(b.HelpFunc)
}

// setupLogger configures the global logger from the resolved configuration.
func setupLogger(cliConfig *schema.Configuration) error {
	level, err := logger.ParseLevel(cliConfig.Logs.Level)
	if err != nil {
		return err
	}

	var out *os.File
	switch cliConfig.Logs.File {
	case "", "/dev/stderr":
		out = os.Stderr
	case "/dev/stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cliConfig.Logs.File, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return err
		}
		out = f
	}

	l := charm.New(out)
	l.SetStyles(theme.GetLogStyles())
	l.SetLevel(level)
	l.SetReportTimestamp(false)
	logger.SetDefault(l)

	return nil
}

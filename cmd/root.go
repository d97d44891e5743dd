package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/logger"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "turnaround-dashboard",
	Short: "Turnaround Vision Dashboard Service",
	Long: `Turnaround Vision Dashboard manages plant-maintenance project data:
milestones, risks, procurement and action items backed by a relational
database, with bidirectional Excel workbook import and export.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding for CLI error reporting.
		cfg := &logger.Config{Level: "debug", Format: "console"}
		if l, logErr := logger.New(cfg); logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

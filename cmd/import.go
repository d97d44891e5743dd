package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/config"
	"github.com/reguiia/turnaround-vision-dashboard/core/database"
	"github.com/reguiia/turnaround-vision-dashboard/core/logger"
	"github.com/reguiia/turnaround-vision-dashboard/core/reconcile"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
	"github.com/reguiia/turnaround-vision-dashboard/core/workbook"
)

// importCmd reconciles a local workbook file into the database.
var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import a workbook into the dashboard database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required for import: %w", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read workbook: %w", err)
		}

		wb, err := workbook.Parse(data)
		if err != nil {
			return err
		}

		timeout := time.Duration(cfg.Import.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		engine := reconcile.NewEngine(store.NewGorm(db), logg)
		report, err := engine.ImportWorkbook(ctx, wb)
		if err != nil {
			return err
		}

		for _, warn := range report.SheetWarnings {
			logg.Warn(warn)
		}
		for _, tr := range report.Tables {
			logg.Info("table reconciled",
				zap.String("table", tr.Table),
				zap.Int("inserted", tr.Inserted),
				zap.Int("updated", tr.Updated),
				zap.Int("failed", tr.Failed),
			)
			for _, e := range tr.Errors {
				logg.Warn("row failed", zap.String("table", tr.Table), zap.String("error", e))
			}
		}
		logg.Info(report.Message())

		if report.Outcome == reconcile.OutcomeFailed {
			return fmt.Errorf("%s", report.Message())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
}

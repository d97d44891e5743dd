package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/config"
	"github.com/reguiia/turnaround-vision-dashboard/core/database"
	"github.com/reguiia/turnaround-vision-dashboard/core/logger"
	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
	"github.com/reguiia/turnaround-vision-dashboard/core/workbook"
)

// exportCmd writes the current dashboard data to a local workbook file.
var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export the dashboard database to a workbook",
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
			return fmt.Errorf("database connection required for export: %w", err)
		}
		st := store.NewGorm(db)

		snapshot := make(map[string][]store.Record, len(schema.TableNames()))
		for _, name := range schema.TableNames() {
			rows, err := st.SelectAll(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
			snapshot[name] = rows
		}

		data, err := workbook.Export(snapshot)
		if err != nil {
			return err
		}

		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		logg.Info("export written", zap.String("file", args[0]), zap.Int("bytes", len(data)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}

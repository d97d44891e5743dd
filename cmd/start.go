package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/config"
	"github.com/reguiia/turnaround-vision-dashboard/core/database"
	"github.com/reguiia/turnaround-vision-dashboard/core/logger"
	"github.com/reguiia/turnaround-vision-dashboard/core/storage"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
	"github.com/reguiia/turnaround-vision-dashboard/feature/dashboard"
)

// @title Turnaround Vision Dashboard API
// @version 1.0
// @description Data round-trip API for the turnaround management dashboard.
// @BasePath /api

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dashboard server",
	Long:  `Starts the HTTP server serving workbook import/export and dashboard data.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Database is optional; without it the service runs on the
		// in-memory store so the workbook round trip stays usable.
		var st store.Store
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed, using in-memory store", zap.Error(err))
			st = store.NewMemory()
		} else {
			logg.Info("Connected to dashboard database")
			st = store.NewGorm(db)
		}

		// Export archiving is optional too.
		var archive storage.Client
		if cfg.Storage.Enabled() {
			if client, err := storage.NewClient(cfg.Storage); err != nil {
				logg.Warn("Archive storage unavailable, exports will not be archived", zap.Error(err))
			} else {
				archive = client
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimitBytes(),
		})

		// Ray ID first so every log line of a request is correlated.
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("ray_id", uuid.NewString())
			return c.Next()
		})

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		service := dashboard.NewService(st, archive, cfg.Storage.Bucket, logg, cfg.Import)
		defer service.Close()

		api := app.Group("/api")
		dashboard.NewHandler(service, logg).RegisterRoutes(api)

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

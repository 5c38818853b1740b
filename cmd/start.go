package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"object-store/core/config"
	"object-store/core/database"
	"object-store/core/loader"
	"object-store/core/logger"
	"object-store/core/middleware/auth"
	"object-store/core/middleware/rayid"
	"object-store/core/storage"
	"object-store/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "object-store/docs/swagger"
)

// @title Object Store API
// @version 1.0
// @description Bucket-scoped object storage operations over S3/MinIO.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the object store server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Audit Database (Optional)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Audit database connection failed, auditing disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to audit database")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		recorder := objects.NewRecorder(db, logg)
		store := objects.NewStore(client, cfg.Storage, logg, recorder)

		// Verify the default bucket before accepting traffic.
		timeout := cfg.Storage.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
		if err := store.EnsureBucket(ctx); err != nil {
			cancel()
			logg.Fatal("Default bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
		cancel()

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(objects.NewFeature(store, logg, cfg.Server.ReadOnly))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		if !cfg.Server.AuthEnabled() {
			logg.Warn("No API key configured, API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("bucket", cfg.Storage.Bucket),
				zap.Bool("read_only", cfg.Server.ReadOnly),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
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

package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loadorder-manager/core/config"
	"loadorder-manager/core/loader"
	"loadorder-manager/core/locks"
	"loadorder-manager/core/logger"
	"loadorder-manager/core/middleware/auth"
	"loadorder-manager/core/middleware/rayid"
	"loadorder-manager/core/publish"
	"loadorder-manager/core/storage"
	"loadorder-manager/feature/loadorder"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "loadorder-manager/docs/swagger"
)

// @title Load Order Manager API
// @version 1.0
// @description API for reconciling plugin load orders with user locks.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the load order manager server",
	Long:  `Starts the HTTP server, restores the last published order and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Server.Validate(); err != nil {
			log.Fatalf("Invalid server configuration: %v", err)
		}
		if err := cfg.LoadOrder.Validate(); err != nil {
			log.Fatalf("Invalid loadorder configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := context.Background()

		// 3. Connect to the lock database (Optional)
		// Locks stay in memory when the database is unavailable.
		var store locks.Store
		if gs, err := openLockStore(ctx, cfg.Database, logg); err != nil {
			logg.Warn("Optional database connection failed, locks will not persist", zap.Error(err))
		} else {
			store = gs
			logg.Info("Connected to lock database", zap.String("driver", cfg.Database.Driver))
		}
		registry := locks.NewRegistry(store, logg)

		// 4. Initialize Storage when publishing is enabled
		var opts []loadorder.Option
		if cfg.LoadOrder.PublishEnabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}

			timeout := time.Duration(cfg.Storage.TimeoutSeconds) * time.Second
			if timeout <= 0 {
				timeout = 30 * time.Second
			}
			bucketCtx, cancel := context.WithTimeout(ctx, timeout)
			err = storage.EnsureBucket(bucketCtx, client, cfg.Storage.Bucket, cfg.Storage.Region)
			cancel()
			if err != nil {
				logg.Fatal("Failed to prepare storage bucket", zap.Error(err))
			}

			sink := publish.NewStorageSink(client, cfg.Storage.Bucket, cfg.LoadOrder.PublishPrefix)
			opts = append(opts, loadorder.WithSinks(sink), loadorder.WithRestorer(sink))
		}

		// 5. Build the service and pick up what was published before the restart
		svc := loadorder.NewService(cfg.LoadOrder, registry, logg, opts...)
		defer svc.Close()

		if err := svc.Restore(ctx, cfg.LoadOrder.Profile); err != nil {
			logg.Warn("Could not restore published load order", zap.Error(err))
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // Startup is logged through zap
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(loadorder.NewFeature(svc))

		// Middleware Registration
		// 1. RayID (first, so every later log line carries it)
		app.Use(rayid.New())

		// 2. Request logging with the RayID attached
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Errors are logged here once, handlers only return them
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (every other route needs the API key)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("game", cfg.LoadOrder.Game),
				zap.Duration("debounce", cfg.LoadOrder.QuietWindow()),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown did not complete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

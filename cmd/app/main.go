package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podowl/api"
	"podowl/cmd"
	httpin "podowl/internal/adapters/in/http"
	"podowl/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))

	db := openDatabase(ctx, configs, logger)

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, jobManager.ConnectivityCheck(), configs.HTTPPort, logger)
}

// getConfigs loads .env once, when present, and reads the process environment.
func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

// openDatabase never dials. Without a usable connection the service still
// starts: requests fail with 500 and the connectivity check reports why.
func openDatabase(ctx context.Context, configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if missing := configs.DB.Missing(); len(missing) > 0 {
		logger.ErrorContext(ctx, "Database settings are incomplete", "missing", missing)
		return nil
	}

	db, err := gorm.Open(gormpostgres.Open(configs.DB.DSN()), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Database connection could not be opened", "error", err)
		return nil
	}

	if err = postgres.EnsureSchema(ctx, db, configs.DB); err != nil {
		logger.ErrorContext(ctx, "Database schema creation failed", "error", err)
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		logger.ErrorContext(ctx, "Database migration failed", "error", err)
	}
	return db
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	health httpin.HealthReporter,
	port string,
	logger *slog.Logger,
) {
	doc, err := api.Load(ctx)
	if err != nil {
		log.Fatalf("Error loading API contract: %v", err)
	}
	if err = api.RegisterSwagger(doc); err != nil {
		log.Fatalf("Error registering swagger document: %v", err)
	}

	e, err := httpin.NewRouter(app.CreateHTTPServer(httpin.WithHealthReporter(health)), doc, logger)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", startErr)
		}
	}()
	logger.InfoContext(ctx, "HTTP server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

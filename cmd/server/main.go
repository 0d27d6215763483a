package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sensor-api/internal/config"
	"sensor-api/internal/controller"
	"sensor-api/internal/logger"
	"sensor-api/internal/middleware"
	"sensor-api/internal/models"
	"sensor-api/internal/repository"
	"sensor-api/internal/routes"
	"sensor-api/internal/service"
	"sensor-api/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logg := logger.New(os.Stdout, cfg.LogLevel, cfg.Environment)
	slog.SetDefault(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logg *slog.Logger) error {
	// Initialize store, repository, service, and controller
	var initial []models.Sensor
	if cfg.SeedDemoData {
		initial = models.DemoSensors()
	}
	sensors := store.New(initial...)
	repo := repository.NewMemoryRepository(sensors)
	metrics := middleware.NewMetrics()

	opts := []service.Option{service.WithObserver(metrics)}
	if cfg.InfluxEnabled() {
		sink := repository.NewInfluxSink(cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg, cfg.InfluxDBBucket, logg)
		defer sink.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := sink.Ping(pingCtx); err != nil {
			logg.Warn("InfluxDB not reachable, each create will try the mirror and give up after a short timeout", "error", err)
		} else if err := sink.EnsureBucket(pingCtx); err != nil {
			logg.Warn("Could not prepare InfluxDB bucket", "bucket", cfg.InfluxDBBucket, "error", err)
		}
		cancel()
		opts = append(opts, service.WithSink(sink))
	}

	svc := service.NewSensorService(repo, logg, opts...)
	ctrl := controller.NewSensorController(svc, logg, cfg.ServiceName)

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: routes.NewHandler(routes.Dependencies{
			Controller:     ctrl,
			Logger:         logg,
			Metrics:        metrics,
			APIKey:         cfg.APIKey,
			AllowedOrigins: cfg.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logg.Info("Shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	logg.Info("Sensor API listening",
		"addr", server.Addr,
		"url", fmt.Sprintf("http://localhost:%s", cfg.Port),
		"seeded", sensors.Len(),
		"influx", cfg.InfluxEnabled(),
	)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logg.Info("Server stopped gracefully")
	return nil
}

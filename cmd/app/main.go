package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		metrics.New(prometheus.DefaultRegisterer),
		prometheus.DefaultGatherer,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, app, configs, logger); err != nil {
		log.Fatalf("Order service stopped: %v", err)
	}
	logger.Info("Order service stopped")
}

// run serves HTTP, consumes responses and relays the outbox until ctx is
// cancelled or one of them fails.
func run(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	router, err := app.CreateResponseRouter()
	if err != nil {
		return err
	}

	broker, err := app.CreateBroker(router)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := broker.Close(); closeErr != nil {
			logger.Error("Failed to close message broker", "error", closeErr)
		}
	}()

	jobManager, err := app.CreateJobManager(broker.Bus)
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateHTTPRouter()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server started", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return broker.Consumer.Run(gctx)
	})

	return g.Wait()
}

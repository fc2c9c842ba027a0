package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"raindrop/assets"
	"raindrop/pkg/httpServer"
	downloadsRepository "raindrop/pkg/repositories/downloads"
	downloadsService "raindrop/pkg/services/downloads"
	shareService "raindrop/pkg/services/share"
	htmlTemplates "raindrop/pkg/templates"
	"raindrop/pkg/workers"
	"raindrop/pkg/workers/cleaner"
)

const usage = `usage:
  raindrop [serve] [-p port] [-i path]... [-I content-file] [-m message] [path...]
  raindrop view <server url>
  raindrop snapshot [-o file] <server url>`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command, rest := splitCommand(args)

	switch command {
	case "view":
		return runView(rest)
	case "snapshot":
		return runSnapshot(rest)
	default:
		return runServe(rest)
	}
}

func splitCommand(args []string) (string, []string) {
	if len(args) > 0 {
		switch args[0] {
		case "serve", "view", "snapshot":
			return args[0], args[1:]
		}
	}

	return "serve", args
}

func runServe(args []string) (err error) {
	// Tools
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if err = applyServeFlags(config, args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}

	logger := newLogger(os.Stdout, config.System.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dbRequestsCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Metrics.Namespace,
			Subsystem: config.Metrics.DbSubsystem,
			Name:      "db_requests_count",
			Help:      "Db requests count",
		},
		[]string{"method", "error"},
	)

	dbRequestsDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Metrics.Namespace,
			Subsystem: config.Metrics.DbSubsystem,
			Name:      "db_requests_duration",
			Help:      "Db requests duration",
		},
		[]string{"method", "error"},
	)

	servicesRequestsCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Metrics.Namespace,
			Subsystem: config.Metrics.ServicesSubsystem,
			Name:      "services_requests_count",
			Help:      "Services requests count",
		},
		[]string{"method", "error"},
	)

	servicesRequestsDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Metrics.Namespace,
			Subsystem: config.Metrics.ServicesSubsystem,
			Name:      "services_requests_duration",
			Help:      "Services requests duration",
		},
		[]string{"method", "error"},
	)

	workersRunsCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Metrics.Namespace,
			Subsystem: config.Metrics.WorkersSubsystem,
			Name:      "workers_runs_count",
			Help:      "Workers runs count",
		},
		[]string{"method", "error"},
	)

	workersRunsDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Metrics.Namespace,
			Subsystem: config.Metrics.WorkersSubsystem,
			Name:      "workers_runs_duration",
			Help:      "Workers runs duration",
		},
		[]string{"method", "error"},
	)

	registry.MustRegister(
		dbRequestsCount,
		dbRequestsDuration,
		servicesRequestsCount,
		servicesRequestsDuration,
		workersRunsCount,
		workersRunsDuration,
	)

	// Database
	downloadsRepo := downloadsRepository.NewNoop()
	if config.DB.Host != "" {
		connPool, err := connectPostgres(ctx, config, logger)
		if err != nil {
			logger.Error("failed to connect to Postgres", slog.String("error", err.Error()))
			return err
		}
		defer connPool.Close()

		if err := downloadsRepository.CreateSchema(ctx, connPool); err != nil {
			logger.Error("failed to prepare database", slog.String("error", err.Error()))
			return err
		}

		downloadsRepo = downloadsRepository.NewRepository(connPool)
	} else {
		logger.Info("DB_HOST is not set, download audit is disabled")
	}
	downloadsRepo = downloadsRepository.NewMetrics(dbRequestsCount, dbRequestsDuration, downloadsRepo)

	// Services
	shareSvc := shareService.NewService(shareService.Config{
		Paths:       config.Share.Paths,
		Message:     config.Share.Message,
		ContentPath: config.Share.ContentPath,
	}, logger)
	shareSvc = shareService.NewCacheMiddleware(shareSvc, config.Share.CacheTTL)
	shareSvc = shareService.NewMetrics(servicesRequestsCount, servicesRequestsDuration, shareSvc)

	downloadsSvc := downloadsService.NewService(downloadsRepo, logger)

	templatesSvc, err := htmlTemplates.New(assets.FS, config.System.Footer)
	if err != nil {
		logger.Error("failed to initialize templates", slog.String("error", err.Error()))
		return err
	}

	static, err := fs.Sub(assets.FS, "public")
	if err != nil {
		return err
	}

	// Workers
	if config.DB.Host != "" {
		cleanerWorker := cleaner.NewWorker(downloadsRepo, config.Retention.Period, config.Retention.Interval, logger)
		cleanerWorker = cleaner.NewMetrics(workersRunsCount, workersRunsDuration, cleanerWorker)

		bg := workers.NewWorkers(cleanerWorker, logger)
		if err := bg.Start(ctx); err != nil {
			logger.Error("failed to start workers", slog.String("error", err.Error()))
			return err
		}
		defer func() {
			cancel()
			<-bg.Done()
		}()
	}

	// HTTP Server
	accessTokens := strings.Split(config.System.AccessTokens, ";")
	app := fiber.New(fiber.Config{
		AppName:               "raindrop",
		ErrorHandler:          httpServer.ErrorHandler,
		DisableStartupMessage: true,
	})
	server := httpServer.New(
		app,
		shareSvc,
		downloadsSvc,
		templatesSvc,
		static,
		registry,
		accessTokens,
		config.Metrics.Namespace,
		config.Metrics.ServerSubsystem,
		logger,
	)
	if server == nil {
		return fmt.Errorf("failed to create HTTP server handler")
	}

	server.RegisterRoutes()

	printServerInfo(os.Stdout, config.System.Port)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	err = serve(app, ":"+config.System.Port, signalChan, logger)
	cancel()

	return err
}

// serve runs app until a signal arrives or the listener fails.
func serve(app *fiber.App, addr string, signals <-chan os.Signal, logger *slog.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err == nil {
			return nil
		}
		logger.Error("error starting server", slog.String("err", err.Error()))
		return fmt.Errorf("failed to start server: %w", err)
	case <-signals:
	}

	if err := app.ShutdownWithTimeout(time.Second * 5); err != nil {
		logger.Error("server shut down error", slog.String("err", err.Error()))
		return err
	}

	return nil
}

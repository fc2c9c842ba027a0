package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"raindrop/pkg/utils"
)

func newLogger(w io.Writer, level uint8) *slog.Logger {
	logLevel := slog.LevelInfo
	if l, ok := logLevels[level]; ok {
		logLevel = l
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func connectPostgres(ctx context.Context, config *Config, logger *slog.Logger) (connPool *pgxpool.Pool, err error) {
	cfg, err := newPostgresConfig(config, logger)
	if err != nil {
		return
	}

	connPool, err = pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		err = fmt.Errorf("failed to create a new Postgres connection pool: %w", err)
		return
	}

	connection, err := connPool.Acquire(ctx)
	if err != nil {
		connPool.Close()
		err = fmt.Errorf("failed to acquire a connection from the Postgres pool: %w", err)
		return
	}
	defer connection.Release()

	err = connection.Ping(ctx)
	if err != nil {
		err = fmt.Errorf("failed to ping the Postgres database: %w", err)
		return
	}

	return
}

func newPostgresConfig(config *Config, logger *slog.Logger) (dbConfig *pgxpool.Config, err error) {
	const defaultMaxConns = int32(4)
	const defaultMinConns = int32(1)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 30
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5
	const DATABASE_URL string = "postgres://%s:%s@%s:%s/%s"

	user := url.QueryEscape(config.DB.User)
	password := url.QueryEscape(config.DB.Password)

	pgUrl := fmt.Sprintf(DATABASE_URL, user, password, config.DB.Host, config.DB.Port, config.DB.Name)
	dbConfig, err = pgxpool.ParseConfig(pgUrl)
	if err != nil {
		err = fmt.Errorf("failed to parse Postgres connection string: %w", err)
		return
	}

	dbConfig.MaxConns = defaultMaxConns
	dbConfig.MinConns = defaultMinConns
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	dbConfig.BeforeClose = func(c *pgx.Conn) {
		logger.Debug("closed a database connection")
	}

	return
}

// printServerInfo prints the addresses the share page can be opened at.
func printServerInfo(w io.Writer, port string) {
	fmt.Fprintf(w, "Starting raindrop server...\n")
	fmt.Fprintf(w, "Access URLs:\n")
	fmt.Fprintf(w, "   Local:   http://127.0.0.1:%s\n", port)

	// Without interfaces only the local address is shown.
	ips, err := utils.LANAddresses()
	if err == nil {
		for _, ip := range ips {
			fmt.Fprintf(w, "   Network: http://%s:%s\n", ip.String(), port)
		}
	}

	fmt.Fprintf(w, "Press Ctrl+C to stop the server.\n")
}

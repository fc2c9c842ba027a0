package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var logLevels = map[uint8]slog.Level{
	0: slog.LevelDebug,
	1: slog.LevelInfo,
	2: slog.LevelWarn,
	3: slog.LevelError,
}

type System struct {
	Port string `env:"SYSTEM_PORT" envDefault:"8080"`

	// AccessTokens format: "hash1:downloads,metrics;hash2:metrics;hash3"
	// Tokens separated by semicolon (;), permissions by comma (,)
	// Permissions: downloads, metrics, all
	// If no permissions specified - all permissions granted.
	AccessTokens string `env:"SYSTEM_ACCESS_TOKENS" envDefault:""`
	LogLevel     uint8  `env:"SYSTEM_LOG_LEVEL" envDefault:"1"` // 0 - debug, 1 - info, 2 - warn, 3 - error
	Footer       string `env:"SYSTEM_FOOTER" envDefault:"shared with raindrop"`
}

type Share struct {
	Paths       []string      `env:"SHARE_PATHS" envSeparator:";"`
	Message     string        `env:"SHARE_MESSAGE"`
	ContentPath string        `env:"SHARE_CONTENT_FILE"`
	CacheTTL    time.Duration `env:"SHARE_CACHE_TTL" envDefault:"2s"`
}

type Metrics struct {
	Namespace         string `env:"NAMESPACE" envDefault:"raindrop"`
	ServerSubsystem   string `env:"SERVER_SUBSYSTEM" envDefault:"server"`
	ServicesSubsystem string `env:"SERVICES_SUBSYSTEM" envDefault:"services"`
	WorkersSubsystem  string `env:"WORKERS_SUBSYSTEM" envDefault:"workers"`
	DbSubsystem       string `env:"DB_SUBSYSTEM" envDefault:"db"`
}

// Postgres is optional: without DB_HOST downloads are not recorded.
type Postgres struct {
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"raindrop"`
}

type Retention struct {
	Period   time.Duration `env:"RETENTION_PERIOD" envDefault:"720h"`
	Interval time.Duration `env:"RETENTION_INTERVAL" envDefault:"1h"`
}

type Config struct {
	System    System
	Share     Share
	Metrics   Metrics
	DB        Postgres
	Retention Retention
}

func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(&cfg.System); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}
	if err := env.Parse(&cfg.Share); err != nil {
		return nil, fmt.Errorf("failed to parse share config: %w", err)
	}
	if err := env.Parse(&cfg.Metrics); err != nil {
		return nil, fmt.Errorf("failed to parse metrics config: %w", err)
	}
	if err := env.Parse(&cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if err := env.Parse(&cfg.Retention); err != nil {
		return nil, fmt.Errorf("failed to parse retention config: %w", err)
	}

	return cfg, nil
}

var errNothingToShare = errors.New("nothing to share: pass files or directories (-i), a content file (-I) or a message (-m)")

type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ",")
}

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// applyServeFlags overrides cfg with the serve command line and validates the result.
// Positional arguments are shared paths, like -i.
func applyServeFlags(cfg *Config, args []string) error {
	fset := flag.NewFlagSet("serve", flag.ContinueOnError)

	var paths pathList
	fset.Var(&paths, "i", "file or directory to share, may be repeated")
	contentPath := fset.String("I", "", "text file shown as a snippet on the page")
	message := fset.String("m", "", "message shown on the page")
	port := fset.String("p", "", "port to listen on (default $SYSTEM_PORT)")

	if err := fset.Parse(args); err != nil {
		return err
	}

	paths = append(paths, fset.Args()...)
	if len(paths) > 0 {
		cfg.Share.Paths = paths
	}
	if *contentPath != "" {
		cfg.Share.ContentPath = *contentPath
	}
	if *message != "" {
		cfg.Share.Message = *message
	}
	if *port != "" {
		cfg.System.Port = *port
	}

	if len(cfg.Share.Paths) == 0 && cfg.Share.ContentPath == "" && strings.TrimSpace(cfg.Share.Message) == "" {
		return errNothingToShare
	}

	return cfg.validate()
}

// validate checks the port and the shared paths, making the paths absolute.
func (c *Config) validate() error {
	port, err := strconv.Atoi(c.System.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q: must be a number between 1 and 65535", c.System.Port)
	}

	for i, p := range c.Share.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid shared path %q: %w", p, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("shared path %q: %w", p, err)
		}
		c.Share.Paths[i] = abs
	}

	if c.Share.ContentPath != "" {
		abs, err := filepath.Abs(c.Share.ContentPath)
		if err != nil {
			return fmt.Errorf("invalid content file %q: %w", c.Share.ContentPath, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("content file %q: %w", c.Share.ContentPath, err)
		}
		if info.IsDir() {
			return fmt.Errorf("content file %q is a directory", c.Share.ContentPath)
		}
		c.Share.ContentPath = abs
	}

	return nil
}

// Command migrate applies the LMS schema subset the bridge reads. It is meant
// for development databases; production points at an existing Moodle site.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/aspiredu/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "ASPIREDU_DB_DSN"

type options struct {
	dsn      string
	up       bool
	down     bool
	steps    int
	version  bool
	force    int
	forceSet bool
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var opts options
	flag.StringVar(&opts.dsn, "dsn", "", "Database URL (defaults to "+envDSN+", then config.toml)")
	flag.BoolVar(&opts.up, "up", false, "Run all up migrations")
	flag.BoolVar(&opts.down, "down", false, "Run all down migrations")
	flag.IntVar(&opts.steps, "steps", 0, "Number of migrations (positive=up, negative=down)")
	flag.BoolVar(&opts.version, "version", false, "Print current migration version")
	flag.IntVar(&opts.force, "force", -1, "Force set version (use with caution)")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			opts.forceSet = true
		}
	})

	if err := run(opts, logger); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	dsn, err := resolveDSN(opts.dsn)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch {
	case opts.version:
		v, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}
		logger.Info("schema version", "version", v, "dirty", dirty)
	case opts.forceSet:
		if err := m.Force(opts.force); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		logger.Info("forced version", "version", opts.force)
	case opts.up:
		if err := m.Up(); ignoreNoChange(err) != nil {
			return fmt.Errorf("run up migrations: %w", err)
		}
		logger.Info("migrations applied")
	case opts.down:
		if err := m.Down(); ignoreNoChange(err) != nil {
			return fmt.Errorf("run down migrations: %w", err)
		}
		logger.Info("migrations reverted")
	case opts.steps != 0:
		if err := m.Steps(opts.steps); ignoreNoChange(err) != nil {
			return fmt.Errorf("run migration steps: %w", err)
		}
		logger.Info("migration steps applied", "steps", opts.steps)
	default:
		fmt.Println("usage: migrate [-dsn <url>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// resolveDSN prefers the flag, then the environment, then the database
// section of the service configuration.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("no -dsn or %s given and config failed: %w", envDSN, err)
	}

	db := cfg.Database
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: url.Values{"sslmode": {db.SSLMode}}.Encode(),
	}
	return u.String(), nil
}

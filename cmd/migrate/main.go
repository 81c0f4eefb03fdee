// Command migrate manages the finance manager schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/finmanager/backend/internal/infrastructure/logger"
	"github.com/finmanager/backend/internal/infrastructure/migration"
	"github.com/finmanager/backend/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// dbCommand runs against an open migrator with the arguments after the command name.
type dbCommand func(m *migration.Migrator, log *zap.Logger, args []string) error

var dbCommands = map[string]dbCommand{
	"up": func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Up()
	},
	"down": func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Down()
	},
	"step": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"goto": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative, got %d", v)
		}
		return m.GoTo(uint(v))
	},
	"version": func(m *migration.Migrator, log *zap.Logger, _ []string) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	},
	"force": func(m *migration.Migrator, log *zap.Logger, args []string) error {
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		log.Warn("Forcing schema version", zap.Int("version", v))
		return m.Force(v)
	},
	"drop": func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		if !slices.Contains(args, "-confirm") && !slices.Contains(args, "--confirm") {
			return errors.New("drop removes every table; rerun as 'migrate drop -confirm'")
		}
		return m.Drop()
	},
}

func main() {
	root := flag.String("path", "migrations", "Root of the per-dialect migration directories (create and list)")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	err = run(log, *root, args[0], args[1:])
	logger.Sync(log)
	if err != nil {
		log.Error("Migration command failed", zap.String("command", args[0]), zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, root, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if root, err = filepath.Abs(root); err != nil {
		return err
	}
	log.Info("Migration command", zap.String("command", command), zap.String("driver", cfg.Database.Driver))

	switch command {
	case "create":
		return create(log, root, args)
	case "list":
		return list(log, filepath.Join(root, cfg.Database.Driver))
	}

	cmd, ok := dbCommands[command]
	if !ok {
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}

	db, err := openDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	m, err := migration.New(db, cfg.Database.Driver, log)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	return cmd(m, log, args)
}

func create(log *zap.Logger, root string, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: migrate create <name> [description]")
	}
	var description string
	if len(args) > 1 {
		description = args[1]
	}
	files, err := migration.CreateMigration(root, args[0], description)
	if err != nil {
		return err
	}
	for _, f := range files {
		log.Info("Created migration",
			zap.String("dialect", f.Dialect),
			zap.String("version", f.Version),
			zap.String("up", f.UpPath),
			zap.String("down", f.DownPath),
		)
	}
	return nil
}

func list(log *zap.Logger, dir string) error {
	names, err := migration.ListMigrations(dir)
	if err != nil {
		return err
	}
	log.Info("Migrations", zap.String("dir", dir), zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

// openDatabase opens a plain connection for the configured driver. The
// sqlite3 driver is registered by the migrate sqlite3 package.
func openDatabase(cfg *config.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case migration.DriverSQLite:
		return sql.Open("sqlite3", persistence.SQLiteDSN(cfg.SQLitePath))
	case migration.DriverPostgres:
		return sql.Open("postgres", cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Finance manager schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the applied version
  force <version>       Mark a version as applied without running it
  drop -confirm         Drop all tables
  create <name> [desc]  Create an up/down pair for every dialect
  list                  List migrations of the configured dialect

Flags:
  -path string          Migrations root (default "migrations")
  -log-level string     debug, info, warn or error (default "info")

Environment:
  FM_DATABASE_DRIVER, FM_DATABASE_SQLITE_PATH, FM_DATABASE_HOST, FM_DATABASE_PORT,
  FM_DATABASE_USER, FM_DATABASE_PASSWORD, FM_DATABASE_DBNAME, FM_DATABASE_SSLMODE
`)
}

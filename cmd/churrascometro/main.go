// Churrascômetro: barbecue shopping list and cost calculator.
//
// Runs the terminal UI by default, or the JSON HTTP API with -serve. Both
// work on the same local SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/churrascometro/churrascometro/internal/config"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/database/seed"
	"github.com/churrascometro/churrascometro/internal/server"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	configPath     string
	migrateOnly    bool
	serve          bool
	debug          bool
	seedDemo       bool
	backup         bool
	exportProfiles string
	importProfiles string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.migrateOnly, "migrate-only", false, "Run migrations and exit")
	flag.BoolVar(&opts.serve, "serve", false, "Serve the HTTP API instead of the terminal UI")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.seedDemo, "seed-demo", false, "Create demo stores for the price comparison")
	flag.BoolVar(&opts.backup, "backup", false, "Write a database backup and exit")
	flag.StringVar(&opts.exportProfiles, "export-profiles", "", "Write custom profiles to a YAML file and exit")
	flag.StringVar(&opts.importProfiles, "import-profiles", "", "Read profiles from a YAML file and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Churrascômetro version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(15*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("application error", "error", err)
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("churrascometro starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if opts.migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	seedCfg := seed.DefaultConfig()
	seedCfg.DemoStores = opts.seedDemo
	if err := seed.NewGenerator(db.DB, seedCfg).Generate(ctx); err != nil {
		return fmt.Errorf("seeding presets: %w", err)
	}
	switch {
	case opts.backup:
		path, err := db.Backup(ctx)
		if err != nil {
			return fmt.Errorf("backing up database: %w", err)
		}
		fmt.Println("Backup salvo em", path)
		return nil
	case opts.exportProfiles != "":
		return exportProfiles(ctx, planner.NewService(db.DB), opts.exportProfiles)
	case opts.importProfiles != "":
		return importProfiles(ctx, planner.NewService(db.DB), opts.importProfiles)
	case opts.serve:
		if err := server.New(db, cfg.Server).Run(ctx); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		slog.Info("churrascometro shutdown complete")
		return nil
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI", "color_scheme", cfg.Display.ColorScheme)
	if err := tui.Run(ctx, db, cfg); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("churrascometro shutdown complete")
	return nil
}

// setupLogging installs the default slog logger: JSON into the log file
// when one is configured, text on stderr otherwise.
func setupLogging(cfg *config.Config, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if logPath == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return func() {}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})))
	return func() { logFile.Close() }, nil
}

// openDatabase recovers a damaged database file, opens it and applies the
// pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("ensuring data directory: %w", err)
	}

	backupDir, err := config.BackupDir(cfg)
	if err != nil {
		slog.Warn("failed to create backup directory", "error", err)
		backupDir = ""
	}

	report, err := database.AttemptRecovery(dbPath, backupDir)
	if err != nil {
		return nil, fmt.Errorf("database recovery failed after %d steps: %w", len(report.Steps), err)
	}
	switch report.Result {
	case database.RecoveryFromBackup:
		slog.Warn("database restored from backup", "backup", report.BackupUsed)
	case database.RecoveryFromWAL:
		slog.Warn("database recovered from WAL")
	default:
		slog.Debug("database integrity verified", "path", dbPath)
	}

	db, err := database.Open(dbPath, &cfg.Database, backupDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	migrator, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	result, err := migrator.MigrateUp(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations", "count", len(result.Applied), "to_version", result.TargetVersion)
	}
	return db, nil
}

func exportProfiles(ctx context.Context, svc *planner.Service, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0640)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	n, err := svc.ExportProfiles(ctx, f)
	if err != nil {
		return fmt.Errorf("exporting profiles: %w", err)
	}
	fmt.Printf("%d perfis exportados para %s\n", n, path)
	return nil
}

func importProfiles(ctx context.Context, svc *planner.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n, err := svc.ImportProfiles(ctx, f)
	if err != nil {
		return fmt.Errorf("importing profiles: %w", err)
	}
	fmt.Printf("%d perfis importados de %s\n", n, path)
	return nil
}

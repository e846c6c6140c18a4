package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the configuration file looked up in the XDG
	// config directory and the working directory.
	DefaultConfigFileName = "churrascometro.toml"

	// XDGConfigSubdir is the application directory under XDG_CONFIG_HOME
	// and XDG_DATA_HOME.
	XDGConfigSubdir = "churrascometro"

	backupSubdir = "backups"
)

const fileHeader = `# Churrascômetro configuration
#
# Written on first run with the default values. Variables prefixed with
# CHURRASCOMETRO_ (also read from .env) override what is set here.

`

// LoadError wraps a failure to read, parse or validate a config file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load returns the configuration and the file it came from.
//
// An explicit path is the only candidate when given. Otherwise the XDG
// config file is tried, then ./churrascometro.toml. When neither exists and
// createDefault is set, the defaults (with environment overrides) are
// written to the XDG location, or the working directory when that cannot be
// created. A default that cannot be written is still returned, with an
// empty path.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	candidates := searchPaths(explicitPath)
	for _, path := range candidates {
		if explicitPath == "" && !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", errors.New("no configuration file found; searched: " + strings.Join(candidates, ", "))
	}

	cfg := Default()
	if err := ApplyEnv(cfg); err != nil {
		return nil, "", fmt.Errorf("applying environment: %w", err)
	}

	target := candidates[len(candidates)-1]
	if xdg := xdgConfigPath(); xdg != "" && os.MkdirAll(filepath.Dir(xdg), 0750) == nil {
		target = xdg
	}
	if err := Save(cfg, target); err != nil {
		slog.Warn("could not write default config", "path", target, "error", err)
		return cfg, "", nil
	}
	return cfg, target, nil
}

func searchPaths(explicitPath string) []string {
	if explicitPath != "" {
		return []string{explicitPath}
	}
	var paths []string
	if xdg := xdgConfigPath(); xdg != "" {
		paths = append(paths, xdg)
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

// loadFromFile decodes path over the defaults, so absent keys keep their
// default values, then applies the environment and validates.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	cfg := Default()
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		slog.Warn("unknown configuration keys", "path", path, "keys", fmt.Sprint(undecoded))
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, preceded by a short comment header.
func Save(cfg *Config, path string) error {
	if err := mkdirFor(path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(fileHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

// EnsureDataDir returns the database file path, creating its directory.
// Relative paths are placed in the XDG data directory; if that cannot be
// created the path is used relative to the working directory.
func EnsureDataDir(cfg *Config) (string, error) {
	dbPath := cfg.Database.Path
	if filepath.IsAbs(dbPath) {
		if err := mkdirFor(dbPath); err != nil {
			return "", fmt.Errorf("creating database directory: %w", err)
		}
		return dbPath, nil
	}

	dataDir := xdgDataDir()
	if dataDir == "" || os.MkdirAll(dataDir, 0750) != nil {
		return dbPath, nil
	}
	return filepath.Join(dataDir, dbPath), nil
}

// EnsureLogDir returns the log file path, creating its directory. An empty
// logging.file disables file logging and yields "".
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File
	if logPath == "" {
		return "", nil
	}
	logPath = inDataDir(logPath)
	if err := mkdirFor(logPath); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return logPath, nil
}

// BackupDir returns (and creates) the backups directory beside the
// database.
func BackupDir(cfg *Config) (string, error) {
	dir := filepath.Join(filepath.Dir(inDataDir(cfg.Database.Path)), backupSubdir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	return dir, nil
}

// inDataDir anchors a relative path in the XDG data directory when one is
// available.
func inDataDir(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if dataDir := xdgDataDir(); dataDir != "" {
		return filepath.Join(dataDir, path)
	}
	return path
}

func mkdirFor(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0750)
}

func xdgConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, XDGConfigSubdir, DefaultConfigFileName)
}

func xdgDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, XDGConfigSubdir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

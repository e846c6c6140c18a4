package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHURRASCOMETRO_"

// LoadDotEnv loads variables from .env files without overriding variables
// that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values from CHURRASCOMETRO_* variables.
func ApplyEnv(cfg *Config) error {
	if v := getEnv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.Logging.File = v
	}
	if v := getEnv("COLOR_SCHEME"); v != "" {
		cfg.Display.ColorScheme = ColorScheme(v)
	}
	if v := getEnv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getEnv("SERVER_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := getEnv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sMETRICS_ENABLED: %s", EnvPrefix, v)
		}
		cfg.Server.MetricsEnabled = b
	}
	return nil
}

func getEnv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

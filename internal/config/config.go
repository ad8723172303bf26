// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all LoreKeep environment variables, e.g.
// LOREKEEP_DB_DRIVER or LOREKEEP_SECRET_KEY.
const envPrefix = "LOREKEEP_"

// Config holds everything the server needs. It is built once in main
// and passed down; nothing reads the environment after Load returns.
type Config struct {
	Addr      string `koanf:"addr"`
	SecretKey string `koanf:"secret_key"`

	DBDriver string `koanf:"db_driver"`
	DBConn   string `koanf:"db_conn"`

	UploadDir      string `koanf:"upload_dir"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`

	AllowedOrigins []string `koanf:"allowed_origins"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		SecretKey:      "lorekeep-dev-secret-change-in-prod",
		DBDriver:       "sqlite3",
		DBConn:         "./lorekeep.db",
		UploadDir:      "uploads",
		MaxUploadBytes: 16 << 20,
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// Load merges LOREKEEP_* environment variables over the defaults.
// List-valued variables are comma-separated.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Env lists arrive comma-joined; normalize separators and spacing.
	var origins []string
	for _, o := range cfg.AllowedOrigins {
		for _, p := range strings.Split(o, ",") {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
	}
	cfg.AllowedOrigins = origins

	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("max_upload_bytes must be positive, got %d", cfg.MaxUploadBytes)
	}

	return cfg, nil
}

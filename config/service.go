package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/gcbaptista/go-facet-engine/internal/validation"
)

// Storage backends for persisted votes and subscriptions.
const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendBadger = "badger"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is stripped from environment variables before they are mapped onto config keys.
const EnvPrefix = "FACETD_"

// DefaultConfigPaths lists the paths searched for a config file, first match wins.
var DefaultConfigPaths = []string{
	"facetd.yaml",
	"facetd.yml",
	"/etc/facetd/facetd.yaml",
}

// ServiceConfig is the process-level configuration of the facet daemon.
type ServiceConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Logging  LoggingConfig  `koanf:"logging"`
	Seed     SeedConfig     `koanf:"seed"`
	Sessions SessionsConfig `koanf:"sessions"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port" validate:"min=1,max=65535"`
	MaxBodyBytes int64  `koanf:"max_body_bytes" validate:"min=1"`
	Mode         string `koanf:"mode" validate:"oneof=debug release test"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects where collections, votes and subscriptions live.
type StorageConfig struct {
	Backend string `koanf:"backend" validate:"oneof=memory file badger"`
	DataDir string `koanf:"data_dir" validate:"required"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// SeedConfig points at an optional JSON file with collections to create on startup.
type SeedConfig struct {
	Path string `koanf:"path"`
}

// SessionsConfig controls expiry of idle browsing sessions.
// A zero MaxIdle keeps sessions until they are deleted.
type SessionsConfig struct {
	MaxIdle         time.Duration `koanf:"max_idle" validate:"min=0"`
	JanitorInterval time.Duration `koanf:"janitor_interval" validate:"min=0"`
}

func defaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			MaxBodyBytes: 10 << 20, // 10MB, same as the bulk record upload limit
			Mode:         "release",
		},
		Storage: StorageConfig{
			Backend: StorageBackendFile,
			DataDir: "./data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Sessions: SessionsConfig{
			MaxIdle:         30 * time.Minute,
			JanitorInterval: time.Minute,
		},
	}
}

// LoadServiceConfig layers struct defaults, an optional YAML file and FACETD_* environment
// variables, in that order, and validates the result.
// An explicit path takes precedence over CONFIG_PATH and the default search paths.
func LoadServiceConfig(path string) (*ServiceConfig, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultServiceConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment
	// FACETD_SERVER_PORT -> server.port
	// FACETD_STORAGE_DATA_DIR -> storage.data_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &ServiceConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks struct tags on every section.
func (c *ServiceConfig) Validate() error {
	return validation.ValidateStruct(c)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, candidate := range DefaultConfigPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// envTransformFunc maps FACETD_<SECTION>_<KEY> onto <section>.<key>.
// Only the first underscore after the prefix separates the section; the rest belong to the key.
func envTransformFunc(key string) string {
	trimmed := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, found := strings.Cut(trimmed, "_")
	if !found || rest == "" {
		return ""
	}
	return section + "." + rest
}

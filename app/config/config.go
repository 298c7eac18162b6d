package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Netflix/go-env"
)

type Config struct {
	Host     string `toml:"host" env:"BLOGPOSTS_HOST"`
	Port     int    `toml:"port" env:"BLOGPOSTS_PORT"`
	DBPath   string `toml:"db_path" env:"BLOGPOSTS_DB_PATH"`
	InMemory bool   `toml:"in_memory" env:"BLOGPOSTS_IN_MEMORY"`
	// logging
	LogLevel      string `toml:"log_level" env:"BLOGPOSTS_LOG_LEVEL"`
	LogFile       string `toml:"log_file" env:"BLOGPOSTS_LOG_FILE"`
	LogToStdout   bool   `toml:"log_to_stdout" env:"BLOGPOSTS_LOG_TO_STDOUT"`
	LogFormatJSON bool   `toml:"log_format_json" env:"BLOGPOSTS_LOG_FORMAT_JSON"`
	// http server
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"BLOGPOSTS_SHUTDOWN_TIMEOUT"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"BLOGPOSTS_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"BLOGPOSTS_WRITE_TIMEOUT"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Default returns the settings used when no config file is given
func Default() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8080,
		DBPath:          "data/badger",
		LogLevel:        "info",
		LogToStdout:     true,
		ShutdownTimeout: 10 * time.Second,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
	}
}

// Load reads the env section of the TOML file at path, then applies
// BLOGPOSTS_* environment overrides. An empty path starts from Default.
func Load(path, envName string) (*Config, error) {
	cfg := Default()

	if path != "" {
		var t Toml
		if _, err := toml.DecodeFile(path, &t); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
		fromFile, err := t.Get(envName)
		if err != nil {
			return nil, err
		}
		mergeDefaults(fromFile, cfg)
		cfg = fromFile
	}

	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeDefaults fills unset fields of cfg from def
func mergeDefaults(cfg, def *Config) {
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.DBPath == "" && !cfg.InMemory {
		cfg.DBPath = def.DBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.LogFile == "" {
		// nothing else to write to
		cfg.LogToStdout = true
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if !c.InMemory && c.DBPath == "" {
		return errors.New("db_path is required unless in_memory is set")
	}
	if c.ShutdownTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EnvFromOS returns the config environment name from BLOGPOSTS_ENV, defaulting to development
func EnvFromOS() string {
	if e := os.Getenv("BLOGPOSTS_ENV"); e != "" {
		return e
	}
	return "development"
}

// Package config handles loading and parsing application configuration.
//
// The API server (MustLoad) supports two sources for its YAML file, in
// priority order:
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The terminal form (LoadForm) needs only the API base URL, so its YAML
// file is optional and every field has an environment default.
//
// The parsed values are returned as pointers so the structs are shared
// by reference rather than copied everywhere.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure of the API server.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// CORSOrigin is the origin allowed to call the API from a browser,
	// e.g. "http://localhost:3000". "*" allows any origin.
	CORSOrigin string `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"*"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8080".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// MustLoad reads, validates, and returns the server config.
//
// Functions prefixed with "Must" are allowed to fatal on failure.
// Callers do not need to check a returned error: if this function
// returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/feedback-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the server config from configPath. It is the error-returning
// core of MustLoad.
func Load(configPath string) (*Config, error) {
	// Verify the file exists before trying to read it, so the message is
	// clearer than a bare "open: no such file".
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// cleanenv.ReadConfig reads the YAML file, applies env overrides and
	// env-default values, and enforces env-required.
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

// Form is the configuration of the terminal feedback form.
type Form struct {
	// APIBaseURL is the scheme://host[:port] the form talks to.
	APIBaseURL string `yaml:"api_base_url" env:"FEEDBACK_API_URL" env-default:"http://localhost:8080"`

	// Timeout bounds each single request to the API.
	Timeout time.Duration `yaml:"timeout" env:"FEEDBACK_API_TIMEOUT" env-default:"10s"`
}

// LoadForm reads the form config. When configPath is empty only the
// environment (and defaults) are consulted.
func LoadForm(configPath string) (*Form, error) {
	var cfg Form

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.LoadForm: read env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("config.LoadForm: %w", err)
	}

	return &cfg, nil
}

// Package config builds the process configuration once at startup.
// Required identifiers come from the environment (optionally seeded from a
// .env file); an optional pulse.yaml supplies server and adapter tuning.
// Missing required values are a fatal startup error, never a request error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the assembled process configuration, passed down explicitly.
type Config struct {
	Addr                 string `env:"PULSE_ADDR" envDefault:":8000"`
	DatabaseURL          string `env:"DATABASE_URL"`
	DatabaseURLSecretARN string `env:"DATABASE_URL_SECRET_ARN"`
	S3Bucket             string `env:"S3_BUCKET_NAME"`
	AWSRegion            string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpoint          string `env:"AWS_ENDPOINT_URL"`

	Server     ServerConfig
	Archive    ArchiveConfig
	Classifier ClassifierConfig
}

// ServerConfig tunes the HTTP server.
type ServerConfig struct {
	APIKey         string `yaml:"apiKey"`
	MaxRequestBody int64  `yaml:"maxRequestBody"`
}

// ArchiveConfig tunes the S3 archival adapter.
type ArchiveConfig struct {
	RawPrefix    string `yaml:"rawPrefix"`
	ResultPrefix string `yaml:"resultPrefix"`
}

// ClassifierConfig tunes the classification adapter. Durations are
// time.ParseDuration strings ("5s", "1m"); invalid values fall back to the
// adapter defaults.
type ClassifierConfig struct {
	Timeout       string `yaml:"timeout"`
	FailThreshold int    `yaml:"failThreshold"`
	Cooldown      string `yaml:"cooldown"`
	FailWindow    string `yaml:"failWindow"`
}

// yamlFile mirrors the optional pulse.yaml layout.
type yamlFile struct {
	Server     ServerConfig     `yaml:"server"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Addr       string           `yaml:"addr"`
}

// Load assembles the configuration from dir. A missing .env or pulse.yaml is
// fine; a malformed pulse.yaml or missing required identifier is not.
func Load(dir string) (*Config, error) {
	// Seed the environment from .env if present; real env vars win.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	path := filepath.Join(dir, "pulse.yaml")
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err == nil {
		var f yamlFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		cfg.Server = f.Server
		cfg.Archive = f.Archive
		cfg.Classifier = f.Classifier
		if f.Addr != "" {
			cfg.Addr = f.Addr
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" && cfg.DatabaseURLSecretARN == "" {
		return fmt.Errorf("DATABASE_URL (or DATABASE_URL_SECRET_ARN) is required")
	}
	if cfg.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET_NAME is required")
	}
	return nil
}

// Package commands implements the CLI subcommands for the pulse binary.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/marketpulse/pulse/internal/archive"
	"github.com/marketpulse/pulse/internal/classifier"
	"github.com/marketpulse/pulse/internal/config"
	"github.com/marketpulse/pulse/internal/store"
)

// newStore resolves the database DSN (directly or via Secrets Manager) and
// connects the record store.
func newStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if err := cfg.ResolveDatabaseURL(ctx, nil); err != nil {
		return nil, err
	}
	s, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to Postgres: %w", err)
	}
	return s, nil
}

// newClassifier builds the Comprehend adapter from config.
func newClassifier(cfg *config.Config) (*classifier.Client, error) {
	var opts []classifier.Option
	if d, err := time.ParseDuration(cfg.Classifier.Timeout); err == nil && d > 0 {
		opts = append(opts, classifier.WithTimeout(d))
	}
	breaker := classifier.DefaultCircuitBreakerConfig()
	custom := false
	if cfg.Classifier.FailThreshold > 0 {
		breaker.FailThreshold = cfg.Classifier.FailThreshold
		custom = true
	}
	if d, err := time.ParseDuration(cfg.Classifier.Cooldown); err == nil && d > 0 {
		breaker.Cooldown = d
		custom = true
	}
	if d, err := time.ParseDuration(cfg.Classifier.FailWindow); err == nil && d > 0 {
		breaker.FailWindow = d
		custom = true
	}
	if custom {
		opts = append(opts, classifier.WithBreaker(breaker))
	}
	return classifier.New(cfg.AWSRegion, cfg.AWSEndpoint, opts...)
}

// newArchive builds the S3 archival adapter from config.
func newArchive(cfg *config.Config) (*archive.Store, error) {
	return archive.New(cfg.S3Bucket, cfg.AWSRegion, cfg.AWSEndpoint,
		archive.WithPrefixes(cfg.Archive.RawPrefix, cfg.Archive.ResultPrefix))
}

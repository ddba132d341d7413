package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/fitscore/internal/benchmark"
	"github.com/jonathan/fitscore/internal/cache"
	"github.com/jonathan/fitscore/internal/catalog"
	"github.com/jonathan/fitscore/internal/config"
	"github.com/jonathan/fitscore/internal/evaluator"
	"github.com/jonathan/fitscore/internal/logger"
	"github.com/jonathan/fitscore/internal/verification"
)

// loadRuntimeConfig resolves the effective configuration: file values as
// defaults, environment for the API key, flags merged in by the caller.
func loadRuntimeConfig(configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildEvaluator assembles the pipeline from configuration. Registry and
// catalog loading is fail-fast: a misconfigured benchmark aborts before any
// evaluation begins.
func buildEvaluator(ctx context.Context, cfg config.Config, log *zap.Logger) (*evaluator.Evaluator, func(), error) {
	cat := catalog.Default()
	if cfg.Catalog != "" {
		data, err := os.ReadFile(cfg.Catalog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		if cat, err = catalog.LoadFile(data); err != nil {
			return nil, nil, err
		}
	}

	registry := benchmark.DefaultRegistry()
	if cfg.Benchmarks != "" {
		data, err := os.ReadFile(cfg.Benchmarks)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read benchmarks file: %w", err)
		}
		if registry, err = benchmark.LoadFile(data); err != nil {
			return nil, nil, err
		}
	}

	bands := cfg.Bands()

	var cacheOpts []cache.Option
	if cfg.CacheMaxEntries > 0 {
		cacheOpts = append(cacheOpts, cache.WithMaxEntries(cfg.CacheMaxEntries))
	}
	if cfg.CacheMaxAge > 0 {
		cacheOpts = append(cacheOpts, cache.WithMaxAge(cfg.CacheMaxAgeDuration()))
	}

	opts := []evaluator.Option{
		evaluator.WithBands(bands),
		evaluator.WithCache(cache.New(cacheOpts...)),
		evaluator.WithLogger(log),
	}
	if cfg.BatchWorkers > 0 {
		opts = append(opts, evaluator.WithBatchWorkers(cfg.BatchWorkers))
	}

	cleanup := func() {}
	if cfg.Verify {
		if cfg.APIKey == "" {
			return nil, nil, fmt.Errorf("verification requires an API key (flag, config, or GEMINI_API_KEY)")
		}
		verifier, err := verification.NewGeminiVerifier(ctx, cfg.APIKey, verification.WithModel(cfg.VerifyModel))
		if err != nil {
			return nil, nil, err
		}
		escOpts := []verification.EscalatorOption{verification.WithLogger(log)}
		if cfg.Tolerance > 0 {
			escOpts = append(escOpts, verification.WithTolerance(cfg.Tolerance))
		}
		if cfg.VerifyTimeout > 0 {
			escOpts = append(escOpts, verification.WithTimeout(cfg.VerifyTimeoutDuration()))
		}
		opts = append(opts, evaluator.WithEscalator(verification.NewEscalator(verifier, bands, escOpts...)))
		cleanup = func() { _ = verifier.Close() }
	}

	return evaluator.New(cat, registry, opts...), cleanup, nil
}

// newLogger builds the CLI logger from config.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

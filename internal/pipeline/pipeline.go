// Package pipeline is the composition root the request-handling layer
// uses: it turns a Config into a ready analysis service with the client
// middleware, cache and persistence backend wired up.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"autoinspect/internal/config"
	"autoinspect/internal/imagesource"
	"autoinspect/internal/llmclient"
	"autoinspect/internal/orchestrator"
	"autoinspect/internal/report"
	"autoinspect/internal/sanitize"
)

// New builds the full analysis pipeline from cfg. The returned service
// owns its cache and client handle; construct a fresh one per process
// or per test.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*orchestrator.Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	base, err := llmclient.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("pipeline: init model client: %w", err)
	}
	client := llmclient.Wrap(base,
		llmclient.WithLogging(log),
		llmclient.RateLimit(cfg.RPS, cfg.Burst),
	)

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	images, err := newImageSource(cfg)
	if err != nil {
		return nil, err
	}

	return orchestrator.New(client, cfg.CacheCapacity,
		orchestrator.WithLogger(log),
		orchestrator.WithStore(store),
		orchestrator.WithImageSource(images),
		orchestrator.WithSanitizer(sanitize.New(cfg.Heuristics)),
		orchestrator.WithRetryBudgets(cfg.RetryBudgets),
		orchestrator.WithTemperature(cfg.Temperature),
		orchestrator.WithCallTimeout(cfg.CallTimeout),
	)
}

// newStore prefers Postgres, then S3, then process memory.
func newStore(cfg *config.Config) (report.Store, error) {
	if cfg.PostgresDSN != "" {
		st, err := report.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("pipeline: init postgres store: %w", err)
		}
		return st, nil
	}
	if cfg.S3.Endpoint != "" {
		st, err := report.NewS3Store(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("pipeline: init s3 store: %w", err)
		}
		return st, nil
	}
	return report.NewMemoryStore(), nil
}

// newImageSource prefers the upstream S3 bucket, falling back to the
// local directory.
func newImageSource(cfg *config.Config) (imagesource.Source, error) {
	if cfg.ImageS3.Endpoint != "" {
		src, err := imagesource.NewS3Source(cfg.ImageS3)
		if err != nil {
			return nil, fmt.Errorf("pipeline: init image source: %w", err)
		}
		return src, nil
	}
	return imagesource.NewFSSource(cfg.ImagesDir), nil
}

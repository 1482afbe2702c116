package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/anomaly"
	"github.com/medguard-ai/verify-cli/internal/assess"
	"github.com/medguard-ai/verify-cli/internal/config"
	"github.com/medguard-ai/verify-cli/internal/enrich"
	"github.com/medguard-ai/verify-cli/internal/model"
	"github.com/medguard-ai/verify-cli/internal/pipeline"
	"github.com/medguard-ai/verify-cli/internal/registry"
	"github.com/medguard-ai/verify-cli/internal/validate"
)

// buildPipeline wires the assessment stages from configuration.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	var validatorOpts []validate.Option
	if cfg.Registry.Enabled {
		if cfg.Registry.FixturePath == "" {
			return nil, eris.New("registry enabled but no fixture path configured")
		}
		static, err := registry.LoadStatic(cfg.Registry.FixturePath)
		if err != nil {
			return nil, err
		}
		limited := registry.NewLimited(
			static,
			cfg.Registry.RatePerSecond,
			cfg.Registry.RateBurst,
			time.Duration(cfg.Registry.TimeoutSecs)*time.Second,
		)
		validatorOpts = append(validatorOpts,
			validate.WithRegistry(limited, cfg.Registry.RegistryWeight),
			validate.WithBoard(static, cfg.Registry.BoardWeight),
		)
	}

	return pipeline.New(
		validate.NewValidator(validatorOpts...),
		enrich.NewEnricher(catalog,
			enrich.WithMatchThreshold(cfg.Enrich.MatchThreshold),
			enrich.WithPassthroughWeight(cfg.Enrich.PassthroughWeight),
		),
		anomaly.NewDetector(),
		assess.NewAggregator(
			assess.WithFieldWeights(cfg.Confidence.FieldWeights),
			assess.WithDefaultWeight(cfg.Confidence.DefaultWeight),
		),
		assess.NewPrioritizer(
			assess.WithThresholds(cfg.Review.HighThreshold, cfg.Review.MediumThreshold),
		),
		pipeline.WithMaxConcurrent(cfg.Batch.MaxConcurrentRecords),
	), nil
}

func loadCatalog(cfg config.CatalogConfig) (*model.Catalog, error) {
	if cfg.Path == "" {
		return model.DefaultCatalog(), nil
	}
	catalog, err := model.LoadCatalog(cfg.Path)
	if err != nil {
		return nil, err
	}
	zap.L().Info("loaded reference catalog", zap.String("path", cfg.Path))
	return catalog, nil
}

package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Registry   RegistryConfig   `yaml:"registry" mapstructure:"registry"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Review     ReviewConfig     `yaml:"review" mapstructure:"review"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Catalog    CatalogConfig    `yaml:"catalog" mapstructure:"catalog"`
	Confidence ConfidenceConfig `yaml:"confidence" mapstructure:"confidence"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// RegistryConfig configures external registry lookups.
type RegistryConfig struct {
	Enabled        bool    `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSecond  float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	FixturePath    string  `yaml:"fixture_path" mapstructure:"fixture_path"`
	RegistryWeight float64 `yaml:"registry_weight" mapstructure:"registry_weight"`
	BoardWeight    float64 `yaml:"board_weight" mapstructure:"board_weight"`
}

// EnrichConfig configures the enrichment resolvers.
type EnrichConfig struct {
	MatchThreshold    int     `yaml:"match_threshold" mapstructure:"match_threshold"`
	PassthroughWeight float64 `yaml:"passthrough_weight" mapstructure:"passthrough_weight"`
}

// ReviewConfig configures the review prioritizer thresholds.
type ReviewConfig struct {
	HighThreshold   float64 `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold float64 `yaml:"medium_threshold" mapstructure:"medium_threshold"`
}

// ConfidenceConfig configures per-field importance weights for aggregation.
type ConfidenceConfig struct {
	FieldWeights  map[string]float64 `yaml:"field_weights" mapstructure:"field_weights"`
	DefaultWeight float64            `yaml:"default_weight" mapstructure:"default_weight"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentRecords int `yaml:"max_concurrent_records" mapstructure:"max_concurrent_records"`
}

// CatalogConfig points at the reference catalog fixture.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ExportConfig configures where assessment exports land.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MEDGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("batch.max_concurrent_records", 5)
	v.SetDefault("registry.enabled", false)
	v.SetDefault("registry.timeout_secs", 5)
	v.SetDefault("registry.rate_per_second", 10.0)
	v.SetDefault("registry.rate_burst", 1)
	v.SetDefault("registry.registry_weight", 0.90)
	v.SetDefault("registry.board_weight", 0.95)
	v.SetDefault("enrich.match_threshold", 80)
	v.SetDefault("enrich.passthrough_weight", 0.4)
	v.SetDefault("review.high_threshold", 0.80)
	v.SetDefault("review.medium_threshold", 0.60)
	v.SetDefault("confidence.default_weight", 1.0)
	v.SetDefault("confidence.field_weights", map[string]float64{
		"npi":            2.0,
		"license":        1.5,
		"phone":          1.0,
		"address":        1.0,
		"specialty":      1.0,
		"medical_school": 0.8,
		"email":          0.5,
	})
	v.SetDefault("export.output_dir", "output")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

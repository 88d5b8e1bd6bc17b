package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Default values; every setting has one, so Load succeeds with an
	// empty environment.
	v.SetDefault("log.level", "info")
	v.SetDefault("dedup.title_threshold", 0.92)
	v.SetDefault("dedup.workers", runtime.NumCPU())
	v.SetDefault("dedup.max_block_size", 1000)

	// Optional config file: refsift.yaml in the working directory.
	v.SetConfigName("refsift")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and environment apply.
	}

	// Environment variables: REFSIFT_LOG_LEVEL, REFSIFT_DEDUP_WORKERS, etc.
	v.SetEnvPrefix("REFSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

package config

import (
	"github.com/refsift/refsift/internal/domain/dedup"
)

// Config holds all tunable settings for the review core.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log   LogConfig   `mapstructure:"log" validate:"required"`
	Dedup DedupConfig `mapstructure:"dedup" validate:"required"`
}

// LogConfig contains logging-related configuration settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// DedupConfig contains the deduplication engine tuning knobs. The
// defaults match dedup.DefaultParams; hosts override them per corpus.
type DedupConfig struct {
	TitleThreshold float64 `mapstructure:"title_threshold" validate:"required,gt=0,lte=1"`
	Workers        int     `mapstructure:"workers" validate:"required,gte=1,lte=256"`
	MaxBlockSize   int     `mapstructure:"max_block_size" validate:"required,gte=2"`
}

// Params converts the loaded settings into engine parameters.
func (c DedupConfig) Params() dedup.Params {
	return dedup.Params{
		TitleThreshold: c.TitleThreshold,
		Workers:        c.Workers,
		MaxBlockSize:   c.MaxBlockSize,
	}
}

package dedup

import (
	"fmt"
	"runtime"
)

// Params defines all configurable parameters for the deduplication engine.
type Params struct {
	// TitleThreshold is the minimum title similarity score (0.0-1.0)
	// for a fuzzy duplicate match.
	// Higher values = more conservative (fewer false merges).
	// Lower values = more aggressive (more false merges).
	// Default: 0.92. Calibrate against real review corpora before
	// trusting it on a new import source.
	TitleThreshold float64

	// Workers bounds how many blocking buckets are scored concurrently.
	// Default: runtime.NumCPU().
	Workers int

	// MaxBlockSize caps pairwise comparison within one blocking bucket.
	// Degenerate metadata (thousands of references with the same year
	// and no authors) would otherwise turn one bucket quadratic; such
	// buckets fall back to exact-key matching only.
	// Default: 1000.
	MaxBlockSize int
}

// DefaultParams returns the default engine parameters.
func DefaultParams() *Params {
	return &Params{
		TitleThreshold: 0.92,
		Workers:        runtime.NumCPU(),
		MaxBlockSize:   1000,
	}
}

// Validate checks if the parameters have valid values.
func (p *Params) Validate() error {
	if p.TitleThreshold <= 0.0 || p.TitleThreshold > 1.0 {
		return fmt.Errorf("title_threshold must be in (0.0, 1.0] (got %.2f)", p.TitleThreshold)
	}
	if p.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", p.Workers)
	}
	if p.Workers > 256 {
		return fmt.Errorf("workers too large (got %d, max 256)", p.Workers)
	}
	if p.MaxBlockSize < 2 {
		return fmt.Errorf("max_block_size must be at least 2 (got %d)", p.MaxBlockSize)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/search"
)

// SearchConfig holds settings for the move search.
type SearchConfig struct {
	// Depth is the number of plies searched below the root.
	Depth int

	// FeatureThreshold is the ply count above which leaf positions are
	// scored by counting runs instead of by the positional table. Zero
	// scores every leaf by runs.
	FeatureThreshold int
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Depth:            6,
		FeatureThreshold: search.DefaultFeatureThreshold,
	}
}

// Validate checks the search settings.
func (c *SearchConfig) Validate() error {
	if c.Depth <= 0 {
		return fmt.Errorf("%w: search depth must be positive, got %d", errors.ErrInvalidConfig, c.Depth)
	}
	if c.FeatureThreshold < 0 {
		return fmt.Errorf("%w: feature threshold must not be negative, got %d", errors.ErrInvalidConfig, c.FeatureThreshold)
	}
	return nil
}

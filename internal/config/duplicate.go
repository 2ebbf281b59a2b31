package config

import (
	"fmt"

	"github.com/lgbarn/connect4-go/internal/errors"
)

// DuplicateConfig holds settings for duplicate position detection in
// batch analysis.
type DuplicateConfig struct {
	// Suppress skips the search for positions already seen in the batch
	Suppress bool

	// Mirror treats a position and its left-right mirror image as equal
	Mirror bool

	// Capacity bounds the number of remembered positions (0 = unlimited)
	Capacity int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{
		Suppress: true,
		Mirror:   false,
		Capacity: 0,
	}
}

// Validate checks the duplicate settings.
func (c *DuplicateConfig) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: duplicate capacity must not be negative, got %d", errors.ErrInvalidConfig, c.Capacity)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/lgbarn/connect4-go/internal/errors"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSON enables JSON output instead of text grids
	JSON bool

	// Markers are the characters drawn for an empty cell, a first player
	// stone and a second player stone
	Markers [3]rune

	// Border draws a frame and a column index around grids
	Border bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Markers: [3]rune{'-', 'X', 'O'},
		Border:  true,
	}
}

// Validate checks that every marker is set and distinct.
func (c *OutputConfig) Validate() error {
	for i, m := range c.Markers {
		if m == 0 {
			return fmt.Errorf("%w: marker %d is empty", errors.ErrInvalidConfig, i)
		}
		for _, other := range c.Markers[:i] {
			if other == m {
				return fmt.Errorf("%w: marker %q used twice", errors.ErrInvalidConfig, m)
			}
		}
	}
	return nil
}

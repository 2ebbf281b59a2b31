package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
)

// PlayerKind selects who controls a seat in a game.
type PlayerKind int

const (
	Human PlayerKind = iota // Moves read from the terminal
	AI                      // Moves chosen by the search
)

// String returns the name used on the command line.
func (k PlayerKind) String() string {
	if k == AI {
		return "ai"
	}
	return "human"
}

// ParsePlayerKind parses "human" or "ai".
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return Human, nil
	case "ai", "computer":
		return AI, nil
	}
	return Human, fmt.Errorf("%w: unknown player kind %q", errors.ErrInvalidConfig, s)
}

// GameConfig holds settings for interactive games.
type GameConfig struct {
	// Players lists the controller of the first and second seat.
	Players [2]PlayerKind

	// Opening is a move string played before the game starts.
	Opening string
}

// NewGameConfig creates a GameConfig with default values:
// a human moves first against the computer.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		Players: [2]PlayerKind{Human, AI},
	}
}

// Validate checks that the opening is a legal, unfinished move sequence.
func (c *GameConfig) Validate() error {
	if c.Opening == "" {
		return nil
	}
	b, err := board.Parse(c.Opening)
	if err != nil {
		return fmt.Errorf("%w: opening: %w", errors.ErrInvalidConfig, err)
	}
	if b.Status() != board.Unfinished {
		return fmt.Errorf("%w: opening %q is already %s", errors.ErrInvalidConfig, c.Opening, b.Status())
	}
	return nil
}

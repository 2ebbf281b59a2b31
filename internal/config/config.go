// Package config provides configuration for the connect4 engine and its
// front ends.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/errors"
)

// Config holds all program configuration.
// Settings are grouped by the component that consumes them.
type Config struct {
	Search    *SearchConfig
	Game      *GameConfig
	Output    *OutputConfig
	Duplicate *DuplicateConfig
	Server    *ServerConfig
	Storage   *StorageConfig

	// Workers is the number of positions analysed concurrently.
	Workers int

	Verbosity int // 0=errors only, 1=progress, 2=debug

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:     NewSearchConfig(),
		Game:       NewGameConfig(),
		Output:     NewOutputConfig(),
		Duplicate:  NewDuplicateConfig(),
		Server:     NewServerConfig(),
		Storage:    NewStorageConfig(),
		Workers:    1,
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every group and the top-level settings.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", errors.ErrInvalidConfig, c.Workers)
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Duplicate.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Logger returns a console logger writing to LogFile. Verbosity 0 logs
// errors only, 1 adds progress messages and 2 or more adds search details.
func (c *Config) Logger() zerolog.Logger {
	w := c.LogFile
	if w == nil {
		w = io.Discard
	}
	level := zerolog.ErrorLevel
	switch {
	case c.Verbosity >= 2:
		level = zerolog.DebugLevel
	case c.Verbosity == 1:
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

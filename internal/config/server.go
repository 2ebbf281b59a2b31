package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/connect4-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MaxDepth caps the search depth a client may request.
	MaxDepth int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		MaxDepth:     9,
	}
}

// Validate checks the server settings.
func (c *ServerConfig) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: server max depth must be positive, got %d", errors.ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// StorageConfig holds settings for game persistence.
type StorageConfig struct {
	// Path is the SQLite database file; ":memory:" keeps data in memory.
	Path string
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{Path: "connect4.db"}
}

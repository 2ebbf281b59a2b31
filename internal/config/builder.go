package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithDepth sets the search depth.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Search.Depth = depth
	return b
}

// WithFeatureThreshold sets the ply count at which the feature evaluation
// takes over.
func (b *ConfigBuilder) WithFeatureThreshold(plies int) *ConfigBuilder {
	b.cfg.Search.FeatureThreshold = plies
	return b
}

// WithPlayers sets the controllers of both seats.
func (b *ConfigBuilder) WithPlayers(first, second PlayerKind) *ConfigBuilder {
	b.cfg.Game.Players = [2]PlayerKind{first, second}
	return b
}

// WithOpening sets the moves played before a game starts.
func (b *ConfigBuilder) WithOpening(moves string) *ConfigBuilder {
	b.cfg.Game.Opening = moves
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSON = enabled
	return b
}

// WithMarkers sets the characters drawn for empty cells and both players.
func (b *ConfigBuilder) WithMarkers(empty, first, second rune) *ConfigBuilder {
	b.cfg.Output.Markers = [3]rune{empty, first, second}
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	return b
}

// WithMirrorMatch treats mirrored positions as duplicates.
func (b *ConfigBuilder) WithMirrorMatch(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Mirror = enabled
	return b
}

// WithWorkers sets the number of concurrent analysis workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithServerAddr sets the listen address.
func (b *ConfigBuilder) WithServerAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithStoragePath sets the database path.
func (b *ConfigBuilder) WithStoragePath(path string) *ConfigBuilder {
	b.cfg.Storage.Path = path
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

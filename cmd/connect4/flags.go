// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lgbarn/connect4-go/internal/config"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/search"
)

// globalOptions are accepted before the command name.
type globalOptions struct {
	version   bool
	verbosity int
	logFile   string
}

func newGlobalFlags(o *globalOptions, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("connect4", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	fs.IntVar(&o.verbosity, "v", 1, "Verbosity: 0 errors only, 1 progress, 2 debug")
	fs.StringVar(&o.logFile, "log", "", "Append log messages to this file (default: stderr)")
	return fs
}

// newCommandFlags creates the flag set for a command.
func newCommandFlags(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("connect4 "+name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

// parseFlags parses args, reporting malformed flags as ErrInvalidConfig.
// flag.ErrHelp is returned unchanged.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
}

// searchOptions control the engine.
type searchOptions struct {
	depth     int
	threshold int
}

func (o *searchOptions) register(fs *flag.FlagSet, defaultDepth int) {
	fs.IntVar(&o.depth, "depth", defaultDepth, "Search depth in plies")
	fs.IntVar(&o.threshold, "threshold", search.DefaultFeatureThreshold,
		"Plies after which leaves are scored by line features")
}

func (o *searchOptions) apply(cfg *config.Config) {
	cfg.Search.Depth = o.depth
	cfg.Search.FeatureThreshold = o.threshold
}

// outputOptions control how positions are printed.
type outputOptions struct {
	json     bool
	markers  string
	noBorder bool
}

func (o *outputOptions) register(fs *flag.FlagSet) {
	fs.BoolVar(&o.json, "json", false, "Output in JSON format")
	fs.StringVar(&o.markers, "markers", "-XO", "Characters for empty, first player and second player cells")
	fs.BoolVar(&o.noBorder, "noborder", false, "Omit the frame and column numbers around grids")
}

func (o *outputOptions) apply(cfg *config.Config) error {
	cfg.Output.JSON = o.json
	cfg.Output.Border = !o.noBorder
	markers := []rune(o.markers)
	if len(markers) != 3 {
		return fmt.Errorf("%w: -markers needs exactly 3 characters, got %q", errors.ErrInvalidConfig, o.markers)
	}
	copy(cfg.Output.Markers[:], markers)
	return nil
}

// playOptions configure an interactive game.
type playOptions struct {
	search  searchOptions
	output  outputOptions
	first   string
	second  string
	opening string
	db      string
}

func newPlayFlags(o *playOptions, w io.Writer) *flag.FlagSet {
	fs := newCommandFlags("play", w)
	o.search.register(fs, config.NewSearchConfig().Depth)
	o.output.register(fs)
	fs.StringVar(&o.first, "first", "human", "Who moves first: human or ai")
	fs.StringVar(&o.second, "second", "ai", "Who moves second: human or ai")
	fs.StringVar(&o.opening, "opening", "", "Moves to play before the game starts (digits 0-6)")
	fs.StringVar(&o.db, "save", "", "Save the finished game to this database")
	return fs
}

func (o *playOptions) apply(cfg *config.Config) error {
	o.search.apply(cfg)
	if err := o.output.apply(cfg); err != nil {
		return err
	}
	for i, s := range []string{o.first, o.second} {
		kind, err := config.ParsePlayerKind(s)
		if err != nil {
			return err
		}
		cfg.Game.Players[i] = kind
	}
	cfg.Game.Opening = o.opening
	cfg.Storage.Path = o.db
	return nil
}

// analyseOptions configure batch analysis.
type analyseOptions struct {
	search   searchOptions
	workers  int
	mirror   bool
	keepDups bool
	capacity int
	json     bool
}

func newAnalyseFlags(o *analyseOptions, w io.Writer) *flag.FlagSet {
	fs := newCommandFlags("analyse", w)
	o.search.register(fs, config.NewSearchConfig().Depth)
	fs.IntVar(&o.workers, "j", 1, "Number of positions analysed concurrently")
	fs.BoolVar(&o.mirror, "mirror", false, "Treat mirrored positions as duplicates")
	fs.BoolVar(&o.keepDups, "all", false, "Analyse duplicate positions again")
	fs.IntVar(&o.capacity, "duplicate-capacity", 0, "Maximum remembered positions (0 = unlimited)")
	fs.BoolVar(&o.json, "json", false, "Output in JSON format")
	return fs
}

func (o *analyseOptions) apply(cfg *config.Config) {
	o.search.apply(cfg)
	cfg.Workers = o.workers
	cfg.Duplicate.Suppress = !o.keepDups
	cfg.Duplicate.Mirror = o.mirror
	cfg.Duplicate.Capacity = o.capacity
	cfg.Output.JSON = o.json
}

// positionOptions configure show and traverse.
type positionOptions struct {
	output outputOptions
	moves  string
}

func newPositionFlags(name string, o *positionOptions, w io.Writer) *flag.FlagSet {
	fs := newCommandFlags(name, w)
	o.output.register(fs)
	fs.StringVar(&o.moves, "moves", "", "Moves from the empty board (digits 0-6)")
	return fs
}

// serveOptions configure the HTTP server.
type serveOptions struct {
	addr     string
	depth    int
	maxDepth int
	db       string
}

func newServeFlags(o *serveOptions, w io.Writer) *flag.FlagSet {
	fs := newCommandFlags("serve", w)
	defaults := config.NewServerConfig()
	fs.StringVar(&o.addr, "addr", defaults.Addr, "Listen address")
	fs.IntVar(&o.depth, "depth", config.NewSearchConfig().Depth, "Search depth when a request names none")
	fs.IntVar(&o.maxDepth, "max-depth", defaults.MaxDepth, "Largest search depth a client may request")
	fs.StringVar(&o.db, "db", "", "Database for /api/store (default: disabled)")
	return fs
}

func (o *serveOptions) apply(cfg *config.Config) {
	cfg.Server.Addr = o.addr
	cfg.Search.Depth = o.depth
	cfg.Server.MaxDepth = o.maxDepth
	cfg.Storage.Path = o.db
}

// selfplayOptions configure an engine tournament.
type selfplayOptions struct {
	games     int
	depthA    int
	depthB    int
	opening   int
	workers   int
	seed      uint64
	threshold int
	json      bool
}

func newSelfplayFlags(o *selfplayOptions, w io.Writer) *flag.FlagSet {
	fs := newCommandFlags("selfplay", w)
	fs.IntVar(&o.games, "games", 10, "Number of games")
	fs.IntVar(&o.depthA, "depth-a", 4, "Search depth of engine A")
	fs.IntVar(&o.depthB, "depth-b", 4, "Search depth of engine B")
	fs.IntVar(&o.opening, "opening", 2, "Random plies played before the engines take over")
	fs.IntVar(&o.workers, "j", 1, "Number of games played concurrently")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for the random openings (0 = random)")
	fs.IntVar(&o.threshold, "threshold", search.DefaultFeatureThreshold,
		"Plies after which leaves are scored by line features")
	fs.BoolVar(&o.json, "json", false, "Output the report in JSON format")
	return fs
}

// storeOptions configure the store subcommands.
type storeOptions struct {
	db   string
	kind string
	json bool
}

func newStoreFlags(name string, o *storeOptions, w io.Writer) *flag.FlagSet {
	fs := newCommandFlags("store "+name, w)
	fs.StringVar(&o.db, "db", config.NewStorageConfig().Path, "Database file")
	fs.StringVar(&o.kind, "kind", "game", "Record kind: game or position")
	fs.BoolVar(&o.json, "json", false, "Output in JSON format")
	return fs
}

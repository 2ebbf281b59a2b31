// connect4 plays and analyses Connect Four positions.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/config"
	"github.com/lgbarn/connect4-go/internal/errors"
)

const programVersion = "0.1.0"

// env carries the streams and configuration shared by every command.
type env struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{"play", "Play a game in the terminal", runPlay},
	{"analyse", "Find the best move for positions read from files or stdin", runAnalyse},
	{"show", "Print a position", runShow},
	{"traverse", "Print every position of a game", runTraverse},
	{"serve", "Serve the HTTP and websocket API", runServe},
	{"selfplay", "Play the engine against itself", runSelfplay},
	{"store", "Save, list, get or delete stored games and positions", runStore},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the exit status: 0 on success,
// 1 when the command failed and 2 on a usage error.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts globalOptions
	fs := newGlobalFlags(&opts, stderr)
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "connect4 version %s\n", programVersion)
		return 0
	}
	if fs.NArg() == 0 {
		usage(stderr, fs)
		return 2
	}

	cfg := config.NewConfig()
	cfg.SetOutput(stdout)
	cfg.SetLog(stderr)
	cfg.Verbosity = opts.verbosity
	if opts.logFile != "" {
		file, err := os.OpenFile(opts.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(stderr, "Error opening log file %s: %v\n", opts.logFile, err)
			return 1
		}
		defer file.Close() //nolint:errcheck // cleanup on exit
		cfg.SetLog(file)
	}

	name := fs.Arg(0)
	cmd, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(stderr, "connect4: unknown command %q\n\n", name)
		usage(stderr, fs)
		return 2
	}

	e := &env{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr, log: cfg.Logger()}
	err := cmd.run(ctx, e, fs.Args()[1:])
	switch {
	case err == nil:
		return 0
	case err == flag.ErrHelp:
		return 0
	case errors.Is(err, errors.ErrInvalidConfig):
		fmt.Fprintf(stderr, "connect4 %s: %v\n", name, err)
		return 2
	}
	fmt.Fprintf(stderr, "connect4 %s: %v\n", name, err)
	return 1
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: connect4 [options] <command> [command options] [args...]\n\n")
	fmt.Fprintf(w, "Plays and analyses Connect Four. Columns are numbered 0-6 in move strings.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nOptions:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nRun 'connect4 <command> -h' for command options.\n")
}

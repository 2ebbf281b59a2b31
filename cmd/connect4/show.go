package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/output"
)

// positionArg returns the -moves flag, or the first argument when the flag
// is not given.
func positionArg(o *positionOptions, args []string) string {
	if o.moves == "" && len(args) > 0 {
		return args[0]
	}
	return o.moves
}

func runShow(ctx context.Context, e *env, args []string) error {
	var opts positionOptions
	fs := newPositionFlags("show", &opts, e.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := opts.output.apply(e.cfg); err != nil {
		return err
	}
	if err := e.cfg.Output.Validate(); err != nil {
		return err
	}

	b, err := board.Parse(positionArg(&opts, fs.Args()))
	if err != nil {
		return err
	}
	if e.cfg.Output.JSON {
		return output.WriteJSON(e.stdout, output.PositionToJSON(b))
	}
	if err := output.WritePosition(e.stdout, b, e.cfg.Output); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "Valid moves: %s\n", formatColumns(b))
	return err
}

// runTraverse prints the position after every ply of a game, starting from
// the empty board.
func runTraverse(ctx context.Context, e *env, args []string) error {
	var opts positionOptions
	fs := newPositionFlags("traverse", &opts, e.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := opts.output.apply(e.cfg); err != nil {
		return err
	}
	if err := e.cfg.Output.Validate(); err != nil {
		return err
	}

	moves, err := board.ParseMoves(positionArg(&opts, fs.Args()))
	if err != nil {
		return err
	}

	b := board.New()
	positions := []*output.PositionJSON{output.PositionToJSON(b)}
	if !e.cfg.Output.JSON {
		if err := writeTraverseStep(e, b); err != nil {
			return err
		}
	}
	for _, col := range moves {
		if err := b.Play(col); err != nil {
			return err
		}
		if e.cfg.Output.JSON {
			positions = append(positions, output.PositionToJSON(b))
			continue
		}
		if err := writeTraverseStep(e, b); err != nil {
			return err
		}
	}
	if e.cfg.Output.JSON {
		return output.WriteJSON(e.stdout, positions)
	}
	return nil
}

func writeTraverseStep(e *env, b *board.Board) error {
	moves := b.String()
	if moves == "" {
		moves = "(empty)"
	}
	if _, err := fmt.Fprintf(e.stdout, "Ply %d: %s\n", b.Plies(), moves); err != nil {
		return err
	}
	if err := output.WritePosition(e.stdout, b, e.cfg.Output); err != nil {
		return err
	}
	_, err := fmt.Fprintln(e.stdout)
	return err
}

// formatColumns lists the playable columns of b, 0-based.
func formatColumns(b *board.Board) string {
	if b.Status() != board.Unfinished {
		return "none"
	}
	cols := b.ValidMoves()
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, " ")
}

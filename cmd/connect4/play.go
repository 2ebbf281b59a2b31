package main

import (
	"context"
	"fmt"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/config"
	"github.com/lgbarn/connect4-go/internal/game"
	"github.com/lgbarn/connect4-go/internal/output"
	"github.com/lgbarn/connect4-go/internal/storage"
)

func runPlay(ctx context.Context, e *env, args []string) error {
	var opts playOptions
	fs := newPlayFlags(&opts, e.stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := opts.apply(e.cfg); err != nil {
		return err
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	b, err := board.Parse(e.cfg.Game.Opening)
	if err != nil {
		return err
	}

	// Both seats share one reader when two humans play.
	human := game.NewHumanPlayer(e.stdin, e.stdout)
	var players [2]game.Player
	for i, kind := range e.cfg.Game.Players {
		players[i] = human
		if kind == config.AI {
			players[i] = newAIPlayer(e)
		}
	}

	out := e.cfg.Output
	if err := output.WritePosition(e.stdout, b, out); err != nil {
		return err
	}
	m := &game.Match{
		Board:   b,
		Players: players,
		Log:     e.log,
		OnMove: func(b *board.Board, col int) {
			if col == game.Undo {
				fmt.Fprintln(e.stdout, "Move taken back")
			} else {
				fmt.Fprintf(e.stdout, "%c plays column %d\n", out.Markers[board.Cell(b.LastMover())+1], col+1)
			}
			output.WritePosition(e.stdout, b, out) //nolint:errcheck // terminal output
		},
	}

	outcome, err := m.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Game over: %s\n", outcome)

	if e.cfg.Storage.Path == "" {
		return nil
	}
	store, err := storage.Open(ctx, e.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.SaveBoard(ctx, storage.Game, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Saved game #%d to %s\n", id, e.cfg.Storage.Path)
	return nil
}

func newAIPlayer(e *env) *game.AIPlayer {
	ai := game.NewAIPlayer(e.cfg.Search.Depth)
	ai.FeatureThreshold = e.cfg.Search.FeatureThreshold
	ai.Log = e.log
	return ai
}

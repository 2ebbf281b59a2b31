package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"lukechampine.com/frand"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/search"
)

// Tournament plays computer-versus-computer games between two search
// depths. Engine A moves first in even-numbered games and second in odd
// ones; every pair of games shares an opening.
type Tournament struct {
	Games            int
	DepthA           int
	DepthB           int
	OpeningPlies     int // Random moves played before the engines take over
	FeatureThreshold int // Zero counts runs at every leaf; NewTournament sets the default
	Workers          int // Games played at once; values below 1 mean 1

	// Seed makes the openings reproducible. It must be 32 bytes long;
	// nil draws openings from the system entropy source.
	Seed []byte

	Log zerolog.Logger
}

// NewTournament returns a tournament of games between the two depths with
// the default feature threshold, random openings and one worker.
func NewTournament(games, depthA, depthB int) *Tournament {
	return &Tournament{
		Games:            games,
		DepthA:           depthA,
		DepthB:           depthB,
		FeatureThreshold: search.DefaultFeatureThreshold,
		Workers:          1,
		Log:              zerolog.Nop(),
	}
}

// GameResult is the outcome of one tournament game.
type GameResult struct {
	Opening string
	AFirst  bool
	Outcome Outcome
}

// WinnerIsA reports whether engine A won the game.
func (r GameResult) WinnerIsA() bool {
	if r.Outcome.Status != board.Won {
		return false
	}
	return (r.Outcome.Winner == board.First) == r.AFirst
}

// Report summarises a tournament.
type Report struct {
	Games       int
	WinsA       int
	WinsB       int
	Draws       int
	MeanPlies   float64
	StdDevPlies float64
	Results     []GameResult
}

// Run plays all games and summarises them. It stops at the first error.
func (t *Tournament) Run(ctx context.Context) (Report, error) {
	if t.Games < 1 {
		return Report{}, fmt.Errorf("%w: games must be at least 1, got %d", errors.ErrInvalidConfig, t.Games)
	}
	if t.DepthA <= 0 || t.DepthB <= 0 {
		return Report{}, fmt.Errorf("depths %d and %d: %w", t.DepthA, t.DepthB, errors.ErrInvalidDepth)
	}
	if t.OpeningPlies < 0 || t.OpeningPlies >= board.MaxPlies {
		return Report{}, fmt.Errorf("%w: opening plies out of range: %d", errors.ErrInvalidConfig, t.OpeningPlies)
	}

	rng := frand.New()
	if t.Seed != nil {
		rng = frand.NewCustom(t.Seed, 1024, 12)
	}
	// Openings are drawn up front so they do not depend on scheduling.
	openings := make([]string, (t.Games+1)/2)
	for i := range openings {
		openings[i] = randomOpening(rng, t.OpeningPlies)
	}

	results := make([]GameResult, t.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.Workers, 1))
	for i := 0; i < t.Games; i++ {
		g.Go(func() error {
			res, err := t.play(ctx, openings[i/2], i%2 == 0)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := Report{Games: t.Games, Results: results}
	plies := make([]float64, len(results))
	for i, r := range results {
		switch {
		case r.Outcome.Status == board.Drawn:
			rep.Draws++
		case r.WinnerIsA():
			rep.WinsA++
		default:
			rep.WinsB++
		}
		plies[i] = float64(len(r.Outcome.Moves))
	}
	if len(plies) > 1 {
		rep.MeanPlies, rep.StdDevPlies = stat.MeanStdDev(plies, nil)
	} else {
		rep.MeanPlies = plies[0]
	}

	t.Log.Info().
		Int("games", rep.Games).
		Int("winsA", rep.WinsA).
		Int("winsB", rep.WinsB).
		Int("draws", rep.Draws).
		Float64("meanPlies", rep.MeanPlies).
		Msg("selfplay-done")
	return rep, nil
}

// play runs one game from the given opening.
func (t *Tournament) play(ctx context.Context, opening string, aFirst bool) (GameResult, error) {
	b, err := board.Parse(opening)
	if err != nil {
		return GameResult{}, err
	}

	a := &AIPlayer{Depth: t.DepthA, FeatureThreshold: t.FeatureThreshold, Log: t.Log}
	bb := &AIPlayer{Depth: t.DepthB, FeatureThreshold: t.FeatureThreshold, Log: t.Log}
	players := [2]Player{a, bb}
	if !aFirst {
		players = [2]Player{bb, a}
	}

	m := &Match{Board: b, Players: players, Log: t.Log}
	out, err := m.Run(ctx)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{Opening: opening, AFirst: aFirst, Outcome: out}, nil
}

// randomOpening plays plies uniformly random moves, starting over whenever
// the game ends early.
func randomOpening(rng *frand.RNG, plies int) string {
	b := board.New()
	moves := make([]int, 0, board.Columns)
	for b.Plies() < plies {
		moves = b.AppendValidMoves(moves[:0])
		b.Push(moves[rng.Intn(len(moves))])
		if b.Status() != board.Unfinished {
			b = board.New()
		}
	}
	return b.String()
}

package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
)

// Outcome is the result of a finished game.
type Outcome struct {
	Status board.Status
	Winner board.Player // Meaningful only when Status is Won
	Moves  string
}

// String describes the outcome.
func (o Outcome) String() string {
	if o.Status == board.Won {
		return fmt.Sprintf("%s player wins", o.Winner)
	}
	return o.Status.String()
}

// Match alternates two players on a board until the game ends.
type Match struct {
	// Board is the starting position; nil starts from the empty board.
	Board *board.Board

	// Players[0] moves on even plies, Players[1] on odd plies.
	Players [2]Player

	// OnMove, when set, is called after every move and every undo.
	OnMove func(b *board.Board, col int)

	Log zerolog.Logger
}

// Run plays the game to the end. It fails with ErrGameOver when the
// starting position is already finished, and returns the first error a
// player or the board reports.
func (m *Match) Run(ctx context.Context) (Outcome, error) {
	if m.Board == nil {
		m.Board = board.New()
	}
	b := m.Board
	if b.Status() != board.Unfinished {
		return Outcome{}, fmt.Errorf("position %q: %w", b.String(), errors.ErrGameOver)
	}

	for b.Status() == board.Unfinished {
		side := b.ToMove()
		col, err := m.Players[side].NextMove(ctx, b)
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "%s player", side)
		}

		if col == Undo {
			m.undo(side)
			continue
		}
		if err := b.Play(col); err != nil {
			return Outcome{}, errors.Wrapf(err, "%s player", side)
		}
		m.Log.Debug().Str("player", side.String()).Int("column", col).Int("ply", b.Plies()).Msg("move")
		if m.OnMove != nil {
			m.OnMove(b, col)
		}
	}

	out := Outcome{Status: b.Status(), Moves: b.String()}
	if winner, ok := b.Winner(); ok {
		out.Winner = winner
	}
	m.Log.Info().Str("moves", out.Moves).Str("result", out.String()).Msg("game-over")
	return out, nil
}

// undo takes back the last ply. Against a computer the reply and side's own
// previous move are both taken back, so side is to move again; against
// another human only the opponent's move is, returning the turn to them.
func (m *Match) undo(side board.Player) {
	b := m.Board
	plies := 2
	if _, human := m.Players[side.Opponent()].(*HumanPlayer); human {
		plies = 1
	}
	for n := 0; n < plies && b.Plies() > 0; n++ {
		b.Pop()
	}
	m.Log.Debug().Str("player", side.String()).Int("ply", b.Plies()).Msg("undo")
	if m.OnMove != nil {
		m.OnMove(b, Undo)
	}
}

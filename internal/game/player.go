// Package game runs Connect Four games between human and computer players.
package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/search"
)

// Undo is returned by a player instead of a column to take back moves.
const Undo = -1

// Player chooses moves.
type Player interface {
	// NextMove returns a playable column for the side to move in b, or Undo.
	// Implementations must not keep b after returning.
	NextMove(ctx context.Context, b *board.Board) (int, error)
}

// HumanPlayer reads 1-based column numbers, one per line.
// Invalid input is reported on the output writer and asked for again.
type HumanPlayer struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewHumanPlayer creates a player reading from r and prompting on w.
func NewHumanPlayer(r io.Reader, w io.Writer) *HumanPlayer {
	return &HumanPlayer{in: bufio.NewScanner(r), out: w}
}

// NextMove prompts until a playable column or "undo" is entered.
// It returns io.ErrUnexpectedEOF when the input ends.
func (h *HumanPlayer) NextMove(ctx context.Context, b *board.Board) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(h.out, "Enter column: ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return 0, errors.Wrap(err, "reading move")
			}
			return 0, errors.Wrap(io.ErrUnexpectedEOF, "reading move")
		}

		text := strings.TrimSpace(h.in.Text())
		if strings.EqualFold(text, "undo") || strings.EqualFold(text, "u") {
			if b.Plies() == 0 {
				fmt.Fprintln(h.out, "Nothing to undo")
				continue
			}
			return Undo, nil
		}

		n, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintln(h.out, "Enter an integer")
			continue
		}
		if col := n - 1; b.CanPlay(col) {
			return col, nil
		}
		fmt.Fprintln(h.out, "Invalid choice")
	}
}

// AIPlayer chooses moves with a depth-limited search.
type AIPlayer struct {
	Depth int

	// FeatureThreshold is the ply count above which leaves are scored by
	// counting runs. Zero counts runs at every leaf; NewAIPlayer uses
	// search.DefaultFeatureThreshold.
	FeatureThreshold int

	Log zerolog.Logger
}

// NewAIPlayer creates a computer player searching depth plies.
func NewAIPlayer(depth int) *AIPlayer {
	return &AIPlayer{
		Depth:            depth,
		FeatureThreshold: search.DefaultFeatureThreshold,
		Log:              zerolog.Nop(),
	}
}

// NextMove searches a copy of b.
func (a *AIPlayer) NextMove(ctx context.Context, b *board.Board) (int, error) {
	return search.ChooseMove(b.Copy(), a.Depth,
		search.WithFeatureThreshold(a.FeatureThreshold),
		search.WithContext(ctx),
		search.WithLogger(a.Log),
	)
}

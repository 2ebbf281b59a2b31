// Package search chooses moves with a depth-limited minimax search using
// alpha-beta pruning.
//
// The search runs on the caller's board: every node plays a move, recurses
// and undoes it again before returning, so the board is unchanged when a
// search completes, is cut off, or is aborted.
package search

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
)

// WinScore is the value of a won position before the depth adjustment.
// A win found at depth d scores WinScore-d, a loss scores -WinScore+d.
const WinScore = 10000

const (
	infinity = math.MaxInt32

	// Nodes between context checks.
	checkInterval = 1024
)

// centerOrder lists columns by distance from the center, ties in ascending
// order. Central moves take part in more lines and cause earlier cutoffs.
var centerOrder = [board.Columns]int{3, 2, 4, 1, 5, 0, 6}

// MoveScore is the exact minimax value of one root move.
type MoveScore struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

// Result is the outcome of a search.
type Result struct {
	Column int         // Best column for the side to move
	Score  int         // Value of Column from the side to move's perspective
	Depth  int         // Maximum depth searched
	Nodes  uint64      // Nodes visited below the root
	Moves  []MoveScore // Every root move in search order
}

// Searcher holds the state of one search over a shared board.
type Searcher struct {
	board       *board.Board
	maxDepth    int
	threshold   int
	perspective board.Player
	ctx         context.Context
	log         zerolog.Logger

	nodes   uint64
	aborted bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithFeatureThreshold sets the ply count above which leaf positions are
// scored with the feature evaluation instead of the positional table.
func WithFeatureThreshold(plies int) Option {
	return func(s *Searcher) {
		if plies >= 0 {
			s.threshold = plies
		}
	}
}

// WithContext makes the search stop early once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(s *Searcher) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the logger used for search statistics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Searcher) {
		s.log = log
	}
}

// New creates a searcher that will search b to maxDepth plies.
// The board is mutated during Search and restored before it returns.
func New(b *board.Board, maxDepth int, opts ...Option) *Searcher {
	s := &Searcher{
		board:     b,
		maxDepth:  maxDepth,
		threshold: DefaultFeatureThreshold,
		ctx:       context.Background(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChooseMove returns the best column for the side to move in b.
func ChooseMove(b *board.Board, maxDepth int, opts ...Option) (int, error) {
	res, err := New(b, maxDepth, opts...).Search()
	if err != nil {
		return -1, err
	}
	return res.Column, nil
}

// Search evaluates every root move and returns the best one. Preconditions
// are checked before the board is touched: the depth must be positive, the
// game must not be won already and at least one column must be open.
func (s *Searcher) Search() (Result, error) {
	if s.maxDepth <= 0 {
		return Result{}, fmt.Errorf("depth %d: %w", s.maxDepth, errors.ErrInvalidDepth)
	}
	if s.board.Status() == board.Won {
		return Result{}, fmt.Errorf("position %q: %w", s.board.String(), errors.ErrGameOver)
	}
	if s.board.Plies() == board.MaxPlies {
		return Result{}, fmt.Errorf("position %q: %w", s.board.String(), errors.ErrNoLegalMoves)
	}

	s.nodes = 0
	s.aborted = false
	s.perspective = s.board.ToMove()

	res := Result{Column: -1, Depth: s.maxDepth, Moves: make([]MoveScore, 0, board.Columns)}
	best := -infinity
	for _, col := range centerOrder {
		if !s.board.CanPlay(col) {
			continue
		}
		if s.ctx.Err() != nil {
			s.aborted = true
		}
		score := s.child(col, 1, -infinity, infinity, false)
		if s.aborted {
			return Result{}, fmt.Errorf("%w: %w", errors.ErrSearchAborted, s.ctx.Err())
		}

		res.Moves = append(res.Moves, MoveScore{Column: col, Score: score})
		if score > best {
			best = score
			res.Column = col
		}
	}
	res.Score = best
	res.Nodes = s.nodes

	s.log.Debug().
		Str("position", s.board.String()).
		Int("depth", s.maxDepth).
		Int("column", res.Column).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Msg("search-done")

	return res, nil
}

// child plays col, scores the resulting position and takes the move back.
// The deferred Pop keeps play and undo paired on every return path.
func (s *Searcher) child(col, depth, alpha, beta int, maximizing bool) int {
	s.board.Push(col)
	defer s.board.Pop()
	return s.minimax(depth, alpha, beta, maximizing)
}

// minimax returns the value of the current position. Values are always
// from the root player's perspective; maximizing tells whose simulated turn
// it is. Cutoffs are fail-hard: the loop stops as soon as the running best
// reaches the opposite bound.
func (s *Searcher) minimax(depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	if s.nodes%checkInterval == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	if s.aborted {
		return 0
	}

	switch s.board.Status() {
	case board.Won:
		// The side that just moved won.
		if maximizing {
			return -WinScore + depth
		}
		return WinScore - depth
	case board.Drawn:
		return 0
	}

	if depth == s.maxDepth {
		return Evaluate(s.board, s.perspective, s.threshold)
	}

	if maximizing {
		best := -infinity
		for _, col := range centerOrder {
			if !s.board.CanPlay(col) {
				continue
			}
			best = max(best, s.child(col, depth+1, alpha, beta, false))
			alpha = max(alpha, best)
			if best >= beta {
				break
			}
		}
		return best
	}

	best := infinity
	for _, col := range centerOrder {
		if !s.board.CanPlay(col) {
			continue
		}
		best = min(best, s.child(col, depth+1, alpha, beta, true))
		beta = min(beta, best)
		if best <= alpha {
			break
		}
	}
	return best
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

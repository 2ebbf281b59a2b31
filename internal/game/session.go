package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/search"
)

// Session is a human-versus-computer game advanced one human move at a
// time, as used by network clients. It is not safe for concurrent use.
type Session struct {
	Board *board.Board
	AI    board.Player // Side played by the computer

	ai *AIPlayer
}

// NewSession starts a game against ai. When aiFirst is set the computer
// plays the opening move at once; the returned column is that move, or -1.
func NewSession(ctx context.Context, ai *AIPlayer, aiFirst bool) (*Session, int, error) {
	if ai.Depth <= 0 {
		return nil, -1, fmt.Errorf("depth %d: %w", ai.Depth, errors.ErrInvalidDepth)
	}
	s := &Session{Board: board.New(), AI: board.Second, ai: ai}
	if !aiFirst {
		return s, -1, nil
	}
	s.AI = board.First
	col, err := s.reply(ctx)
	return s, col, err
}

// Human returns the side played by the human.
func (s *Session) Human() board.Player {
	return s.AI.Opponent()
}

// Move plays the human's column and the computer's reply. The reply is -1
// when the human's move ended the game. A rejected move leaves the
// position unchanged.
func (s *Session) Move(ctx context.Context, col int) (int, error) {
	if s.Board.Status() != board.Unfinished {
		return -1, fmt.Errorf("position %q: %w", s.Board.String(), errors.ErrGameOver)
	}
	if err := s.Board.Play(col); err != nil {
		return -1, err
	}
	if s.Board.Status() != board.Unfinished {
		return -1, nil
	}
	return s.reply(ctx)
}

// Undo takes back the human's last move together with the computer's
// reply, if there was one. It fails with ErrEmptyHistory when the human
// has not moved yet.
func (s *Session) Undo() error {
	b := s.Board
	if b.ToMove() == s.AI {
		// The human's move ended the game; there is no reply to take back.
		return b.Undo()
	}
	if b.Plies() < 2 {
		return fmt.Errorf("undo: %w", errors.ErrEmptyHistory)
	}
	b.Pop()
	b.Pop()
	return nil
}

// reply plays the computer's move. A search error leaves the position
// unchanged.
func (s *Session) reply(ctx context.Context) (int, error) {
	col, err := s.ai.NextMove(ctx, s.Board)
	if err != nil {
		return -1, err
	}
	if err := s.Board.Play(col); err != nil {
		return -1, err
	}
	return col, nil
}

// Analyse searches the current position without changing it.
func (s *Session) Analyse(ctx context.Context, depth int) (search.Result, error) {
	return search.New(s.Board.Copy(), depth, search.WithContext(ctx)).Search()
}

package board

import (
	"fmt"

	"github.com/lgbarn/connect4-go/internal/errors"
)

// CanPlay reports whether a stone can be dropped into column col.
func (b *Board) CanPlay(col int) bool {
	if col < 0 || col >= Columns {
		return false
	}
	return int(b.cursor[col]) < col*ColumnStride+Rows
}

// Play drops a stone for the side to move into column col.
// It fails with ErrInvalidMove, leaving the board untouched, when the column
// is out of range or full.
func (b *Board) Play(col int) error {
	if !b.CanPlay(col) {
		return &errors.MoveError{Err: errors.ErrInvalidMove, Column: col, Ply: b.plies, Moves: b.String()}
	}
	b.Push(col)
	return nil
}

// Undo takes back the most recent move.
// It fails with ErrEmptyHistory when no moves have been played.
func (b *Board) Undo() error {
	if b.plies == 0 {
		return fmt.Errorf("undo: %w", errors.ErrEmptyHistory)
	}
	b.Pop()
	return nil
}

// Push plays col without validation. Callers must have checked CanPlay;
// the search uses it on columns taken from the valid move set.
func (b *Board) Push(col int) {
	b.masks[b.plies&1] |= 1 << b.cursor[col]
	b.cursor[col]++
	b.log[b.plies] = uint8(col)
	b.plies++
}

// Pop undoes the most recent Push without validation.
// Callers must know that at least one move has been played.
func (b *Board) Pop() {
	b.plies--
	col := b.log[b.plies]
	b.log[b.plies] = 0
	b.cursor[col]--
	b.masks[b.plies&1] &^= 1 << b.cursor[col]
}

// ValidMoves returns the columns that are not full, in ascending order.
// The result is empty only when the board is full.
func (b *Board) ValidMoves() []int {
	return b.AppendValidMoves(make([]int, 0, Columns))
}

// AppendValidMoves appends the playable columns to dst in ascending order.
func (b *Board) AppendValidMoves(dst []int) []int {
	for col := 0; col < Columns; col++ {
		if b.CanPlay(col) {
			dst = append(dst, col)
		}
	}
	return dst
}

package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/connect4-go/internal/board"
)

// Positions used across package tests. Columns are 0-indexed.
const (
	// VerticalWin: first player stacks column 0 and wins on ply 7.
	VerticalWin = "0101010"
	// HorizontalWin: first player fills the bottom row 0..3 on ply 7.
	HorizontalWin = "0516263"
	// DiagonalUpWin: first player completes a bottom-left to top-right diagonal.
	DiagonalUpWin = "01122323353"
	// DiagonalDownWin: the mirror image of DiagonalUpWin.
	DiagonalDownWin = "65544343313"
	// DrawnGame is a full board without any line of four.
	DrawnGame = "532315310141250566206042303423260411544566"
)

// MustBoard builds a board from a digit-per-move string.
// It calls t.Fatal if the string is not a legal move sequence.
func MustBoard(t *testing.T, moves string) *board.Board {
	t.Helper()
	b, err := board.Parse(moves)
	if err != nil {
		t.Fatalf("MustBoard(%q): %v", moves, err)
	}
	return b
}

// MustPlay plays columns on b, failing the test on the first illegal one.
func MustPlay(t *testing.T, b *board.Board, cols ...int) {
	t.Helper()
	for _, col := range cols {
		if err := b.Play(col); err != nil {
			t.Fatalf("Play(%d) on %q: %v", col, b.String(), err)
		}
	}
}

// AssertBoardEqual fails if the two boards differ, reporting a grid diff.
func AssertBoardEqual(t *testing.T, got, want *board.Board, msgAndArgs ...interface{}) {
	t.Helper()
	if got.Equal(want) {
		return
	}
	diff := cmp.Diff(want.Render().String(), got.Render().String())
	if diff == "" {
		diff = cmp.Diff(want.String(), got.String())
	}
	msg := formatMessage(msgAndArgs...)
	if msg != "" {
		t.Errorf("%s: board mismatch (-want +got):\n%s", msg, diff)
	} else {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

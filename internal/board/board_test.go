package board_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/testutil"
)

func TestNew(t *testing.T) {
	b := board.New()

	t.Run("initial state", func(t *testing.T) {
		if b.Plies() != 0 {
			t.Errorf("Plies() = %d; want 0", b.Plies())
		}
		if b.ToMove() != board.First {
			t.Errorf("ToMove() = %v; want first", b.ToMove())
		}
		if b.Status() != board.Unfinished {
			t.Errorf("Status() = %v; want unfinished", b.Status())
		}
		if b.LastMove() != -1 {
			t.Errorf("LastMove() = %d; want -1", b.LastMove())
		}
		if b.String() != "" {
			t.Errorf("String() = %q; want empty", b.String())
		}
	})

	t.Run("all columns empty", func(t *testing.T) {
		for col := 0; col < board.Columns; col++ {
			if h := b.Height(col); h != 0 {
				t.Errorf("Height(%d) = %d; want 0", col, h)
			}
		}
		testutil.AssertEqual(t, b.ValidMoves(), []int{0, 1, 2, 3, 4, 5, 6})
	})

	t.Run("masks empty", func(t *testing.T) {
		if b.Mask(board.First) != 0 || b.Mask(board.Second) != 0 {
			t.Error("masks not empty on a new board")
		}
	})
}

func TestPlay(t *testing.T) {
	b := board.New()
	testutil.MustPlay(t, b, 3)

	if got := b.Mask(board.First); got != 1<<board.Bit(3, 0) {
		t.Errorf("Mask(first) = %b; want bit %d", got, board.Bit(3, 0))
	}
	if b.ToMove() != board.Second {
		t.Errorf("ToMove() = %v; want second", b.ToMove())
	}

	testutil.MustPlay(t, b, 3)
	if got := b.Mask(board.Second); got != 1<<board.Bit(3, 1) {
		t.Errorf("Mask(second) = %b; want bit %d", got, board.Bit(3, 1))
	}
	if b.Height(3) != 2 {
		t.Errorf("Height(3) = %d; want 2", b.Height(3))
	}
	testutil.AssertEqual(t, b.Moves(), []int{3, 3})
	if b.LastMove() != 3 {
		t.Errorf("LastMove() = %d; want 3", b.LastMove())
	}
}

func TestPlay_InvalidColumn(t *testing.T) {
	tests := []struct {
		name string
		col  int
	}{
		{"negative", -1},
		{"too large", board.Columns},
		{"far out", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.MustBoard(t, "33")
			before := b.Copy()

			err := b.Play(tt.col)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)
			testutil.AssertBoardEqual(t, b, before, "state after rejected move")
		})
	}
}

func TestPlay_FullColumn(t *testing.T) {
	b := testutil.MustBoard(t, "222222")
	before := b.Copy()

	if b.CanPlay(2) {
		t.Error("CanPlay(2) = true on a full column")
	}

	err := b.Play(2)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)

	var moveErr *errors.MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("error %v is not a *MoveError", err)
	}
	if moveErr.Column != 2 || moveErr.Ply != 6 {
		t.Errorf("MoveError = (column %d, ply %d); want (2, 6)", moveErr.Column, moveErr.Ply)
	}

	testutil.AssertBoardEqual(t, b, before, "state after full-column play")
	testutil.AssertEqual(t, b.ValidMoves(), []int{0, 1, 3, 4, 5, 6})
}

func TestUndo(t *testing.T) {
	b := testutil.MustBoard(t, "3443")
	testutil.AssertNoError(t, b.Undo())

	want := testutil.MustBoard(t, "344")
	testutil.AssertBoardEqual(t, b, want)
}

func TestUndo_EmptyHistory(t *testing.T) {
	b := board.New()
	err := b.Undo()
	testutil.AssertErrorIs(t, err, errors.ErrEmptyHistory)
	testutil.AssertBoardEqual(t, b, board.New())
}

func TestPlayUndo_Inverse(t *testing.T) {
	b := testutil.MustBoard(t, "3324105")
	for col := 0; col < board.Columns; col++ {
		if !b.CanPlay(col) {
			continue
		}
		before := b.Copy()
		testutil.MustPlay(t, b, col)
		testutil.AssertNoError(t, b.Undo())
		testutil.AssertBoardEqual(t, b, before, "play(%d); undo()", col)
	}
}

// TestRandomWalk plays and undoes random legal moves and checks the board
// invariants after every step.
func TestRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 50; game++ {
		b := board.New()
		var history []*board.Board

		for step := 0; step < 200; step++ {
			undo := b.Plies() > 0 && (b.Plies() == board.MaxPlies || rng.Intn(4) == 0)
			if undo {
				testutil.AssertNoError(t, b.Undo())
				want := history[len(history)-1]
				history = history[:len(history)-1]
				testutil.AssertBoardEqual(t, b, want, "game %d step %d undo", game, step)
			} else {
				moves := b.ValidMoves()
				history = append(history, b.Copy())
				testutil.MustPlay(t, b, moves[rng.Intn(len(moves))])
			}

			if !b.CheckInvariants() {
				t.Fatalf("game %d step %d: invariants broken at %q", game, step, b.String())
			}
			first, second := b.Mask(board.First), b.Mask(board.Second)
			if first&second != 0 {
				t.Fatalf("masks overlap at %q", b.String())
			}
			if n := bits.OnesCount64(first) + bits.OnesCount64(second); n != b.Plies() || len(b.Moves()) != b.Plies() {
				t.Fatalf("popcount %d, log %d, plies %d", n, len(b.Moves()), b.Plies())
			}
		}
	}
}

func TestFromMoves(t *testing.T) {
	b, err := board.FromMoves([]int{3, 3, 4})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, b.Moves(), []int{3, 3, 4})

	_, err = board.FromMoves([]int{0, 0, 0, 0, 0, 0, 0})
	testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)

	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) && moveErr.Ply != 6 {
		t.Errorf("MoveError.Ply = %d; want 6", moveErr.Ply)
	}
}

func TestCopy_Independent(t *testing.T) {
	b := testutil.MustBoard(t, "33")
	c := b.Copy()
	testutil.MustPlay(t, c, 4)

	if b.Plies() != 2 {
		t.Errorf("original Plies() = %d after playing on copy; want 2", b.Plies())
	}
	if b.Equal(c) {
		t.Error("copy still equal after diverging")
	}
}

func TestKey(t *testing.T) {
	t.Run("transpositions share a key", func(t *testing.T) {
		a := testutil.MustBoard(t, "3344")
		b := testutil.MustBoard(t, "4433")
		if a.Key() != b.Key() {
			t.Errorf("Key(3344) = %x, Key(4433) = %x; want equal", a.Key(), b.Key())
		}
	})

	t.Run("different positions differ", func(t *testing.T) {
		a := testutil.MustBoard(t, "3344")
		b := testutil.MustBoard(t, "3443")
		if a.Key() == b.Key() {
			t.Errorf("Key(3344) == Key(3443) = %x", a.Key())
		}
	})

	t.Run("empty and non-empty differ", func(t *testing.T) {
		if board.New().Key() == testutil.MustBoard(t, "0").Key() {
			t.Error("empty board shares key with a one-stone board")
		}
	})

	t.Run("mirror", func(t *testing.T) {
		a := testutil.MustBoard(t, "3322")
		b := testutil.MustBoard(t, "3344")
		if a.MirrorKey() != b.Key() {
			t.Errorf("MirrorKey(3322) = %x; want Key(3344) = %x", a.MirrorKey(), b.Key())
		}
		if a.MirrorKey() == a.Key() {
			t.Error("asymmetric position has MirrorKey == Key")
		}
		sym := testutil.MustBoard(t, "33")
		if sym.MirrorKey() != sym.Key() {
			t.Error("symmetric position has MirrorKey != Key")
		}
	})
}

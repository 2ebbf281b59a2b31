package board

import (
	"math/bits"
	"slices"
)

// Board represents a Connect Four position with all state needed for play
// and undo. The zero value is not ready for use; call New.
type Board struct {
	// Occupied cells per player. masks[0] holds the stones placed on even
	// plies, masks[1] those placed on odd plies. The masks are disjoint.
	masks [2]uint64

	// Bit index of the next free cell in each column. Starts at the
	// column's base bit and is full at base+Rows.
	cursor [Columns]uint8

	// Number of plies played; equals the length of the move log.
	plies int

	// Columns played, in order. Only the first plies entries are valid.
	log [MaxPlies]uint8
}

// New creates an empty board.
func New() *Board {
	b := &Board{}
	for col := 0; col < Columns; col++ {
		b.cursor[col] = uint8(col * ColumnStride)
	}
	return b
}

// FromMoves creates a board by replaying moves from the empty position.
func FromMoves(moves []int) (*Board, error) {
	b := New()
	for _, col := range moves {
		if err := b.Play(col); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Plies returns the number of moves played.
func (b *Board) Plies() int {
	return b.plies
}

// ToMove returns the player whose turn it is.
func (b *Board) ToMove() Player {
	return Player(b.plies & 1)
}

// LastMover returns the player who made the most recent move.
// The result is meaningless on an empty board.
func (b *Board) LastMover() Player {
	return Player((b.plies - 1) & 1)
}

// Mask returns the bitboard of cells occupied by p.
func (b *Board) Mask(p Player) uint64 {
	return b.masks[p]
}

// Occupied returns the bitboard of all occupied cells.
func (b *Board) Occupied() uint64 {
	return b.masks[0] | b.masks[1]
}

// Height returns the number of stones in column col.
func (b *Board) Height(col int) int {
	return int(b.cursor[col]) - col*ColumnStride
}

// Moves returns a copy of the move log.
func (b *Board) Moves() []int {
	moves := make([]int, b.plies)
	for i := 0; i < b.plies; i++ {
		moves[i] = int(b.log[i])
	}
	return moves
}

// LastMove returns the most recently played column, or -1 on an empty board.
func (b *Board) LastMove() int {
	if b.plies == 0 {
		return -1
	}
	return int(b.log[b.plies-1])
}

// Key returns a value that uniquely identifies the position.
// Within each column, adding the base bit to the occupancy yields a single
// bit just above the stack; adding the side to move's stones then records
// ownership below it. Columns never carry into each other.
func (b *Board) Key() uint64 {
	return b.masks[b.ToMove()] + b.Occupied() + bottomMask
}

// MirrorKey returns the key of the left-right mirror image of the position.
func (b *Board) MirrorKey() uint64 {
	return mirror(b.Key())
}

// mirror reverses the order of the 7-bit column blocks.
func mirror(key uint64) uint64 {
	const block = 1<<ColumnStride - 1
	var out uint64
	for col := 0; col < Columns; col++ {
		column := (key >> uint(col*ColumnStride)) & block
		out |= column << uint((Columns-1-col)*ColumnStride)
	}
	return out
}

// Equal reports whether two boards hold identical state, move log included.
func (b *Board) Equal(other *Board) bool {
	if b.masks != other.masks || b.cursor != other.cursor || b.plies != other.plies {
		return false
	}
	return slices.Equal(b.log[:b.plies], other.log[:other.plies])
}

// checkInvariants verifies the structural invariants of the board.
// It is used by tests.
func (b *Board) checkInvariants() bool {
	if b.masks[0]&b.masks[1] != 0 {
		return false
	}
	if bits.OnesCount64(b.masks[0])+bits.OnesCount64(b.masks[1]) != b.plies {
		return false
	}
	if b.Occupied()&^PlayableMask != 0 {
		return false
	}
	heights := 0
	for col := 0; col < Columns; col++ {
		h := b.Height(col)
		if h < 0 || h > Rows {
			return false
		}
		heights += h
	}
	return heights == b.plies
}

// Package board provides the packed Connect Four game state.
//
// The board is stored as two bitboards, one per player, with 7 bits per
// column (6 playable cells plus a guard bit) in the following bit order:
//
//	 6 13 20 27 34 41 48   <- guard row
//	 5 12 19 26 33 40 47
//	 4 11 18 25 32 39 46
//	 3 10 17 24 31 38 45
//	 2  9 16 23 30 37 44
//	 1  8 15 22 29 36 43
//	 0  7 14 21 28 35 42
//
// The guard row stops horizontal and diagonal shifts from wrapping from the
// top of one column into the bottom of the next.
package board

// Board dimensions.
const (
	Columns      = 7
	Rows         = 6
	ColumnStride = Rows + 1 // bits per column, including the guard bit
	MaxPlies     = Columns * Rows
	Center       = Columns / 2
)

// Player identifies one of the two sides. First moves on even plies.
type Player int

const (
	First Player = iota
	Second
)

// String returns the string representation of a player.
func (p Player) String() string {
	if p == First {
		return "first"
	}
	return "second"
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return p ^ 1
}

// Status is the state of the game after the most recent move.
type Status int

const (
	Unfinished Status = iota
	Won
	Drawn
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "unfinished"
	}
}

// Cell is the content of one grid cell in a rendered board.
type Cell int

const (
	Empty Cell = iota
	PlayerOne
	PlayerTwo
)

// String returns a single-character representation of a cell.
func (c Cell) String() string {
	switch c {
	case PlayerOne:
		return "X"
	case PlayerTwo:
		return "O"
	default:
		return "-"
	}
}

// Grid is a rendered board. Row 0 is the top row.
type Grid [Rows][Columns]Cell

// Line directions as bit strides.
const (
	Vertical     = 1
	Horizontal   = ColumnStride
	DiagonalDown = ColumnStride - 1 // up-left to down-right
	DiagonalUp   = ColumnStride + 1 // down-left to up-right
)

// Directions lists the four line strides checked for runs.
var Directions = [4]uint{Vertical, Horizontal, DiagonalDown, DiagonalUp}

// bottomMask has one bit set at the base of every column.
const bottomMask uint64 = 1<<0 | 1<<7 | 1<<14 | 1<<21 | 1<<28 | 1<<35 | 1<<42

// PlayableMask has every playable cell set and every guard bit clear.
const PlayableMask uint64 = bottomMask * ((1 << Rows) - 1)

// Bit returns the bit index of the cell in column col, row row (0 = bottom).
func Bit(col, row int) uint {
	return uint(col*ColumnStride + row)
}

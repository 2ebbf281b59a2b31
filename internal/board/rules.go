package board

// HasFour reports whether mask contains four stones in a line.
//
// For each direction with bit stride s, m & m>>s marks the start of every
// run of two; shifting that by 2s and intersecting leaves the starts of runs
// of four. The guard bit per column keeps shifts from wrapping across columns.
func HasFour(mask uint64) bool {
	for _, s := range Directions {
		pairs := mask & (mask >> s)
		if pairs&(pairs>>(2*s)) != 0 {
			return true
		}
	}
	return false
}

// CheckLastMoveWins reports whether the most recent move completed a line
// of four. Only the last mover's stones can have formed a new line.
func (b *Board) CheckLastMoveWins() bool {
	if b.plies == 0 {
		return false
	}
	return HasFour(b.masks[b.LastMover()])
}

// Status returns the state of the game after the most recent move.
func (b *Board) Status() Status {
	if b.CheckLastMoveWins() {
		return Won
	}
	if b.plies == MaxPlies {
		return Drawn
	}
	return Unfinished
}

// Winner returns the player who won and true, or false if nobody has won.
func (b *Board) Winner() (Player, bool) {
	if !b.CheckLastMoveWins() {
		return First, false
	}
	return b.LastMover(), true
}

// Render decodes the bitboards into a grid with row 0 at the top.
func (b *Board) Render() Grid {
	var g Grid
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			bit := uint64(1) << Bit(col, row)
			cell := Empty
			switch {
			case b.masks[First]&bit != 0:
				cell = PlayerOne
			case b.masks[Second]&bit != 0:
				cell = PlayerTwo
			}
			g[Rows-1-row][col] = cell
		}
	}
	return g
}

// String returns the grid as text, one line per row, top row first.
func (g Grid) String() string {
	buf := make([]byte, 0, Rows*(Columns+1))
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			buf = append(buf, g[row][col].String()...)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

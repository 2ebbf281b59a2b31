package search

import (
	"math/bits"

	"github.com/lgbarn/connect4-go/internal/board"
)

// Feature weights for partial lines.
const (
	threeWeight = 8000
	twoWeight   = 1000
)

// DefaultFeatureThreshold is the ply count above which the feature
// evaluation replaces the positional table.
const DefaultFeatureThreshold = 10

// positionWeights holds the static value of every bit position, one
// 7-entry block per column with the guard bit last. Central columns and
// middle rows take part in the most lines.
var positionWeights = [board.Columns * board.ColumnStride]int{
	3, 4, 5, 5, 4, 3, 0,
	4, 6, 8, 8, 6, 4, 0,
	5, 8, 11, 11, 8, 5, 0,
	7, 10, 13, 13, 10, 7, 0,
	5, 8, 11, 11, 8, 5, 0,
	4, 6, 8, 8, 6, 4, 0,
	3, 4, 5, 5, 4, 3, 0,
}

// Evaluate scores a non-terminal position from the point of view of
// perspective. Positions with more than threshold plies use FeatureEval,
// earlier positions use StaticEval.
func Evaluate(b *board.Board, perspective board.Player, threshold int) int {
	if b.Plies() > threshold {
		return FeatureEval(b, perspective)
	}
	return StaticEval(b, perspective)
}

// StaticEval sums the positional weights of perspective's stones and
// subtracts those of the opponent.
func StaticEval(b *board.Board, perspective board.Player) int {
	return weightOf(b.Mask(perspective)) - weightOf(b.Mask(perspective.Opponent()))
}

func weightOf(mask uint64) int {
	score := 0
	for mask != 0 {
		score += positionWeights[bits.TrailingZeros64(mask)]
		mask &= mask - 1
	}
	return score
}

// FeatureEval counts runs of two and three stones in every direction for
// both players, using the same shifts as win detection with one doubling
// fewer, and weighs the difference.
func FeatureEval(b *board.Board, perspective board.Player) int {
	own := b.Mask(perspective)
	opp := b.Mask(perspective.Opponent())

	score := 0
	for _, s := range board.Directions {
		ownTwos, ownThrees := runs(own, s)
		oppTwos, oppThrees := runs(opp, s)
		score += threeWeight*(ownThrees-oppThrees) + twoWeight*(ownTwos-oppTwos)
	}
	return score
}

// runs returns the number of cells starting a run of two and a run of
// three in direction s.
func runs(mask uint64, s uint) (twos, threes int) {
	pairs := mask & (mask >> s)
	triples := pairs & (mask >> (2 * s))
	return bits.OnesCount64(pairs), bits.OnesCount64(triples)
}

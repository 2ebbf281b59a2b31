package board

import (
	"fmt"
	"strings"

	"github.com/lgbarn/connect4-go/internal/errors"
)

// ParseMoves converts a digit-per-move string such as "3344" into columns.
// Columns are 0-indexed. Surrounding whitespace is ignored.
func ParseMoves(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	moves := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c >= '0'+Columns {
			return nil, &errors.ParseError{
				Err:    errors.ErrInvalidNotation,
				Input:  s,
				Offset: i,
				Got:    fmt.Sprintf("%q", c),
			}
		}
		moves = append(moves, int(c-'0'))
	}
	if len(moves) > MaxPlies {
		return nil, &errors.ParseError{
			Err:    errors.ErrInvalidNotation,
			Input:  s,
			Offset: MaxPlies,
			Got:    fmt.Sprintf("%d moves", len(moves)),
		}
	}
	return moves, nil
}

// FormatMoves converts columns into a digit-per-move string.
func FormatMoves(moves []int) string {
	var sb strings.Builder
	sb.Grow(len(moves))
	for _, col := range moves {
		sb.WriteByte(byte('0' + col))
	}
	return sb.String()
}

// Parse builds a board from a digit-per-move string.
func Parse(s string) (*Board, error) {
	moves, err := ParseMoves(s)
	if err != nil {
		return nil, err
	}
	b, err := FromMoves(moves)
	if err != nil {
		return nil, fmt.Errorf("replaying %q: %w", s, err)
	}
	return b, nil
}

// String returns the move log in digit-per-move notation.
func (b *Board) String() string {
	buf := make([]byte, b.plies)
	for i := 0; i < b.plies; i++ {
		buf[i] = '0' + b.log[i]
	}
	return string(buf)
}

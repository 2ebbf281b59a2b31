package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/search"
	"github.com/lgbarn/connect4-go/internal/worker"
)

// PositionJSON represents a position in JSON format.
type PositionJSON struct {
	Moves      string   `json:"moves"`
	Plies      int      `json:"plies"`
	ToMove     string   `json:"toMove,omitempty"`
	Status     string   `json:"status"`
	Winner     string   `json:"winner,omitempty"`
	ValidMoves []int    `json:"validMoves"`
	Grid       []string `json:"grid"` // Top row first
	Key        uint64   `json:"key"`
}

// AnalysisJSON represents the analysis of one position in JSON format.
type AnalysisJSON struct {
	Index       int                `json:"index"`
	Label       string             `json:"label,omitempty"`
	Moves       string             `json:"moves"`
	Column      int                `json:"column"`
	Score       int                `json:"score"`
	Depth       int                `json:"depth,omitempty"`
	Nodes       uint64             `json:"nodes"`
	Scores      []search.MoveScore `json:"scores,omitempty"`
	Duplicate   bool               `json:"duplicate,omitempty"`
	DuplicateOf *int               `json:"duplicateOf,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// AnalysisOutput holds multiple analyses for array output.
type AnalysisOutput struct {
	Positions []*AnalysisJSON `json:"positions"`
}

// PositionToJSON converts a board to JSON format.
func PositionToJSON(b *board.Board) *PositionJSON {
	pj := &PositionJSON{
		Moves:      b.String(),
		Plies:      b.Plies(),
		Status:     b.Status().String(),
		ValidMoves: b.ValidMoves(),
		Key:        b.Key(),
	}
	switch b.Status() {
	case board.Unfinished:
		pj.ToMove = b.ToMove().String()
	case board.Won:
		winner, _ := b.Winner()
		pj.Winner = winner.String()
		// Nothing can be played after a win.
		pj.ValidMoves = []int{}
	}

	g := b.Render()
	pj.Grid = make([]string, 0, board.Rows)
	for _, row := range g {
		line := make([]byte, board.Columns)
		for col, cell := range row {
			line[col] = cell.String()[0]
		}
		pj.Grid = append(pj.Grid, string(line))
	}
	return pj
}

// AnalysisToJSON converts a search result to JSON format.
func AnalysisToJSON(moves string, res search.Result) *AnalysisJSON {
	return &AnalysisJSON{
		Moves:  moves,
		Column: res.Column,
		Score:  res.Score,
		Depth:  res.Depth,
		Nodes:  res.Nodes,
		Scores: res.Moves,
	}
}

// ResultToJSON converts a batch result to JSON format.
func ResultToJSON(r worker.ProcessResult) *AnalysisJSON {
	aj := AnalysisToJSON(r.Moves, r.Result)
	aj.Index = r.Index
	aj.Label = r.Label
	if r.Duplicate {
		aj.Duplicate = true
		first := r.DuplicateOf
		aj.DuplicateOf = &first
	}
	if r.Error != nil {
		aj.Error = r.Error.Error()
		aj.Column = -1
	}
	return aj
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package worker

import (
	"context"
	"testing"

	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/hashing"
	"github.com/lgbarn/connect4-go/internal/search"
)

func newAnalyzer(depth int, dedupe bool) *Analyzer {
	a := NewAnalyzer(context.Background(), depth)
	if dedupe {
		a.Detector = hashing.NewThreadSafePositionDetector(false, 0)
	}
	return a
}

func TestAnalyzer_Process(t *testing.T) {
	tests := []struct {
		name       string
		moves      string
		depth      int
		wantColumn int
		wantScore  int
	}{
		{"win in one", "010101", 4, 0, 9999},
		{"win in two", "1122", 3, 3, 9997},
		{"forced block", "061656", 2, 6, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newAnalyzer(tt.depth, false).Process(WorkItem{Index: 0, Label: "t", Moves: tt.moves})
			if res.Error != nil {
				t.Fatalf("Process() error = %v", res.Error)
			}
			if res.Result.Column != tt.wantColumn || res.Result.Score != tt.wantScore {
				t.Errorf("Process() = (%d, %d); want (%d, %d)",
					res.Result.Column, res.Result.Score, tt.wantColumn, tt.wantScore)
			}
			if res.Board == nil || res.Board.String() != tt.moves {
				t.Errorf("Board = %v; want position %q", res.Board, tt.moves)
			}
		})
	}
}

func TestAnalyzer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		moves   string
		wantErr error
	}{
		{"bad notation", "38", errors.ErrInvalidNotation},
		{"full column", "0000000", errors.ErrInvalidMove},
		{"finished game", "0101010", errors.ErrGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newAnalyzer(2, false).Process(WorkItem{Moves: tt.moves})
			if !errors.Is(res.Error, tt.wantErr) {
				t.Errorf("Process(%q) error = %v; want %v", tt.moves, res.Error, tt.wantErr)
			}
		})
	}
}

func TestAnalyze_OrderAndDuplicates(t *testing.T) {
	items := []WorkItem{
		{Index: 0, Label: "in:1", Moves: "3344"},
		{Index: 1, Label: "in:2", Moves: "010101"},
		{Index: 2, Label: "in:3", Moves: "4433"},
		{Index: 3, Label: "in:4", Moves: "1122"},
	}

	// One worker keeps the first occurrence deterministic.
	results := Analyze(items, newAnalyzer(3, true), 1)

	if len(results) != len(items) {
		t.Fatalf("got %d results; want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d; want %d", i, r.Index, i)
		}
		if r.Label != items[i].Label {
			t.Errorf("results[%d].Label = %q; want %q", i, r.Label, items[i].Label)
		}
	}

	if !results[2].Duplicate || results[2].DuplicateOf != 0 {
		t.Errorf("transposition: Duplicate=%v DuplicateOf=%d; want true 0", results[2].Duplicate, results[2].DuplicateOf)
	}
	if !errors.Is(results[2].Error, errors.ErrDuplicatePosition) {
		t.Errorf("duplicate error = %v; want ErrDuplicatePosition", results[2].Error)
	}
	if results[1].Result.Column != 0 {
		t.Errorf("results[1].Column = %d; want 0", results[1].Result.Column)
	}
	if results[3].Result.Score != 9997 {
		t.Errorf("results[3].Score = %d; want 9997", results[3].Result.Score)
	}
}

func TestAnalyze_ParallelMatchesSerial(t *testing.T) {
	var items []WorkItem
	for i, moves := range []string{"", "3", "33", "333333", "061656", "1122", "0112232335", "3332224440"} {
		items = append(items, WorkItem{Index: i, Moves: moves})
	}

	serial := Analyze(items, newAnalyzer(4, false), 1)
	parallel := Analyze(items, newAnalyzer(4, false), 4)

	for i := range items {
		if serial[i].Result.Column != parallel[i].Result.Column || serial[i].Result.Score != parallel[i].Result.Score {
			t.Errorf("item %d: serial (%d, %d) != parallel (%d, %d)", i,
				serial[i].Result.Column, serial[i].Result.Score,
				parallel[i].Result.Column, parallel[i].Result.Score)
		}
	}
}

func TestAnalyze_Empty(t *testing.T) {
	if got := Analyze(nil, newAnalyzer(2, false), 2); len(got) != 0 {
		t.Errorf("Analyze(nil) returned %d results", len(got))
	}
}

func TestAnalyzer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newAnalyzer(6, false)
	a.Ctx = ctx
	res := a.Process(WorkItem{Moves: "33"})
	if !errors.Is(res.Error, errors.ErrSearchAborted) {
		t.Errorf("error = %v; want ErrSearchAborted", res.Error)
	}
}

func TestNewAnalyzer_Defaults(t *testing.T) {
	a := NewAnalyzer(context.Background(), 5)
	if a.Depth != 5 {
		t.Errorf("Depth = %d; want 5", a.Depth)
	}
	if a.FeatureThreshold != search.DefaultFeatureThreshold {
		t.Errorf("FeatureThreshold = %d; want %d", a.FeatureThreshold, search.DefaultFeatureThreshold)
	}
	if a.Detector != nil {
		t.Error("Detector should be nil")
	}
}

func TestAnalyzer_FeatureThreshold(t *testing.T) {
	// One ply deep after "2" the positional table stacks on column 2, while
	// run counting scores every reply 0 and keeps the center.
	a := newAnalyzer(1, false)
	if got := a.Process(WorkItem{Moves: "2"}).Result.Column; got != 2 {
		t.Errorf("default threshold column = %d; want 2", got)
	}
	a.FeatureThreshold = 0
	if got := a.Process(WorkItem{Moves: "2"}).Result.Column; got != 3 {
		t.Errorf("threshold 0 column = %d; want 3", got)
	}
}

func TestAnalyze_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := make([]WorkItem, 50)
	for i := range items {
		items[i] = WorkItem{Index: i, Moves: "33"}
	}
	a := newAnalyzer(6, false)
	a.Ctx = ctx

	results := Analyze(items, a, 2)
	if len(results) > len(items) {
		t.Fatalf("got %d results for %d items", len(results), len(items))
	}
	for _, r := range results {
		if !errors.Is(r.Error, errors.ErrSearchAborted) {
			t.Errorf("item %d: error = %v; want ErrSearchAborted", r.Index, r.Error)
		}
	}
}

package worker

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/hashing"
	"github.com/lgbarn/connect4-go/internal/search"
)

// Analyzer searches the best move for each work item. It holds no
// per-item state, so Process may be called from many workers at once.
type Analyzer struct {
	Depth int

	// FeatureThreshold is the ply count above which leaves are scored by
	// counting runs. Zero counts runs at every leaf; NewAnalyzer starts
	// from search.DefaultFeatureThreshold.
	FeatureThreshold int

	// Detector flags positions seen earlier in the batch; duplicates are
	// not searched again. Nil disables duplicate detection. With several
	// workers, which occurrence counts as the first depends on scheduling.
	Detector *hashing.ThreadSafePositionDetector

	Ctx context.Context
	Log zerolog.Logger
}

// NewAnalyzer returns an Analyzer searching depth plies under ctx with the
// default feature threshold and no duplicate detection.
func NewAnalyzer(ctx context.Context, depth int) *Analyzer {
	return &Analyzer{
		Depth:            depth,
		FeatureThreshold: search.DefaultFeatureThreshold,
		Ctx:              ctx,
		Log:              zerolog.Nop(),
	}
}

// Process parses, deduplicates and searches one position.
func (a *Analyzer) Process(item WorkItem) ProcessResult {
	res := ProcessResult{Index: item.Index, Label: item.Label, Moves: item.Moves}

	b, err := board.Parse(item.Moves)
	if err != nil {
		res.Error = err
		return res
	}
	res.Board = b

	if a.Detector != nil {
		if first, dup := a.Detector.CheckAndAdd(b, item.Index); dup {
			res.Duplicate = true
			res.DuplicateOf = first
			res.Error = fmt.Errorf("%s: %w of #%d", item.Label, errors.ErrDuplicatePosition, first)
			return res
		}
	}

	ctx := a.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	// Search a copy so the returned board is never shared with a running search.
	s := search.New(b.Copy(), a.Depth,
		search.WithFeatureThreshold(a.FeatureThreshold),
		search.WithContext(ctx),
		search.WithLogger(a.Log),
	)
	res.Result, res.Error = s.Search()
	return res
}

// Analyze runs items through a pool of workers and returns the results in
// input order. When a.Ctx ends, the pool is stopped: items still queued are
// dropped and only the results produced so far are returned.
func Analyze(items []WorkItem, a *Analyzer, numWorkers int) []ProcessResult {
	bufferSize := min(max(len(items), 1), 100)
	pool := NewPoolWithOptions(a.Process, WithWorkers(numWorkers), WithBufferSize(bufferSize))
	if a.Ctx != nil {
		stop := context.AfterFunc(a.Ctx, pool.Stop)
		defer stop()
	}
	a.Log.Debug().Int("workers", pool.NumWorkers()).Int("positions", len(items)).Msg("analysis started")
	pool.Start()

	go func() {
		for _, item := range items {
			if pool.IsStopped() {
				break
			}
			pool.Submit(item)
		}
		pool.Close()
	}()

	return Collect(pool.Results())
}

// Collect drains results and sorts them by Index.
func Collect(results <-chan ProcessResult) []ProcessResult {
	var out []ProcessResult
	for r := range results {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b ProcessResult) int {
		return a.Index - b.Index
	})
	return out
}

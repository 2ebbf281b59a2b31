// Package worker provides a worker pool for analysing batches of positions
// in parallel.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/search"
)

// WorkItem represents a position to be analysed.
type WorkItem struct {
	Index int    // Original index for tracking
	Label string // Source of the position, such as "file:line"
	Moves string // Position in digit notation
}

// ProcessResult represents the result of analysing a position.
type ProcessResult struct {
	Index       int
	Label       string
	Moves       string
	Board       *board.Board  // Position after replaying Moves (nil on parse errors)
	Result      search.Result // Best move; zero when skipped or failed
	Duplicate   bool          // Position already seen earlier in the batch
	DuplicateOf int           // Index of the first occurrence when Duplicate
	Error       error
}

// ProcessFunc turns one work item into its result.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool feeds work items to a fixed set of goroutines running one
// ProcessFunc. Results arrive in completion order, not submission order.
type Pool struct {
	numWorkers int
	bufferSize int
	items      chan WorkItem
	results    chan ProcessResult
	process    ProcessFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values below 1 are
// ignored.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets how many items and results may queue up.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPoolWithOptions creates a pool running process. Without options it
// has one worker and room for 10 queued items.
func NewPoolWithOptions(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{numWorkers: 1, bufferSize: 10, process: process}
	for _, opt := range opts {
		opt(p)
	}
	p.items = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for item := range p.items {
		if p.IsStopped() {
			continue
		}
		p.results <- p.process(item)
	}
}

// Submit queues item, blocking while the queue is full. Items submitted
// after Stop are dropped.
func (p *Pool) Submit(item WorkItem) {
	p.items <- item
}

// Stop makes workers discard queued items instead of processing them.
// Items already being processed still deliver a result.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends the queue, waits for the workers and then closes Results.
// The caller must keep draining Results until then.
func (p *Pool) Close() {
	close(p.items)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel results are delivered on.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

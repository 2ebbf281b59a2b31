package hashing

import (
	"sync"

	"github.com/lgbarn/connect4-go/internal/board"
)

// ThreadSafePositionDetector wraps PositionDetector with mutex protection for concurrent access.
type ThreadSafePositionDetector struct {
	detector *PositionDetector
	mu       sync.RWMutex
}

// NewThreadSafePositionDetector creates a new thread-safe detector.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafePositionDetector(mirror bool, maxCapacity int) *ThreadSafePositionDetector {
	return &ThreadSafePositionDetector{
		detector: NewPositionDetector(mirror, maxCapacity),
	}
}

// CheckAndAdd atomically checks if a position is a duplicate and records it otherwise.
func (d *ThreadSafePositionDetector) CheckAndAdd(b *board.Board, index int) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAdd(b, index)
}

// DuplicateCount returns the number of duplicates detected.
func (d *ThreadSafePositionDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of stored positions.
func (d *ThreadSafePositionDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.UniqueCount()
}

// LoadFromDetector copies entries from an existing detector. Call before concurrent use.
func (d *ThreadSafePositionDetector) LoadFromDetector(other *PositionDetector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, index := range other.seen {
		if _, ok := d.detector.seen[key]; !ok {
			d.detector.seen[key] = index
		}
	}
}

// IsFull returns true if the detector has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (d *ThreadSafePositionDetector) IsFull() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.IsFull()
}

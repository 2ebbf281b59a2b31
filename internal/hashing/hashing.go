// Package hashing provides duplicate position detection for batches of
// Connect Four positions.
package hashing

import (
	"github.com/lgbarn/connect4-go/internal/board"
)

// PositionDetector tracks seen positions for duplicate detection.
type PositionDetector struct {
	// seen maps a position key to the index of its first occurrence
	seen map[uint64]int
	// mirror folds each position together with its left-right mirror image
	mirror bool
	// maxCapacity bounds the number of stored keys (0 = unlimited)
	maxCapacity int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewPositionDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity. Once the detector is full, new
// positions are still checked against the stored ones but no longer added.
func NewPositionDetector(mirror bool, maxCapacity int) *PositionDetector {
	return &PositionDetector{
		seen:        make(map[uint64]int),
		mirror:      mirror,
		maxCapacity: maxCapacity,
	}
}

// Key returns the key used to compare positions: the board key, or the
// smaller of the key and its mirror image when mirror is set.
func Key(b *board.Board, mirror bool) uint64 {
	key := b.Key()
	if mirror {
		key = min(key, b.MirrorKey())
	}
	return key
}

// CheckAndAdd checks if a position is a duplicate and records it otherwise.
// index identifies the position within the batch. It returns the index of
// the first occurrence and true when the position was seen before.
func (d *PositionDetector) CheckAndAdd(b *board.Board, index int) (int, bool) {
	if b == nil {
		return -1, false
	}

	key := Key(b, d.mirror)
	if first, ok := d.seen[key]; ok {
		d.duplicateCount++
		return first, true
	}

	if !d.IsFull() {
		d.seen[key] = index
	}
	return -1, false
}

// DuplicateCount returns the number of duplicates detected.
func (d *PositionDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of stored positions.
func (d *PositionDetector) UniqueCount() int {
	return len(d.seen)
}

// IsFull returns true if the detector has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (d *PositionDetector) IsFull() bool {
	return d.maxCapacity > 0 && len(d.seen) >= d.maxCapacity
}

// Reset clears the stored positions.
func (d *PositionDetector) Reset() {
	d.seen = make(map[uint64]int)
	d.duplicateCount = 0
}

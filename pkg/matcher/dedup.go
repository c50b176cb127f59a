package matcher

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// DedupeMode controls how results are deduplicated.
type DedupeMode int

const (
	// DedupeByLocation deduplicates by alternative, input and offset.
	// The same text matched in two different inputs counts twice.
	DedupeByLocation DedupeMode = iota

	// DedupeByContent deduplicates by alternative and captured groups.
	// The same captured text counts once wherever it appears.
	DedupeByContent
)

// Deduplicator removes duplicate results based on configurable criteria.
// It is not safe for concurrent use.
type Deduplicator[V any] struct {
	seen map[string]bool
	mode DedupeMode
}

// NewDeduplicator creates a deduplicator with location-based deduplication.
func NewDeduplicator[V any]() *Deduplicator[V] {
	return &Deduplicator[V]{
		seen: make(map[string]bool),
		mode: DedupeByLocation,
	}
}

// NewContentDeduplicator creates a deduplicator that deduplicates by content.
func NewContentDeduplicator[V any]() *Deduplicator[V] {
	return &Deduplicator[V]{
		seen: make(map[string]bool),
		mode: DedupeByContent,
	}
}

// SetMode changes the deduplication mode.
func (d *Deduplicator[V]) SetMode(mode DedupeMode) {
	d.mode = mode
}

// IsDuplicate returns true if r was already seen.
func (d *Deduplicator[V]) IsDuplicate(r *Result[V]) bool {
	return d.seen[d.computeKey(r)]
}

// Add marks r as seen.
func (d *Deduplicator[V]) Add(r *Result[V]) {
	d.seen[d.computeKey(r)] = true
}

// Reset clears the deduplicator for reuse.
func (d *Deduplicator[V]) Reset() {
	clear(d.seen)
}

// computeKey generates the deduplication key based on mode.
func (d *Deduplicator[V]) computeKey(r *Result[V]) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(r.Alternative)))
	h.Write([]byte{0})

	switch d.mode {
	case DedupeByContent:
		for _, group := range r.Groups {
			if group.Matched {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
			h.Write([]byte(group.Text))
			h.Write([]byte{0})
		}
	default:
		h.Write([]byte(r.Input))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(r.Index)))
	}
	return hex.EncodeToString(h.Sum(nil))
}

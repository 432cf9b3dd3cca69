// Package history provides a bounded undo/redo stack of before/after states.
package history

import "time"

// Entry is one recorded step. Before and After are owned by the stack once
// pushed; callers must not mutate them afterwards.
type Entry[S any] struct {
	Description string
	Before      S
	After       S
	// GroupID tags entries that may collapse into the current entry while a
	// group with the same id is active.
	GroupID   string
	CreatedAt time.Time
}

// NewEntry builds an untagged entry stamped with the current time.
func NewEntry[S any](description string, before, after S) Entry[S] {
	return Entry[S]{
		Description: description,
		Before:      before,
		After:       after,
		CreatedAt:   time.Now(),
	}
}

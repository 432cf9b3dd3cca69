package command

import (
	"github.com/bethropolis/tidecanvas/internal/core/selection"
)

// SelectionChange replaces the selection.
type SelectionChange struct {
	NoMerge
	Next     selection.Snapshot
	Previous selection.Snapshot
	Apply    func(selection.Snapshot)
}

func NewSelectionChange(next, previous selection.Snapshot, apply func(selection.Snapshot)) *SelectionChange {
	return &SelectionChange{Next: next.Clone(), Previous: previous.Clone(), Apply: apply}
}

func (c *SelectionChange) Describe() string {
	if len(c.Next.IDs) == 0 {
		return "Deselect"
	}
	return plural("Select", len(c.Next.IDs))
}

func (c *SelectionChange) Execute() { c.Apply(c.Next.Clone()) }

func (c *SelectionChange) Undo() { c.Apply(c.Previous.Clone()) }

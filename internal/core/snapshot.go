package core

import (
	"slices"

	"github.com/bethropolis/tidecanvas/internal/core/selection"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/scene"
)

// Snapshot is a deep copy of everything undo restores.
type Snapshot struct {
	Nodes     map[string]scene.Node
	RootIDs   []string
	Selection selection.Snapshot
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Nodes:     scene.CloneMap(s.Nodes),
		RootIDs:   slices.Clone(s.RootIDs),
		Selection: s.Selection.Clone(),
	}
}

// Snapshot captures the current document state.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{
		Nodes:     scene.CloneMap(d.nodes),
		RootIDs:   slices.Clone(d.rootIDs),
		Selection: d.selection.Snapshot(),
	}
}

// restore replaces nodes, roots and selection with a copy of s, so the
// stored snapshot stays reusable.
func (d *Document) restore(s Snapshot) {
	d.batch(func() {
		// First source recorded wins the batch.
		d.changed(event.SourceHistory)
		c := s.clone()
		d.nodes = c.Nodes
		if d.nodes == nil {
			d.nodes = make(map[string]scene.Node)
		}
		d.rootIDs = c.RootIDs
		if g := d.selection.EnteredGroup(); g != "" && !d.exists(g) {
			d.selection.ExitAllGroups()
		}
		d.selection.RestoreFromSnapshot(c.Selection)
		if d.activePage != "" && !d.exists(d.activePage) {
			d.activePage = ""
			if len(d.rootIDs) > 0 {
				d.activePage = d.rootIDs[0]
			}
		}
		d.dirty = true
	})
}

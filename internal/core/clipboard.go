package core

import (
	"fmt"

	"github.com/bethropolis/tidecanvas/internal/core/clipboard"
	"github.com/bethropolis/tidecanvas/internal/core/command"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/scene"
)

// CopySelection stores deep copies of the selected nodes (with their
// subtrees) and the selection's center as the copy origin.
func (d *Document) CopySelection() error {
	roots := d.topmost(d.selection.Selected())
	if len(roots) == 0 {
		return ErrNothingSelected
	}
	content := clipboard.Content{Descendants: make(map[string]scene.Node)}
	for _, id := range roots {
		root, descendants := d.cloneSubtree(id)
		content.Roots = append(content.Roots, root)
		for _, n := range descendants {
			content.Descendants[n.ID()] = n
		}
	}
	if b, ok := d.unionBounds(roots); ok {
		content.Origin = b.Center()
	}
	d.clipboard.Set(content)
	logger.DebugTagf("document", "Copied %d node(s)", len(roots))
	return nil
}

// CutSelection copies the selection then deletes it as one undo step.
func (d *Document) CutSelection() error {
	if err := d.CopySelection(); err != nil {
		return err
	}
	del := d.NewDeleteCommand(d.selection.Selected())
	return d.ExecuteCommand(command.NewCompound(fmt.Sprintf("Cut %d node(s)", len(del.IDs)), del))
}

// Paste inserts fresh copies of the clipboard into the current scope,
// offset from the originals. Repeated pastes cascade. The pasted nodes
// become the selection; the whole paste is one undo step.
func (d *Document) Paste() error {
	content, ok := d.clipboard.Get()
	if !ok || len(content.Roots) == 0 {
		return ErrEmptyClipboard
	}
	offset := d.opts.PasteOffset.Scale(float64(d.clipboard.NextPaste()))
	parentID := d.ScopeParent()

	cmds := make([]command.Command, 0, len(content.Roots)+1)
	ids := make([]string, 0, len(content.Roots))
	for _, root := range content.Roots {
		descendants := collectDescendants(root, content.Descendants)
		newRoot, newDescendants := d.remap(root, descendants, offset)
		cmds = append(cmds, command.NewCreate(newRoot, newDescendants, parentID, -1, d.RestoreNode, d.DeleteNodes))
		ids = append(ids, newRoot.ID())
	}
	cmds = append(cmds, d.NewSelectionChangeCommand(ids))

	return d.ExecuteCommand(command.NewCompound(fmt.Sprintf("Paste %d node(s)", len(ids)), cmds...))
}

// collectDescendants walks root's children through pool in pre-order.
func collectDescendants(root scene.Node, pool map[string]scene.Node) []scene.Node {
	var out []scene.Node
	seen := map[string]bool{root.ID(): true}
	var walk func(n scene.Node)
	walk = func(n scene.Node) {
		for _, id := range n.Children() {
			child, ok := pool[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, child)
			walk(child)
		}
	}
	walk(root)
	return out
}

// DuplicateSelection duplicates the selected nodes in place.
func (d *Document) DuplicateSelection() error {
	ids := d.topmost(d.selection.Selected())
	if len(ids) == 0 {
		return ErrNothingSelected
	}
	return d.ExecuteCommand(d.NewDuplicateCommand(ids))
}

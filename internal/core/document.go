// internal/core/document.go
package core

import (
	"fmt"
	"slices"
	"sort"

	"github.com/bethropolis/tidecanvas/internal/core/clipboard"
	"github.com/bethropolis/tidecanvas/internal/core/command"
	"github.com/bethropolis/tidecanvas/internal/core/history"
	"github.com/bethropolis/tidecanvas/internal/core/selection"
	"github.com/bethropolis/tidecanvas/internal/core/view"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/scene"
)

// Document owns the scene graph and every piece of state that edits it.
// It is not safe for concurrent use; callers serialize access.
type Document struct {
	id         string
	name       string
	nodes      map[string]scene.Node
	rootIDs    []string
	activePage string
	activeTool Tool
	dirty      bool
	closed     bool

	// --- Child state ---
	selection *selection.Manager
	view      *view.State
	clipboard *clipboard.Manager
	history   *history.Stack[Snapshot]

	// gesture is the coalesced command of the current or last command group.
	gesture command.Command

	opts         Options
	eventManager *event.Manager
	changes      event.Notifier
	unsubscribe  []func()

	// Notification batching: nested mutations publish once.
	batchDepth       int
	pendingSource    event.Source
	pendingSelection bool
}

// NewDocument creates an empty document.
func NewDocument(opts Options) *Document {
	opts = opts.withDefaults()
	d := &Document{
		nodes:     make(map[string]scene.Node),
		selection: selection.NewManager(),
		view:      view.NewState(opts.MinZoom, opts.MaxZoom),
		clipboard: clipboard.NewManager(opts.SystemClipboard),
		history:   history.NewStack[Snapshot](opts.MaxHistory),
		opts:      opts,
	}
	d.subscribeChildren()
	return d
}

func (d *Document) subscribeChildren() {
	d.unsubscribe = []func(){
		d.selection.OnChange(func() {
			d.pendingSelection = true
			d.changed(event.SourceSelection)
		}),
		d.view.OnChange(func() { d.changed(event.SourceView) }),
		d.history.OnChange(func() {
			// restore already published this change.
			if d.history.IsRestoring() {
				return
			}
			d.changed(event.SourceHistory)
		}),
	}
}

// SetEventManager sets the bus that receives TypeDocumentChanged events.
func (d *Document) SetEventManager(mgr *event.Manager) {
	d.eventManager = mgr
}

// OnChange registers fn to run after any observable change.
func (d *Document) OnChange(fn func()) (unsubscribe func()) {
	return d.changes.Subscribe(fn)
}

// changed publishes a change now, or once at the end of the current batch.
func (d *Document) changed(src event.Source) {
	if d.batchDepth > 0 {
		if d.pendingSource == "" {
			d.pendingSource = src
		}
		return
	}
	d.publish(src)
}

func (d *Document) publish(src event.Source) {
	d.changes.Notify()
	if d.eventManager == nil {
		return
	}
	if d.pendingSelection {
		d.pendingSelection = false
		d.eventManager.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{IDs: d.selection.Selected()})
	}
	d.eventManager.Dispatch(event.TypeDocumentChanged, event.DocumentChangedData{Source: src})
}

// batch runs fn with notifications deferred, then publishes at most once.
func (d *Document) batch(fn func()) {
	d.batchDepth++
	defer func() {
		d.batchDepth--
		if d.batchDepth > 0 || d.pendingSource == "" {
			return
		}
		src := d.pendingSource
		d.pendingSource = ""
		d.publish(src)
	}()
	fn()
}

// mutated marks the document dirty and announces a node change.
func (d *Document) mutated() {
	d.dirty = true
	d.changed(event.SourceNodes)
}

// ExecuteCommand runs cmd between two snapshots and records the pair. Inside
// a command group the entry merges into the group's entry and mergeable
// commands are coalesced into GestureCommand.
func (d *Document) ExecuteCommand(cmd command.Command) (err error) {
	if d.closed {
		return ErrClosed
	}
	if d.history.IsRestoring() {
		return ErrRestoring
	}

	d.batch(func() {
		before := d.Snapshot()
		wasDirty := d.dirty
		if err = run(cmd); err != nil {
			logger.WarnTagf("command", "%q failed, rolling back: %v", cmd.Describe(), err)
			d.restore(before)
			d.dirty = wasDirty
			err = fmt.Errorf("%w: %s: %v", ErrCommandFailed, cmd.Describe(), err)
			return
		}
		after := d.Snapshot()

		group := d.history.ActiveGroup()
		d.trackGesture(group, cmd)
		d.history.Push(history.Entry[Snapshot]{
			Description: cmd.Describe(),
			Before:      before,
			After:       after,
			GroupID:     group,
		})
		d.dirty = true
		d.changed(event.SourceNodes)
		logger.DebugTagf("document", "Executed %q (group %q)", cmd.Describe(), group)
	})
	return err
}

// run executes cmd, turning a panic into an error.
func run(cmd command.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	cmd.Execute()
	return nil
}

func (d *Document) trackGesture(group string, cmd command.Command) {
	if group == "" {
		d.gesture = cmd
		return
	}
	switch {
	case d.gesture == nil:
		d.gesture = cmd
	case d.gesture.CanMergeWith(cmd):
		if merged := d.gesture.MergeWith(cmd); merged != nil {
			d.gesture = merged
			return
		}
		fallthrough
	default:
		if c, ok := d.gesture.(*command.Compound); ok && c.Description == d.history.ActiveGroupDescription() {
			c.Commands = append(c.Commands, cmd)
			return
		}
		d.gesture = command.NewCompound(d.history.ActiveGroupDescription(), d.gesture, cmd)
	}
}

// GestureCommand returns the command that represents the current or most
// recent command group (or the last executed command outside a group).
func (d *Document) GestureCommand() command.Command { return d.gesture }

// StartCommandGroup collapses subsequent ExecuteCommand calls into one
// history entry until EndCommandGroup.
func (d *Document) StartCommandGroup(description string) string {
	d.gesture = nil
	return d.history.StartGroup(description)
}

// EndCommandGroup closes the active command group.
func (d *Document) EndCommandGroup() {
	d.history.EndGroup()
}

// Undo restores the state before the current history entry.
func (d *Document) Undo() bool {
	if d.closed {
		return false
	}
	d.gesture = nil
	_, ok := d.history.Undo(d.restore)
	return ok
}

// Redo restores the state after the next history entry.
func (d *Document) Redo() bool {
	if d.closed {
		return false
	}
	d.gesture = nil
	_, ok := d.history.Redo(d.restore)
	return ok
}

// JumpTo restores the state after entry index; -1 rewinds to before the
// oldest entry. Returns false for an out-of-range index.
func (d *Document) JumpTo(index int) bool {
	if d.closed || index < -1 || index >= d.history.Len() {
		return false
	}
	d.gesture = nil
	d.history.JumpTo(index, d.restore)
	return true
}

func (d *Document) CanUndo() bool              { return d.history.CanUndo() }
func (d *Document) CanRedo() bool              { return d.history.CanRedo() }
func (d *Document) UndoDescriptions() []string { return d.history.UndoDescriptions() }
func (d *Document) RedoDescriptions() []string { return d.history.RedoDescriptions() }
func (d *Document) HistoryIndex() int          { return d.history.Index() }
func (d *Document) HistoryLen() int            { return d.history.Len() }

// HistoryDescription returns the description of entry i.
func (d *Document) HistoryDescription(i int) (string, bool) {
	e, ok := d.history.Entry(i)
	return e.Description, ok
}

// LoadDocument replaces all state wholesale. It is not undoable: selection,
// history, clipboard and view are reset and the first root becomes the
// active page. With no roots given, nodes without a parent are used.
func (d *Document) LoadDocument(nodes map[string]scene.Node, rootIDs []string, name, id string) {
	d.batch(func() {
		d.nodes = scene.CloneMap(nodes)
		if d.nodes == nil {
			d.nodes = make(map[string]scene.Node)
		}
		if rootIDs == nil {
			rootIDs = derivedRoots(d.nodes)
		}
		d.rootIDs = slices.Clone(rootIDs)
		d.name = name
		d.id = id
		d.activePage = ""
		if len(d.rootIDs) > 0 {
			d.activePage = d.rootIDs[0]
		}
		if d.closed {
			d.subscribeChildren()
			d.closed = false
		}
		d.gesture = nil
		d.selection.Reset()
		d.history.Clear()
		d.clipboard.Clear()
		d.view.Reset()
		d.dirty = false
		d.pendingSelection = false
		d.changed(event.SourceLoad)
	})
	logger.InfoTagf("document", "Loaded %q: %d nodes, %d roots", name, len(d.nodes), len(d.rootIDs))
}

func derivedRoots(nodes map[string]scene.Node) []string {
	var roots []string
	for id, n := range nodes {
		if n.ParentID() == "" {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// MarkSaved clears the dirty flag.
func (d *Document) MarkSaved() {
	if !d.dirty {
		return
	}
	d.dirty = false
	d.changed(event.SourceNodes)
}

func (d *Document) IsDirty() bool { return d.dirty }

// Close releases child state and detaches listeners. Further commands fail
// with ErrClosed until LoadDocument is called again.
func (d *Document) Close() {
	if d.closed {
		return
	}
	for _, unsub := range d.unsubscribe {
		unsub()
	}
	d.unsubscribe = nil
	d.nodes = make(map[string]scene.Node)
	d.rootIDs = nil
	d.history.Clear()
	d.clipboard.Clear()
	d.selection.Reset()
	d.gesture = nil
	d.closed = true
	logger.DebugTagf("document", "Closed %q", d.name)
}

func (d *Document) IsClosed() bool { return d.closed }

func (d *Document) ID() string   { return d.id }
func (d *Document) Name() string { return d.name }

// SetName renames the document.
func (d *Document) SetName(name string) {
	d.name = name
	d.mutated()
}

func (d *Document) ActivePage() string { return d.activePage }

// SetActivePage switches the page new content is pasted into.
func (d *Document) SetActivePage(id string) error {
	if !d.exists(id) {
		return fmt.Errorf("page '%s': %w", id, ErrNodeNotFound)
	}
	d.activePage = id
	d.selection.ExitAllGroups()
	return nil
}

func (d *Document) ActiveTool() Tool { return d.activeTool }

func (d *Document) SetActiveTool(t Tool) {
	if t == d.activeTool {
		return
	}
	d.activeTool = t
	d.changed(event.SourceTool)
}

func (d *Document) Selection() *selection.Manager { return d.selection }
func (d *Document) View() *view.State             { return d.view }
func (d *Document) Clipboard() *clipboard.Manager { return d.clipboard }
func (d *Document) Options() Options              { return d.opts }

// EndMarquee resolves the marquee rectangle to nodes in the current scope
// and closes it.
func (d *Document) EndMarquee(additive bool) {
	r, ok := d.selection.Marquee()
	if !ok {
		return
	}
	d.selection.EndMarquee(d.NodesInRect(r), additive)
}

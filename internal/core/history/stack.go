package history

import (
	"strconv"
	"time"

	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/logger"
)

const DefaultMaxHistory = 50

// Stack holds entries and a current index. Index -1 means nothing has been
// applied. Stack is not safe for concurrent use.
type Stack[S any] struct {
	entries     []Entry[S]
	index       int
	maxHistory  int
	activeGroup string
	groupName   string
	groupSeq    uint64
	restoring   bool
	changes     event.Notifier
}

// NewStack creates a stack bounded to maxHistory entries.
// Non-positive values select DefaultMaxHistory.
func NewStack[S any](maxHistory int) *Stack[S] {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Stack[S]{
		entries:    make([]Entry[S], 0, maxHistory),
		index:      -1,
		maxHistory: maxHistory,
	}
}

// OnChange registers fn to run after every change to the entries or index.
func (s *Stack[S]) OnChange(fn func()) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Push records an entry and discards the redo branch. While a group is
// active, an entry tagged with that group replaces the After of the current
// entry when it carries the same tag. Otherwise the entry is appended and the
// oldest entries evicted past the bound. Returns false, recording nothing,
// while a restore is in progress.
func (s *Stack[S]) Push(entry Entry[S]) bool {
	if s.restoring {
		logger.WarnTagf("history", "Push %q ignored during restore", entry.Description)
		return false
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if s.index < len(s.entries)-1 {
		clear(s.entries[s.index+1:])
		s.entries = s.entries[:s.index+1]
	}

	if s.activeGroup != "" && entry.GroupID == s.activeGroup &&
		s.index >= 0 && s.entries[s.index].GroupID == s.activeGroup {
		s.entries[s.index].After = entry.After
		logger.DebugTagf("history", "Merged into %q (group %s)", s.entries[s.index].Description, s.activeGroup)
		s.changes.Notify()
		return true
	}

	s.entries = append(s.entries, entry)
	s.index = len(s.entries) - 1

	if over := len(s.entries) - s.maxHistory; over > 0 {
		s.evict(over)
	}

	logger.DebugTagf("history", "Pushed %q. Index: %d, Count: %d", entry.Description, s.index, len(s.entries))
	s.changes.Notify()
	return true
}

// evict drops n entries from the oldest end, keeping the index on the same entry.
func (s *Stack[S]) evict(n int) {
	if n > len(s.entries) {
		n = len(s.entries)
	}
	kept := make([]Entry[S], len(s.entries)-n, s.maxHistory)
	copy(kept, s.entries[n:])
	s.entries = kept
	s.index -= n
	if s.index < -1 {
		s.index = -1
	}
}

// Undo steps back one entry and returns its Before state. apply, when not
// nil, runs with IsRestoring reporting true so listeners cannot push.
func (s *Stack[S]) Undo(apply func(S)) (S, bool) {
	var zero S
	if !s.CanUndo() {
		return zero, false
	}
	state := s.entries[s.index].Before
	s.index--
	logger.DebugTagf("history", "Undo %q. Index: %d", s.entries[s.index+1].Description, s.index)
	s.restore(state, apply)
	return state, true
}

// Redo steps forward one entry and returns its After state.
func (s *Stack[S]) Redo(apply func(S)) (S, bool) {
	var zero S
	if !s.CanRedo() {
		return zero, false
	}
	s.index++
	state := s.entries[s.index].After
	logger.DebugTagf("history", "Redo %q. Index: %d", s.entries[s.index].Description, s.index)
	s.restore(state, apply)
	return state, true
}

// JumpTo moves the index to any position in [-1, Len()-1] and returns the
// After state at that position. -1 moves to the start and returns no state,
// though apply still receives the Baseline so callers can rewind. An
// out-of-range index changes nothing.
func (s *Stack[S]) JumpTo(index int, apply func(S)) (S, bool) {
	var zero S
	if index < -1 || index >= len(s.entries) {
		logger.DebugTagf("history", "JumpTo(%d) out of range [-1, %d]", index, len(s.entries)-1)
		return zero, false
	}
	s.index = index
	if index == -1 {
		if base, ok := s.Baseline(); ok {
			s.restore(base, apply)
		} else {
			s.restore(zero, nil)
		}
		return zero, false
	}
	state := s.entries[index].After
	s.restore(state, apply)
	return state, true
}

// restore applies state and notifies listeners, both while IsRestoring
// reports true.
func (s *Stack[S]) restore(state S, apply func(S)) {
	s.restoring = true
	defer func() { s.restoring = false }()
	if apply != nil {
		apply(state)
	}
	s.changes.Notify()
}

// IsRestoring reports whether an Undo, Redo or JumpTo is applying state.
func (s *Stack[S]) IsRestoring() bool { return s.restoring }

// StartGroup activates a fresh group and returns its id.
func (s *Stack[S]) StartGroup(description string) string {
	s.groupSeq++
	s.activeGroup = strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(s.groupSeq, 10)
	s.groupName = description
	logger.DebugTagf("history", "Group %s started: %q", s.activeGroup, description)
	return s.activeGroup
}

// EndGroup clears the active group.
func (s *Stack[S]) EndGroup() {
	if s.activeGroup == "" {
		return
	}
	logger.DebugTagf("history", "Group %s ended", s.activeGroup)
	s.activeGroup = ""
	s.groupName = ""
}

// ActiveGroup returns the id of the active group, or "".
func (s *Stack[S]) ActiveGroup() string { return s.activeGroup }

// ActiveGroupDescription returns the description given to StartGroup.
func (s *Stack[S]) ActiveGroupDescription() string { return s.groupName }

// CanUndo returns true if there are entries that can be undone.
func (s *Stack[S]) CanUndo() bool { return s.index >= 0 }

// CanRedo returns true if there are entries that can be redone.
func (s *Stack[S]) CanRedo() bool { return s.index < len(s.entries)-1 }

func (s *Stack[S]) Len() int   { return len(s.entries) }
func (s *Stack[S]) Index() int { return s.index }

// MaxHistory returns the current bound.
func (s *Stack[S]) MaxHistory() int { return s.maxHistory }

// Entry returns the entry at i.
func (s *Stack[S]) Entry(i int) (Entry[S], bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry[S]{}, false
	}
	return s.entries[i], true
}

// Baseline returns the Before state of the oldest retained entry, the state
// that index -1 stands for.
func (s *Stack[S]) Baseline() (S, bool) {
	var zero S
	if len(s.entries) == 0 {
		return zero, false
	}
	return s.entries[0].Before, true
}

// UndoDescriptions lists undoable entries, most recent first.
func (s *Stack[S]) UndoDescriptions() []string {
	out := make([]string, 0, s.index+1)
	for i := s.index; i >= 0; i-- {
		out = append(out, s.entries[i].Description)
	}
	return out
}

// RedoDescriptions lists redoable entries, next first.
func (s *Stack[S]) RedoDescriptions() []string {
	out := make([]string, 0, len(s.entries)-s.index-1)
	for i := s.index + 1; i < len(s.entries); i++ {
		out = append(out, s.entries[i].Description)
	}
	return out
}

// Clear resets the stack. Call this on document load.
func (s *Stack[S]) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.index = -1
	s.activeGroup = ""
	s.groupName = ""
	logger.DebugTagf("history", "Cleared")
	s.changes.Notify()
}

// SetMaxHistory changes the bound, evicting old entries if needed.
func (s *Stack[S]) SetMaxHistory(n int) {
	if n <= 0 {
		n = DefaultMaxHistory
	}
	s.maxHistory = n
	if over := len(s.entries) - n; over > 0 {
		s.evict(over)
		s.changes.Notify()
	}
}

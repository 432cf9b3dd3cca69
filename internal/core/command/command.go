// Package command defines reversible edits. Commands carry the data needed
// to invert themselves and apply effects through injected callbacks; they
// never own document state.
package command

import (
	"fmt"
	"slices"
)

// Command is a reversible edit. Execute then Undo must leave every field the
// command touched as it was before Execute.
type Command interface {
	Describe() string
	Execute()
	Undo()
	// CanMergeWith reports whether next can be folded into this command.
	CanMergeWith(next Command) bool
	// MergeWith returns the combined command, or nil if not mergeable.
	MergeWith(next Command) Command
}

// NoMerge supplies the default, non-merging behaviour.
type NoMerge struct{}

func (NoMerge) CanMergeWith(Command) bool { return false }
func (NoMerge) MergeWith(Command) Command { return nil }

// Compound runs sub-commands in order and undoes them in reverse.
type Compound struct {
	NoMerge
	Description string
	Commands    []Command
}

func NewCompound(description string, cmds ...Command) *Compound {
	return &Compound{Description: description, Commands: cmds}
}

func (c *Compound) Describe() string { return c.Description }

func (c *Compound) Execute() {
	for _, cmd := range c.Commands {
		cmd.Execute()
	}
}

func (c *Compound) Undo() {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		c.Commands[i].Undo()
	}
}

func plural(verb string, n int) string {
	if n == 1 {
		return verb + " 1 node"
	}
	return fmt.Sprintf("%s %d nodes", verb, n)
}

// sameIDSet compares ids ignoring order.
func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

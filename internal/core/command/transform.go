package command

import (
	"github.com/bethropolis/tidecanvas/internal/types"
)

// Move translates nodes by Delta.
type Move struct {
	IDs   []string
	Delta types.Point
	// Originals records positions before the first move. Undo negates Delta
	// instead of reading these back.
	Originals map[string]types.Point
	Apply     func(ids []string, delta types.Point)
}

func NewMove(ids []string, delta types.Point, originals map[string]types.Point, apply func([]string, types.Point)) *Move {
	return &Move{IDs: ids, Delta: delta, Originals: originals, Apply: apply}
}

func (c *Move) Describe() string { return plural("Move", len(c.IDs)) }

func (c *Move) Execute() { c.Apply(c.IDs, c.Delta) }

func (c *Move) Undo() { c.Apply(c.IDs, c.Delta.Neg()) }

// CanMergeWith accepts another Move over exactly the same node set.
func (c *Move) CanMergeWith(next Command) bool {
	o, ok := next.(*Move)
	return ok && sameIDSet(c.IDs, o.IDs)
}

// MergeWith sums the deltas and keeps the first move's originals.
func (c *Move) MergeWith(next Command) Command {
	if !c.CanMergeWith(next) {
		return nil
	}
	o := next.(*Move)
	return &Move{IDs: c.IDs, Delta: c.Delta.Add(o.Delta), Originals: c.Originals, Apply: c.Apply}
}

// Resize applies new bounds per node.
type Resize struct {
	NoMerge
	IDs       []string
	NewBounds map[string]types.Rect
	OldBounds map[string]types.Rect
	Apply     func(id string, bounds types.Rect)
}

func NewResize(newBounds, oldBounds map[string]types.Rect, ids []string, apply func(string, types.Rect)) *Resize {
	return &Resize{IDs: ids, NewBounds: newBounds, OldBounds: oldBounds, Apply: apply}
}

func (c *Resize) Describe() string { return plural("Resize", len(c.IDs)) }

func (c *Resize) Execute() { c.each(c.NewBounds) }

func (c *Resize) Undo() { c.each(c.OldBounds) }

func (c *Resize) each(bounds map[string]types.Rect) {
	for _, id := range c.IDs {
		if r, ok := bounds[id]; ok {
			c.Apply(id, r)
		}
	}
}

// Rotate sets an absolute rotation on one node. When the node had no
// rotation, Unset is set and Undo calls it instead of writing Original.
type Rotate struct {
	ID       string
	Angle    float64
	Original float64
	Apply    func(id string, angle float64)
	Unset    func(id string)
}

func NewRotate(id string, angle, original float64, apply func(string, float64)) *Rotate {
	return &Rotate{ID: id, Angle: angle, Original: original, Apply: apply}
}

func (c *Rotate) Describe() string { return "Rotate" }

func (c *Rotate) Execute() { c.Apply(c.ID, c.Angle) }

func (c *Rotate) Undo() {
	if c.Unset != nil {
		c.Unset(c.ID)
		return
	}
	c.Apply(c.ID, c.Original)
}

func (c *Rotate) CanMergeWith(next Command) bool {
	o, ok := next.(*Rotate)
	return ok && o.ID == c.ID
}

// MergeWith keeps the latest angle and the first original.
func (c *Rotate) MergeWith(next Command) Command {
	if !c.CanMergeWith(next) {
		return nil
	}
	merged := *c
	merged.Angle = next.(*Rotate).Angle
	return &merged
}

// UpdateProperty sets one property. A nil value removes the key, which is
// how Undo restores a property that did not exist.
type UpdateProperty struct {
	ID       string
	Key      string
	Value    any
	Original any
	Apply    func(id, key string, value any)
}

func NewUpdateProperty(id, key string, value, original any, apply func(string, string, any)) *UpdateProperty {
	return &UpdateProperty{ID: id, Key: key, Value: value, Original: original, Apply: apply}
}

func (c *UpdateProperty) Describe() string { return "Change " + c.Key }

func (c *UpdateProperty) Execute() { c.Apply(c.ID, c.Key, c.Value) }

func (c *UpdateProperty) Undo() { c.Apply(c.ID, c.Key, c.Original) }

func (c *UpdateProperty) CanMergeWith(next Command) bool {
	o, ok := next.(*UpdateProperty)
	return ok && o.ID == c.ID && o.Key == c.Key
}

func (c *UpdateProperty) MergeWith(next Command) Command {
	if !c.CanMergeWith(next) {
		return nil
	}
	return &UpdateProperty{ID: c.ID, Key: c.Key, Value: next.(*UpdateProperty).Value, Original: c.Original, Apply: c.Apply}
}

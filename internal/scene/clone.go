package scene

import (
	"github.com/brunoga/deep"

	"github.com/bethropolis/tidecanvas/internal/logger"
)

// Clone returns a deep copy of n. Nested maps and slices are duplicated so the
// copy never aliases the original.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	c, err := deep.Copy(n)
	if err != nil {
		logger.WarnTagf("scene", "deep copy of node %q failed, using fallback: %v", n.ID(), err)
		return copyValue(map[string]any(n)).(map[string]any)
	}
	return c
}

// CloneMap deep-copies a whole id -> node mapping.
func CloneMap(nodes map[string]Node) map[string]Node {
	out := make(map[string]Node, len(nodes))
	if len(nodes) == 0 {
		return out
	}
	c, err := deep.Copy(nodes)
	if err != nil {
		logger.WarnTagf("scene", "deep copy of %d nodes failed, using fallback: %v", len(nodes), err)
		for id, n := range nodes {
			out[id] = copyValue(map[string]any(n)).(map[string]any)
		}
		return out
	}
	return c
}

// copyValue handles the value shapes decoders produce. It only runs when the
// reflective copy refuses a value (for example one holding a func).
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = copyValue(val)
		}
		return m
	case Node:
		return Node(copyValue(map[string]any(t)).(map[string]any))
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = copyValue(val)
		}
		return s
	case []string:
		s := make([]string, len(t))
		copy(s, t)
		return s
	case []float64:
		s := make([]float64, len(t))
		copy(s, t)
		return s
	}
	return v
}

// CloneValue deep-copies a single property value.
func CloneValue(v any) any {
	c, err := deep.Copy(v)
	if err != nil {
		return copyValue(v)
	}
	return c
}

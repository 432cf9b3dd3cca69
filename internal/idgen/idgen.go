// Package idgen produces fresh node identifiers.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a new unique identifier on every call.
type Generator func() string

// UUIDv7 returns time-ordered UUIDs. Falls back to a random v4 if the
// v7 source fails.
func UUIDv7() Generator {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}

// Prefixed wraps gen so every id starts with prefix and a colon.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + ":" + gen()
	}
}

// Sequential returns prefix-1, prefix-2, ... Deterministic, for tests and
// sample scenes.
func Sequential(prefix string) Generator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

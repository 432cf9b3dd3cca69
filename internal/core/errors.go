package core

import "errors"

var (
	// ErrCommandFailed wraps a command that panicked during Execute. The
	// document is rolled back and nothing is recorded.
	ErrCommandFailed   = errors.New("command failed")
	ErrRestoring       = errors.New("history restore in progress")
	ErrEmptyClipboard  = errors.New("clipboard is empty")
	ErrNothingSelected = errors.New("nothing selected")
	ErrNodeNotFound    = errors.New("node not found")
	ErrNotAGroup       = errors.New("node has no children to ungroup")
	ErrClosed          = errors.New("document is closed")
)

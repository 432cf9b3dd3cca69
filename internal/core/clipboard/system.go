package clipboard

import (
	atotto "github.com/atotto/clipboard"
)

// SystemClipboard talks to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return atotto.WriteAll(text) }

func (SystemClipboard) ReadAll() (string, error) { return atotto.ReadAll() }

// Available reports whether an OS clipboard utility was found.
func Available() bool { return !atotto.Unsupported }

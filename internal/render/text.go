package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated labels.
const Ellipsis = "…"

// Truncate shortens s to at most width cells, ending in Ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// DrawText writes s at (x, y) one grapheme cluster at a time and returns the
// number of cells used. Text wider than maxWidth is truncated.
func DrawText(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	s = Truncate(s, maxWidth)
	gr := uniseg.NewGraphemes(s)
	used := 0
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if used+w > maxWidth {
			break
		}
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		for fill := 1; fill < w; fill++ {
			screen.SetContent(x+used+fill, y, ' ', nil, style)
		}
		used += w
	}
	return used
}

// skipCells drops leading grapheme clusters covering n cells.
func skipCells(s string, n int) string {
	gr := uniseg.NewGraphemes(s)
	skipped := 0
	for skipped < n && gr.Next() {
		skipped += gr.Width()
	}
	if skipped < n {
		return ""
	}
	_, to := gr.Positions()
	return s[to:]
}

// Package render draws the document onto a tcell screen. One canvas unit is
// one terminal cell at zoom 1.
package render

import (
	"math"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/logger"
	"github.com/bethropolis/tidecanvas/internal/scene"
	"github.com/bethropolis/tidecanvas/internal/theme"
	"github.com/bethropolis/tidecanvas/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Area is the screen region the canvas occupies.
type Area struct {
	X, Y, Width, Height int
}

func (a Area) contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// cellRect is a node's footprint in screen cells.
type cellRect struct {
	x0, y0, x1, y1 int // inclusive
}

// Canvas draws the active page (or every root when there is none), the
// selection and the marquee.
func Canvas(screen tcell.Screen, doc *core.Document, th *theme.Theme, area Area) {
	if th == nil {
		th = &theme.CanvasDark
	}
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	defaultStyle := th.GetStyle(theme.StyleDefault)
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	c := canvasPainter{screen: screen, doc: doc, theme: th, area: area}
	var roots []string
	if page := doc.ActivePage(); page != "" {
		roots = doc.Children(page)
	} else {
		roots = doc.RootIDs()
	}
	for _, id := range roots {
		c.drawSubtree(id, 0)
	}

	// Selection outlines go on top so overlapping siblings cannot hide them.
	for _, id := range doc.Selection().Selected() {
		if r, ok := c.nodeCells(id); ok {
			c.box(r, th.GetStyle(theme.StyleSelection), true)
		}
	}
	if entered := doc.Selection().EnteredGroup(); entered != "" {
		if r, ok := c.nodeCells(entered); ok {
			c.corners(r, th.GetStyle(theme.StyleEnteredGroup))
		}
	}
	if m, ok := doc.Selection().Marquee(); ok {
		c.box(c.toCells(m), th.GetStyle(theme.StyleMarquee), false)
	}
	logger.DebugTagf("draw", "canvas drawn: %d roots, zoom %.2f", len(roots), doc.View().Zoom())
}

type canvasPainter struct {
	screen tcell.Screen
	doc    *core.Document
	theme  *theme.Theme
	area   Area
}

const maxDepth = 64

func (c *canvasPainter) drawSubtree(id string, depth int) {
	if depth > maxDepth {
		return
	}
	n, ok := c.doc.Node(id)
	if !ok || !n.Visible() {
		return
	}
	if r, ok := c.nodeCells(id); ok {
		c.drawNode(n, r)
	}
	for _, child := range n.Children() {
		c.drawSubtree(child, depth+1)
	}
}

func (c *canvasPainter) drawNode(n scene.Node, r cellRect) {
	sel := c.doc.Selection()
	style := c.theme.GetStyle(theme.StyleNode)
	switch {
	case n.Type() == scene.TypeText:
		style = c.theme.GetStyle(theme.StyleText)
	case n.Type().IsContainer():
		style = c.theme.GetStyle(theme.StyleContainer)
	}
	if sel.Hovered() == n.ID() && !sel.IsSelected(n.ID()) {
		style = c.theme.GetStyle(theme.StyleHover)
	}

	if n.Type() == scene.TypeText {
		text := n.Characters()
		if text == "" {
			text = n.Name()
		}
		c.text(r.x0, r.y0, r.x1-r.x0+1, text, style)
		return
	}

	c.box(r, style, n.Type() != scene.TypeEllipse)
	label := n.Name()
	if label == "" {
		label = string(n.Type())
	}
	if r.x1-r.x0 >= 3 {
		c.text(r.x0+1, r.y0, r.x1-r.x0-1, label, c.theme.GetStyle(theme.StyleNodeLabel))
	}
}

func (c *canvasPainter) nodeCells(id string) (cellRect, bool) {
	b, ok := c.doc.GetNodeBounds(id)
	if !ok {
		return cellRect{}, false
	}
	return c.toCells(b), true
}

// toCells maps a canvas rectangle to screen cells. Degenerate rectangles
// still cover one cell.
func (c *canvasPainter) toCells(r types.Rect) cellRect {
	r = r.Normalize()
	v := c.doc.View()
	tl := v.CanvasToScreen(r.Min())
	br := v.CanvasToScreen(r.Max())
	out := cellRect{
		x0: c.area.X + int(math.Floor(tl.X)),
		y0: c.area.Y + int(math.Floor(tl.Y)),
		x1: c.area.X + int(math.Ceil(br.X)) - 1,
		y1: c.area.Y + int(math.Ceil(br.Y)) - 1,
	}
	if out.x1 < out.x0 {
		out.x1 = out.x0
	}
	if out.y1 < out.y0 {
		out.y1 = out.y0
	}
	return out
}

func (c *canvasPainter) set(x, y int, r rune, style tcell.Style) {
	if c.area.contains(x, y) {
		c.screen.SetContent(x, y, r, nil, style)
	}
}

// box outlines r. Square corners draw a rectangle, otherwise rounded.
func (c *canvasPainter) box(r cellRect, style tcell.Style, square bool) {
	if r.x0 == r.x1 && r.y0 == r.y1 {
		c.set(r.x0, r.y0, '·', style)
		return
	}
	for x := r.x0 + 1; x < r.x1; x++ {
		c.set(x, r.y0, tcell.RuneHLine, style)
		c.set(x, r.y1, tcell.RuneHLine, style)
	}
	for y := r.y0 + 1; y < r.y1; y++ {
		c.set(r.x0, y, tcell.RuneVLine, style)
		c.set(r.x1, y, tcell.RuneVLine, style)
	}
	ul, ur, ll, lr := tcell.RuneULCorner, tcell.RuneURCorner, tcell.RuneLLCorner, tcell.RuneLRCorner
	if !square {
		ul, ur, ll, lr = '╭', '╮', '╰', '╯'
	}
	c.set(r.x0, r.y0, ul, style)
	c.set(r.x1, r.y0, ur, style)
	c.set(r.x0, r.y1, ll, style)
	c.set(r.x1, r.y1, lr, style)
}

// corners marks only the four corners of r.
func (c *canvasPainter) corners(r cellRect, style tcell.Style) {
	c.set(r.x0, r.y0, '┏', style)
	c.set(r.x1, r.y0, '┓', style)
	c.set(r.x0, r.y1, '┗', style)
	c.set(r.x1, r.y1, '┛', style)
}

func (c *canvasPainter) text(x, y, maxWidth int, s string, style tcell.Style) {
	if y < c.area.Y || y >= c.area.Y+c.area.Height {
		return
	}
	// Clip to the canvas area on both sides.
	if x < c.area.X {
		maxWidth -= c.area.X - x
		s = skipCells(s, c.area.X-x)
		x = c.area.X
	}
	if right := c.area.X + c.area.Width; x+maxWidth > right {
		maxWidth = right - x
	}
	DrawText(c.screen, x, y, maxWidth, s, style)
}

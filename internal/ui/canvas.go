package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nightsky/internal/field"
)

// A terminal cell covers cellW x cellH field units, roughly the pixel size
// of a monospace cell, so the simulation keeps its tuning in a terminal.
const (
	cellW = 8.0
	cellH = 16.0

	// inkFloor is the ink level below which a glyph has faded out.
	inkFloor = 0.06
)

// cell is one terminal position of the canvas.
type cell struct {
	glyph rune
	fg    colorful.Color
	bg    colorful.Color
	ink   float64 // opacity of the glyph, fades with every background wash
}

// Canvas is a field.Surface made of terminal cells. Colours blend with
// go-colorful so translucent washes leave trails the way a pixel canvas does.
type Canvas struct {
	cols, rows int
	cells      []cell
}

// NewCanvas creates a canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid. Contents are cleared.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
	for i := range c.cells {
		c.cells[i].glyph = ' '
	}
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Size implements field.Surface, in field units.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols) * cellW, float64(c.rows) * cellH
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// toCell maps field units to a cell position.
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellW)), int(math.Floor(y / cellH))
}

func toColorful(c field.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FillRect implements field.Surface. It washes the background of every
// covered cell and fades the glyphs on it.
func (c *Canvas) FillRect(x, y, w, h float64, col field.RGBA) {
	x0, y0 := toCell(x, y)
	x1, y1 := toCell(x+w-1e-9, y+h-1e-9)
	paint := toColorful(col.Opaque())
	for row := max(y0, 0); row <= min(y1, c.rows-1); row++ {
		for cl := max(x0, 0); cl <= min(x1, c.cols-1); cl++ {
			ce := c.at(cl, row)
			ce.bg = ce.bg.BlendRgb(paint, col.A).Clamped()
			ce.ink *= 1 - col.A
			if ce.ink < inkFloor {
				ce.glyph = ' '
				ce.ink = 0
			}
		}
	}
}

// starGlyph picks a glyph by drawn radius.
func starGlyph(radius float64) rune {
	switch {
	case radius >= 2:
		return '✦'
	case radius >= 1.3:
		return '•'
	default:
		return '·'
	}
}

// FillCircle implements field.Surface. A circle is much smaller than a cell,
// so it becomes a single glyph whose weight follows the radius.
func (c *Canvas) FillCircle(x, y, radius float64, col field.RGBA) {
	ce := c.at(toCell(x, y))
	if ce == nil || col.A < ce.ink {
		return
	}
	ce.glyph = starGlyph(radius)
	ce.fg = ce.bg.BlendRgb(toColorful(col.Opaque()), col.A).Clamped()
	ce.ink = col.A
}

// lineGlyph picks a box-drawing stroke for the direction (dx, dy).
func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady < 0.4*adx:
		return '─'
	case adx < 0.4*ady:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// StrokeLine implements field.Surface. The line is stepped cell by cell and
// only overwrites cells with fainter ink, so stars stay on top of links.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col field.RGBA) {
	glyph := lineGlyph(x2-x1, y2-y1)
	paint := toColorful(col.Opaque())

	cx1, cy1 := toCell(x1, y1)
	cx2, cy2 := toCell(x2, y2)
	steps := max(abs(cx2-cx1), abs(cy2-cy1))
	// endpoints belong to the stars
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		ce := c.at(toCell(x1+(x2-x1)*t, y1+(y2-y1)*t))
		if ce == nil || ce.ink >= col.A {
			continue
		}
		ce.glyph = glyph
		ce.fg = ce.bg.BlendRgb(paint, col.A).Clamped()
		ce.ink = col.A
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Frame copies the canvas into a grid overlays can be stamped on.
func (c *Canvas) Frame() *Frame {
	f := &Frame{cols: c.cols, rows: c.rows, cells: make([]cell, len(c.cells))}
	copy(f.cells, c.cells)
	return f
}

// Frame is one composed screen: canvas plus overlays.
type Frame struct {
	cols, rows int
	cells      []cell
}

func (f *Frame) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= f.cols || row >= f.rows {
		return nil
	}
	return &f.cells[row*f.cols+col]
}

// Set writes a glyph with explicit colours.
func (f *Frame) Set(col, row int, glyph rune, fg, bg colorful.Color) {
	if ce := f.at(col, row); ce != nil {
		ce.glyph, ce.fg, ce.bg, ce.ink = glyph, fg, bg, 1
	}
}

// SetGlyph writes a glyph keeping the cell background.
func (f *Frame) SetGlyph(col, row int, glyph rune, fg colorful.Color) {
	if ce := f.at(col, row); ce != nil {
		ce.glyph, ce.fg, ce.ink = glyph, fg, 1
	}
}

// Tint blends the cell background toward c.
func (f *Frame) Tint(col, row int, c colorful.Color, amount float64) {
	if ce := f.at(col, row); ce != nil {
		ce.bg = ce.bg.BlendRgb(c, amount).Clamped()
	}
}

// Text writes s starting at (col, row), clipped to the frame.
func (f *Frame) Text(col, row int, s string, fg colorful.Color) {
	for i, r := range []rune(s) {
		f.SetGlyph(col+i, row, r, fg)
	}
}

// Glyph returns the rune at (col, row), or 0 outside the frame.
func (f *Frame) Glyph(col, row int) rune {
	if ce := f.at(col, row); ce != nil {
		return ce.glyph
	}
	return 0
}

// String renders the frame with truecolor styles, merging runs of cells
// that share colours.
func (f *Frame) String() string {
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < f.rows; row++ {
		var style lipgloss.Style
		var curFg, curBg string
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style.Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < f.cols; col++ {
			ce := &f.cells[row*f.cols+col]
			fg, bg := ce.fg.Hex(), ce.bg.Hex()
			if col == 0 || fg != curFg || bg != curBg {
				flush()
				curFg, curBg = fg, bg
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(fg)).
					Background(lipgloss.Color(bg))
			}
			run.WriteRune(ce.glyph)
		}
		flush()
		if row < f.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Plain renders the frame without styles, for tests and logs.
func (f *Frame) Plain() string {
	var b strings.Builder
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			b.WriteRune(f.cells[row*f.cols+col].glyph)
		}
		if row < f.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

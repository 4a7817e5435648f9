package ui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nightsky/internal/astro"
	"github.com/litescript/ls-nightsky/internal/widget"
)

const (
	// moonCols x moonRows cells hold the disk. Each cell shows two vertical
	// samples through a half block, which keeps the disk round.
	moonCols = 12
	moonRows = 6

	halfBlock = '▀'
)

var (
	moonLit  = colorful.Color{R: 0.96, G: 0.95, B: 0.81}
	moonDark = colorful.Color{R: 0.12, G: 0.11, B: 0.29}
	dimText  = colorful.Color{R: 0.42, G: 0.40, B: 0.58}
	brightTx = colorful.Color{R: 0.85, G: 0.83, B: 0.95}
)

// rect is a cell rectangle.
type rect struct {
	col, row, w, h int
}

func (r rect) contains(col, row int) bool {
	return col >= r.col && col < r.col+r.w && row >= r.row && row < r.row+r.h
}

// moonBox places the disk at the top right, below the nav bar.
func moonBox(cols int) rect {
	return rect{col: cols - moonCols - 2, row: 2, w: moonCols, h: moonRows}
}

// sampleMoon returns the colour of the silhouette at the unit square
// position (u, v), and whether it falls on the disk at all.
func sampleMoon(sil astro.Silhouette, u, v float64) (colorful.Color, bool) {
	x, y := u*astro.DiskSize, v*astro.DiskSize
	dx, dy := x-astro.DiskRadius, y-astro.DiskRadius
	if dx*dx+dy*dy > astro.DiskRadius*astro.DiskRadius {
		return colorful.Color{}, false
	}
	if sil.Contains(x, y) {
		return moonLit, true
	}
	return moonDark, true
}

// stampMoon draws the widget into the frame with its caption underneath.
// The tooltip replaces the caption while hovered.
func stampMoon(f *Frame, w widget.Widget, hovered bool) rect {
	box := moonBox(f.cols)
	if box.col < 0 {
		return rect{}
	}
	for r := 0; r < box.h; r++ {
		for c := 0; c < box.w; c++ {
			u := (float64(c) + 0.5) / float64(box.w)
			top := (float64(2*r) + 0.5) / float64(2*box.h)
			bot := (float64(2*r) + 1.5) / float64(2*box.h)

			ce := f.at(box.col+c, box.row+r)
			if ce == nil {
				continue
			}
			fg, onTop := sampleMoon(w.Silhouette, u, top)
			bg, onBot := sampleMoon(w.Silhouette, u, bot)
			if !onTop && !onBot {
				continue
			}
			if !onTop {
				fg = ce.bg
			}
			if !onBot {
				bg = ce.bg
			}
			f.Set(box.col+c, box.row+r, halfBlock, fg, bg)
		}
	}

	caption := w.Moon.Stage.String()
	sub := w.NextFullCaption()
	if hovered {
		caption = w.Tooltip()
		sub = ""
	}
	captionRow := box.row + box.h
	f.Text(centerCol(box, caption, f.cols), captionRow, caption, brightTx)
	if sub != "" {
		f.Text(centerCol(box, sub, f.cols), captionRow+1, sub, dimText)
	}
	return box
}

// centerCol centres s under box, shifted left if it would run off a frame
// cols wide.
func centerCol(box rect, s string, cols int) int {
	n := len([]rune(s))
	col := box.col + (box.w-n)/2
	if col+n > cols {
		col = cols - n
	}
	return max(col, 0)
}

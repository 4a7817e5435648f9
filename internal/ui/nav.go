package ui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-nightsky/internal/pointer"
)

// navItem is one entry of the top bar.
type navItem struct {
	label string
	route string // non-empty for links
	role  pointer.Role
	span  rect
}

// navBar lays out the top bar: a title, route links and the hemisphere
// toggle button.
func navBar(cols int) []navItem {
	items := []navItem{
		{label: "☾ ls-nightsky", role: pointer.RoleText},
		{label: "Home", route: "/", role: pointer.RoleLink},
		{label: "Journal", route: "/journal", role: pointer.RoleLink},
		{label: "Admin", route: "/admin", role: pointer.RoleLink},
		{label: "[hemisphere]", role: pointer.RoleButton},
	}
	col := 2
	for i := range items {
		n := len([]rune(items[i].label))
		items[i].span = rect{col: col, row: 0, w: n, h: 1}
		col += n + 3
	}
	// the button sits on the right edge
	last := &items[len(items)-1]
	if right := cols - last.span.w - 2; right > last.span.col {
		last.span.col = right
	}
	return items
}

// hitTest classifies the cell under the pointer. Nav items sit inside the
// bar container; the moon is an image inside its own container.
func hitTest(items []navItem, moon rect, col, row int) (pointer.HitTarget, *navItem) {
	for i := range items {
		if items[i].span.contains(col, row) {
			return pointer.HitTarget{
				Role:      items[i].role,
				Ancestors: []pointer.Role{pointer.RoleContainer},
			}, &items[i]
		}
	}
	if moon.w > 0 && moon.contains(col, row) {
		return pointer.HitTarget{Role: pointer.RoleImage, Ancestors: []pointer.Role{pointer.RoleContainer}}, nil
	}
	if row == 0 {
		return pointer.HitTarget{Role: pointer.RoleContainer}, nil
	}
	return pointer.HitTarget{}, nil
}

// stampNav draws the bar, highlighting the active route and the hovered item.
func stampNav(f *Frame, items []navItem, route string, hovered *navItem, accent colorful.Color) {
	for col := 0; col < f.cols; col++ {
		f.Tint(col, 0, moonDark, 0.6)
	}
	for i := range items {
		it := &items[i]
		fg := dimText
		switch {
		case hovered != nil && hovered.span == it.span:
			fg = accent
		case it.route != "" && it.route == route:
			fg = brightTx
		case it.role == pointer.RoleText:
			fg = brightTx
		}
		f.Text(it.span.col, it.span.row, it.label, fg)
	}
}

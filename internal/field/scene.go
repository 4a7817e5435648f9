package field

import "github.com/litescript/ls-nightsky/internal/anim"

// Scene binds a field to the surface it draws on so an anim.Loop can drive it.
type Scene struct {
	Field   *Field
	Surface Surface
	Accent  AccentFunc
}

// Tick renders one frame.
func (sc *Scene) Tick(anim.Frame) {
	sc.Field.Frame(sc.Surface, sc.Accent)
}

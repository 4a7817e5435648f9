package pointer

// Role is the kind of element under the pointer.
type Role int

const (
	RoleNone Role = iota
	RoleLink
	RoleButton
	RoleInput
	RoleTextArea
	RoleText
	RoleImage
	RoleContainer
)

func (r Role) String() string {
	switch r {
	case RoleLink:
		return "link"
	case RoleButton:
		return "button"
	case RoleInput:
		return "input"
	case RoleTextArea:
		return "textarea"
	case RoleText:
		return "text"
	case RoleImage:
		return "image"
	case RoleContainer:
		return "container"
	default:
		return "none"
	}
}

// HitTarget is the element currently under the pointer, with the roles of
// its enclosing elements from nearest to outermost.
type HitTarget struct {
	Role      Role
	Ancestors []Role
}

// Classify returns ModeInteractive if the target is itself a control or
// sits inside a link or button, and ModeDefault otherwise.
func Classify(t HitTarget) Mode {
	switch t.Role {
	case RoleLink, RoleButton, RoleInput, RoleTextArea:
		return ModeInteractive
	}
	for _, a := range t.Ancestors {
		if a == RoleLink || a == RoleButton {
			return ModeInteractive
		}
	}
	return ModeDefault
}

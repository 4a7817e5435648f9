package pointer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		target HitTarget
		want   Mode
	}{
		{"empty", HitTarget{}, ModeDefault},
		{"link", HitTarget{Role: RoleLink}, ModeInteractive},
		{"button", HitTarget{Role: RoleButton}, ModeInteractive},
		{"input", HitTarget{Role: RoleInput}, ModeInteractive},
		{"textarea", HitTarget{Role: RoleTextArea}, ModeInteractive},
		{"plain text", HitTarget{Role: RoleText}, ModeDefault},
		{"image", HitTarget{Role: RoleImage}, ModeDefault},
		{"text inside link", HitTarget{Role: RoleText, Ancestors: []Role{RoleLink}}, ModeInteractive},
		{"image deep in button", HitTarget{Role: RoleImage, Ancestors: []Role{RoleContainer, RoleButton, RoleContainer}}, ModeInteractive},
		{"text inside container", HitTarget{Role: RoleText, Ancestors: []Role{RoleContainer}}, ModeDefault},
		{"text inside input ancestor", HitTarget{Role: RoleText, Ancestors: []Role{RoleInput}}, ModeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.target))
		})
	}
}

func TestTracker_Position(t *testing.T) {
	tr := NewTracker()

	_, _, ok := tr.Position()
	assert.False(t, ok, "no position before the first move")

	tr.Move(10, 20)
	tr.Move(11, 22)
	x, y, ok := tr.Position()
	require.True(t, ok)
	assert.Equal(t, 11.0, x)
	assert.Equal(t, 22.0, y)

	tr.Move(math.NaN(), 3)
	x, _, _ = tr.Position()
	assert.Equal(t, 11.0, x, "NaN move ignored")

	tr.Leave()
	_, _, ok = tr.Position()
	assert.False(t, ok)
}

func TestTracker_ModeAndVisual(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, ModeDefault, tr.Mode())
	assert.Equal(t, VisualDefault, tr.Visual())

	tr.Over(HitTarget{Role: RoleButton})
	assert.Equal(t, ModeInteractive, tr.Mode())
	assert.Equal(t, VisualHover, tr.Visual())

	tr.Over(HitTarget{Role: RoleContainer})
	assert.Equal(t, ModeDefault, tr.Mode())
	assert.Equal(t, VisualDefault, tr.Visual())
}

func TestTracker_OnChangeFiresOnTransitionsOnly(t *testing.T) {
	tr := NewTracker()
	var got [][2]Mode
	tr.OnChange(func(from, to Mode) { got = append(got, [2]Mode{from, to}) })

	tr.Over(HitTarget{Role: RoleLink})
	tr.Over(HitTarget{Role: RoleButton})
	tr.Over(HitTarget{Role: RoleText})

	assert.Equal(t, [][2]Mode{
		{ModeDefault, ModeInteractive},
		{ModeInteractive, ModeDefault},
	}, got)
}

func TestTracker_Teardown(t *testing.T) {
	tr := NewTracker()
	calls := 0
	tr.OnChange(func(Mode, Mode) { calls++ })
	tr.Move(5, 5)
	tr.Over(HitTarget{Role: RoleLink})
	require.Equal(t, 1, calls)

	tr.Teardown()
	assert.Equal(t, ModeDefault, tr.Mode())
	_, _, ok := tr.Position()
	assert.False(t, ok)

	tr.Move(1, 1)
	tr.Over(HitTarget{Role: RoleButton})
	_, _, ok = tr.Position()
	assert.False(t, ok, "detached tracker ignores moves")
	assert.Equal(t, ModeDefault, tr.Mode())
	assert.Equal(t, 1, calls, "callbacks dropped on teardown")
}

func TestTracker_IDsAreUnique(t *testing.T) {
	a, b := NewTracker(), NewTracker()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

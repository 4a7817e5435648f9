package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"99, 102, 241", 99, 102, 241, false},
		{"0,0,0", 0, 0, 0, false},
		{" 255 , 1,2 ", 255, 1, 2, false},
		{"256, 0, 0", 0, 0, 0, true},
		{"1, 2", 0, 0, 0, true},
		{"a, b, c", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, err := ParseRGB(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, [3]uint8{tt.r, tt.g, tt.b}, [3]uint8{r, g, b})
		})
	}
}

func TestAccent_Default(t *testing.T) {
	assert.Equal(t, DefaultAccent, Accent(nil))
	assert.Equal(t, DefaultAccent, Accent(MapSource{}))
	assert.Equal(t, DefaultAccent, Accent(MapSource{AccentKey: "  "}))
}

func TestAccent_ChainOrder(t *testing.T) {
	env := EnvSource{Getenv: func(k string) (string, bool) {
		if k == AccentEnv {
			return "1, 2, 3", true
		}
		return "", false
	}}
	file := MapSource{AccentKey: "4, 5, 6"}

	assert.Equal(t, "1, 2, 3", Accent(Chain{env, file}))
	assert.Equal(t, "4, 5, 6", Accent(Chain{EnvSource{Getenv: func(string) (string, bool) { return "", false }}, file}))
}

func TestEnvSource_OnlyAccent(t *testing.T) {
	t.Setenv(AccentEnv, "7, 8, 9")
	v, ok := EnvSource{}.Lookup(AccentKey)
	require.True(t, ok)
	assert.Equal(t, "7, 8, 9", v)

	_, ok = EnvSource{}.Lookup("background")
	assert.False(t, ok)
}

func TestAccentRGB_MalformedFallsBack(t *testing.T) {
	r, g, b := AccentRGB(MapSource{AccentKey: "not a colour"})
	assert.Equal(t, [3]uint8{99, 102, 241}, [3]uint8{r, g, b})
}

func TestAccentFunc_FollowsChanges(t *testing.T) {
	src := MapSource{AccentKey: "10, 20, 30"}
	fn := AccentFunc(src)
	r, _, _ := fn()
	assert.Equal(t, uint8(10), r)

	src[AccentKey] = "40, 50, 60"
	r, _, _ = fn()
	assert.Equal(t, uint8(40), r)
}

package dex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Element
		wantErr bool
	}{
		{"Fire", Fire, false},
		{"air", Air, false},
		{"EARTH", Earth, false},
		{"wAtEr", Water, false},
		{"plasma", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseElement(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown element")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestElement_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Fire", "Air", "Earth", "Water"}, []string{
		Fire.String(), Air.String(), Earth.String(), Water.String(),
	})
}

func TestElement_Cycle(t *testing.T) {
	t.Parallel()

	assert.True(t, Water.Strong(Fire))
	assert.True(t, Fire.Strong(Air))
	assert.True(t, Air.Strong(Earth))
	assert.True(t, Earth.Strong(Water))

	for _, e := range Elements {
		assert.False(t, e.Strong(e), "%s strong against itself", e)
		assert.False(t, e.Weak(e), "%s weak against itself", e)
		strong, weak := 0, 0
		for _, o := range Elements {
			if e.Strong(o) {
				strong++
				assert.True(t, o.Weak(e), "%s beats %s but %s is not weak to it", e, o, o)
			}
			if e.Weak(o) {
				weak++
			}
		}
		assert.Equal(t, 1, strong, "%s", e)
		assert.Equal(t, 1, weak, "%s", e)
	}
}

func TestElement_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Earth)
	require.NoError(t, err)
	assert.JSONEq(t, `"Earth"`, string(b))

	var e Element
	require.NoError(t, json.Unmarshal([]byte(`"water"`), &e))
	assert.Equal(t, Water, e)
	assert.Error(t, json.Unmarshal([]byte(`"steam"`), &e))
}

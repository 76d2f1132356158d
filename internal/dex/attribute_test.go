package dex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttribute(t *testing.T) {
	t.Parallel()

	for i, name := range attributeNames {
		a, err := ParseAttribute(name)
		require.NoError(t, err)
		assert.Equal(t, Attribute(i), a)

		a, err = ParseAttribute(lower(name))
		require.NoError(t, err)
		assert.Equal(t, Attribute(i), a)
	}

	_, err := ParseAttribute("horns")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"horns"`)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func TestAttributeSet(t *testing.T) {
	t.Parallel()

	s := NewAttributeSet(Paws, Tail, Paws)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(Paws))
	assert.True(t, s.Has(Tail))
	assert.False(t, s.Has(Beak))
	assert.Equal(t, []Attribute{Tail, Paws}, s.Slice())
	assert.Equal(t, "Tail, Paws", s.String())

	assert.True(t, NewAttributeSet(Paws).SubsetOf(s))
	assert.True(t, NewAttributeSet().SubsetOf(s))
	assert.True(t, NewAttributeSet().SubsetOf(NewAttributeSet()))
	assert.False(t, NewAttributeSet(Paws, Beak).SubsetOf(s))
	assert.False(t, NewAttributeSet(Paws).SubsetOf(NewAttributeSet()))

	assert.True(t, s.Intersects(NewAttributeSet(Tail, Wings)))
	assert.False(t, s.Intersects(NewAttributeSet(Wings)))
}

func TestAttributeSet_SubsetOfExhaustive(t *testing.T) {
	t.Parallel()

	const full = 1 << attributeCount
	for r := AttributeSet(0); r < full; r += 7 {
		for a := AttributeSet(0); a < full; a += 13 {
			want := true
			for _, attr := range r.Slice() {
				if !a.Has(attr) {
					want = false
					break
				}
			}
			if got := r.SubsetOf(a); got != want {
				t.Fatalf("%v SubsetOf %v = %v; want %v", r, a, got, want)
			}
		}
	}
}

func TestAttributeSet_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewAttributeSet(Claws, Ears))
	require.NoError(t, err)
	assert.JSONEq(t, `["Ears","Claws"]`, string(b))

	b, err = json.Marshal(NewAttributeSet())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestParseAttributes_NamesIndex(t *testing.T) {
	t.Parallel()

	_, err := parseAttributes("source", []string{"Paws", "Fins"})
	require.Error(t, err)
	assert.Equal(t, `source[1]: unknown attribute "Fins"`, err.Error())
}

package dex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Attribute is a physical trait of a species. Physical attacks require a set
// of attributes to be usable.
type Attribute uint8

const (
	Ears Attribute = iota
	Tail
	Eyes
	Wings
	Paws
	Teeth
	Hair
	Legs
	Beak
	Claws
	Tongue

	attributeCount
)

var attributeNames = [attributeCount]string{
	Ears:   "Ears",
	Tail:   "Tail",
	Eyes:   "Eyes",
	Wings:  "Wings",
	Paws:   "Paws",
	Teeth:  "Teeth",
	Hair:   "Hair",
	Legs:   "Legs",
	Beak:   "Beak",
	Claws:  "Claws",
	Tongue: "Tongue",
}

func (a Attribute) String() string {
	if a < attributeCount {
		return attributeNames[a]
	}
	return fmt.Sprintf("Attribute(%d)", uint8(a))
}

// ParseAttribute resolves an attribute name, ignoring case.
func ParseAttribute(s string) (Attribute, error) {
	for i, name := range attributeNames {
		if strings.EqualFold(name, s) {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", s)
}

// AttributeSet is an unordered set of attributes.
type AttributeSet uint16

// NewAttributeSet builds a set from attrs; duplicates collapse.
func NewAttributeSet(attrs ...Attribute) AttributeSet {
	var s AttributeSet
	for _, a := range attrs {
		s = s.With(a)
	}
	return s
}

// With returns s plus a.
func (s AttributeSet) With(a Attribute) AttributeSet {
	return s | 1<<a
}

// Has reports whether a belongs to s.
func (s AttributeSet) Has(a Attribute) bool {
	return s&(1<<a) != 0
}

// SubsetOf reports whether every attribute of s is also in other.
// The empty set is a subset of every set.
func (s AttributeSet) SubsetOf(other AttributeSet) bool {
	return s&^other == 0
}

// Intersects reports whether s and other share at least one attribute.
func (s AttributeSet) Intersects(other AttributeSet) bool {
	return s&other != 0
}

func (s AttributeSet) Len() int {
	n := 0
	for a := Attribute(0); a < attributeCount; a++ {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// Slice returns the attributes in declaration order.
func (s AttributeSet) Slice() []Attribute {
	out := make([]Attribute, 0, s.Len())
	for a := Attribute(0); a < attributeCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s AttributeSet) String() string {
	names := make([]string, 0, s.Len())
	for _, a := range s.Slice() {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

func (s AttributeSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, s.Len())
	for _, a := range s.Slice() {
		names = append(names, a.String())
	}
	return json.Marshal(names)
}

// parseAttributes converts names into a set, reporting the first unknown
// token with its index under key.
func parseAttributes(key string, names []string) (AttributeSet, error) {
	var s AttributeSet
	for i, n := range names {
		a, err := ParseAttribute(n)
		if err != nil {
			return 0, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		s = s.With(a)
	}
	return s, nil
}

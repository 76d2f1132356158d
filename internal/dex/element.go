package dex

import (
	"fmt"
	"strings"
)

// Element is one of the four natures a creature is born with. Elements beat
// each other in a cycle and slightly alter a creature's stats.
type Element uint8

const (
	Fire Element = iota
	Air
	Earth
	Water
)

// Elements lists every element in declaration order.
var Elements = []Element{Fire, Air, Earth, Water}

func (e Element) String() string {
	switch e {
	case Fire:
		return "Fire"
	case Air:
		return "Air"
	case Earth:
		return "Earth"
	case Water:
		return "Water"
	default:
		return fmt.Sprintf("Element(%d)", uint8(e))
	}
}

// ParseElement resolves an element name, ignoring case.
func ParseElement(s string) (Element, error) {
	switch strings.ToLower(s) {
	case "fire":
		return Fire, nil
	case "air":
		return Air, nil
	case "earth":
		return Earth, nil
	case "water":
		return Water, nil
	default:
		return 0, fmt.Errorf("unknown element %q", s)
	}
}

// beats holds the element each element is strong against:
// Water > Fire > Air > Earth > Water.
var beats = map[Element]Element{
	Water: Fire,
	Fire:  Air,
	Air:   Earth,
	Earth: Water,
}

// Strong reports whether e is strong against other.
func (e Element) Strong(other Element) bool {
	return beats[e] == other
}

// Weak reports whether e is weak against other.
func (e Element) Weak(other Element) bool {
	return beats[other] == e
}

func (e Element) MarshalText() ([]byte, error) {
	if e > Water {
		return nil, fmt.Errorf("invalid element %d", uint8(e))
	}
	return []byte(e.String()), nil
}

func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

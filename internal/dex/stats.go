package dex

import "math"

// Default values for the percentage stats, shared by every species.
const (
	DefaultDodge    uint8 = 0
	DefaultAccuracy uint8 = 100
)

// Stats are the base combat stats of a species or a creature. Dodge and
// Accuracy are percentages.
type Stats struct {
	HP       uint8 `json:"hp"`
	Attack   uint8 `json:"attack"`
	Defense  uint8 `json:"defense"`
	Speed    uint8 `json:"speed"`
	Dodge    uint8 `json:"dodge"`
	Accuracy uint8 `json:"accuracy"`
}

// StatRow is a labelled stat value, in display order.
type StatRow struct {
	Label string
	Value uint8
}

// Rows returns HP, Attack, Defense and Speed for tabular display.
func (s Stats) Rows() []StatRow {
	return []StatRow{
		{"HP", s.HP},
		{"Attack", s.Attack},
		{"Defense", s.Defense},
		{"Speed", s.Speed},
	}
}

// WithElement derives an individual's stats from base stats. Each element
// writes two fields in order; the second write reads the stats as left by the
// first one, so Fire ends with speed taken from defense and Earth derives
// speed from its already boosted defense.
func (s Stats) WithElement(e Element) Stats {
	out := s
	switch e {
	case Fire:
		out.Speed = scale(out.Speed, 1.05)
		out.Speed = scale(out.Defense, 0.95)
	case Water:
		out.Dodge = addSat(out.Dodge, 5)
		out.Attack = scale(out.Defense, 0.95)
	case Air:
		out.Attack = scale(out.Speed, 1.05)
		out.Accuracy = subSat(out.Accuracy, 5)
	case Earth:
		out.Defense = scale(out.Speed, 1.05)
		out.Speed = scale(out.Defense, 0.95)
	}
	return out
}

// scale multiplies v by f in float32, rounds half away from zero and
// saturates into the uint8 range.
func scale(v uint8, f float32) uint8 {
	x := float32(float32(v) * f)
	return clampU8(math.Round(float64(x)))
}

func clampU8(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(x)
	}
}

func addSat(v, d uint8) uint8 {
	if v > math.MaxUint8-d {
		return math.MaxUint8
	}
	return v + d
}

func subSat(v, d uint8) uint8 {
	if v < d {
		return 0
	}
	return v - d
}

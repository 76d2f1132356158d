package dex

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Target describes who an attack or an item affects.
type Target uint8

const (
	Enemy Target = iota
	Enemies
	Ally
	Allies
	All
	OneSelf
	AllButSelf
)

func (t Target) String() string {
	switch t {
	case Enemy:
		return "Enemy"
	case Enemies:
		return "Enemies"
	case Ally:
		return "Ally"
	case Allies:
		return "Allies"
	case All:
		return "All"
	case OneSelf:
		return "OneSelf"
	case AllButSelf:
		return "AllButSelf"
	default:
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
}

// ParseTarget resolves a target name, ignoring case. "self" is accepted for
// OneSelf and "abs" for AllButSelf.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "enemy":
		return Enemy, nil
	case "enemies":
		return Enemies, nil
	case "ally":
		return Ally, nil
	case "allies":
		return Allies, nil
	case "all":
		return All, nil
	case "self", "oneself":
		return OneSelf, nil
	case "allbutself", "abs":
		return AllButSelf, nil
	default:
		return 0, fmt.Errorf("unknown target %q", s)
	}
}

// Single reports whether the target designates exactly one combatant that
// has to be picked.
func (t Target) Single() bool {
	return t == Enemy || t == Ally
}

func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Target) UnmarshalText(b []byte) error {
	v, err := ParseTarget(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// PhysicalAttack is usable by species owning every attribute in Source.
type PhysicalAttack struct {
	Name   string
	Source AttributeSet
	// StrongAgainst doubles damage, WeakAgainst halves it and
	// UselessAgainst cancels it when the defender has one of the attributes.
	StrongAgainst  AttributeSet
	WeakAgainst    AttributeSet
	UselessAgainst AttributeSet
	Target         Target
	Damage         *uint8
}

// MagicalAttack is usable by creatures of its element.
type MagicalAttack struct {
	Name    string
	Element Element
	Damage  *uint8
}

// AttackKind tags the variant held by an Attack.
type AttackKind uint8

const (
	Physical AttackKind = iota
	Magical
)

func (k AttackKind) String() string {
	if k == Magical {
		return "magical"
	}
	return "physical"
}

// Attack is either a physical or a magical attack. Only the field matching
// Kind is meaningful.
type Attack struct {
	Kind     AttackKind
	Physical PhysicalAttack
	Magical  MagicalAttack
}

func NewPhysical(p PhysicalAttack) Attack { return Attack{Kind: Physical, Physical: p} }

func NewMagical(m MagicalAttack) Attack { return Attack{Kind: Magical, Magical: m} }

func (a Attack) Name() string {
	switch a.Kind {
	case Physical:
		return a.Physical.Name
	case Magical:
		return a.Magical.Name
	}
	panic(fmt.Sprintf("dex: unknown attack kind %d", a.Kind))
}

// Attributes returns the attributes required to use the attack. Magical
// attacks require none.
func (a Attack) Attributes() AttributeSet {
	switch a.Kind {
	case Physical:
		return a.Physical.Source
	case Magical:
		return 0
	}
	panic(fmt.Sprintf("dex: unknown attack kind %d", a.Kind))
}

// Element returns the element of a magical attack; ok is false for physical
// attacks.
func (a Attack) Element() (e Element, ok bool) {
	switch a.Kind {
	case Physical:
		return 0, false
	case Magical:
		return a.Magical.Element, true
	}
	panic(fmt.Sprintf("dex: unknown attack kind %d", a.Kind))
}

// Damage returns the flat damage of the attack, if it has one.
func (a Attack) Damage() (d uint8, ok bool) {
	var p *uint8
	switch a.Kind {
	case Physical:
		p = a.Physical.Damage
	case Magical:
		p = a.Magical.Damage
	default:
		panic(fmt.Sprintf("dex: unknown attack kind %d", a.Kind))
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Target returns who the attack hits. Magical attacks always hit one enemy.
func (a Attack) Target() Target {
	switch a.Kind {
	case Physical:
		return a.Physical.Target
	case Magical:
		return Enemy
	}
	panic(fmt.Sprintf("dex: unknown attack kind %d", a.Kind))
}

type attackView struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Attributes AttributeSet `json:"attributes"`
	Element    *Element     `json:"element,omitempty"`
	Damage     *uint8       `json:"damage,omitempty"`
	Target     Target       `json:"target"`
}

func (a Attack) MarshalJSON() ([]byte, error) {
	v := attackView{
		Name:       a.Name(),
		Kind:       a.Kind.String(),
		Attributes: a.Attributes(),
		Target:     a.Target(),
	}
	if e, ok := a.Element(); ok {
		v.Element = &e
	}
	if d, ok := a.Damage(); ok {
		v.Damage = &d
	}
	return json.Marshal(v)
}

// Attacks is the attack catalog. It is built once by the loader and never
// modified afterwards, so it can be shared freely.
type Attacks struct {
	list []Attack
}

// NewAttacks builds a catalog; registration order is kept.
func NewAttacks(list ...Attack) *Attacks {
	return &Attacks{list: append([]Attack(nil), list...)}
}

func (as *Attacks) Len() int { return len(as.list) }

func (as *Attacks) At(i int) Attack { return as.list[i] }

// All returns the whole catalog as a set.
func (as *Attacks) All() AttackSet {
	idx := make([]int, len(as.list))
	for i := range as.list {
		idx[i] = i
	}
	return AttackSet{catalog: as, idx: idx}
}

// FilterForSpecies returns the physical attacks whose required attributes
// all belong to the species.
func (as *Attacks) FilterForSpecies(sp *Species) AttackSet {
	return as.filter(func(a Attack) bool {
		return a.Kind == Physical && a.Physical.Source.SubsetOf(sp.Attributes)
	})
}

// FilterByElement returns the magical attacks of element e.
func (as *Attacks) FilterByElement(e Element) AttackSet {
	return as.filter(func(a Attack) bool {
		el, ok := a.Element()
		return ok && el == e
	})
}

func (as *Attacks) filter(keep func(Attack) bool) AttackSet {
	set := AttackSet{catalog: as}
	for i, a := range as.list {
		if keep(a) {
			set.idx = append(set.idx, i)
		}
	}
	return set
}

// AttackSet is an ordered selection of catalog entries, stored as indices
// into the catalog.
type AttackSet struct {
	catalog *Attacks
	idx     []int
}

func (s AttackSet) Len() int { return len(s.idx) }

// At returns the i-th attack of the set.
func (s AttackSet) At(i int) Attack { return s.catalog.list[s.idx[i]] }

// Indices returns a copy of the catalog indices held by the set.
func (s AttackSet) Indices() []int { return append([]int(nil), s.idx...) }

// Concat appends the attacks of o not already present in s.
func (s AttackSet) Concat(o AttackSet) AttackSet {
	if s.catalog == nil {
		s.catalog = o.catalog
	} else if o.catalog != nil && o.catalog != s.catalog {
		panic("dex: concatenating attack sets from different catalogs")
	}
	out := AttackSet{catalog: s.catalog, idx: make([]int, 0, len(s.idx)+len(o.idx))}
	seen := make(map[int]struct{}, len(s.idx)+len(o.idx))
	for _, list := range [][]int{s.idx, o.idx} {
		for _, i := range list {
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			out.idx = append(out.idx, i)
		}
	}
	return out
}

// All iterates over the set in order.
func (s AttackSet) All() iter.Seq2[int, Attack] {
	return func(yield func(int, Attack) bool) {
		for i := range s.idx {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

func (s AttackSet) Names() []string {
	names := make([]string, len(s.idx))
	for i := range s.idx {
		names[i] = s.At(i).Name()
	}
	return names
}

// Contains reports whether an attack with the given name is in the set.
func (s AttackSet) Contains(name string) bool {
	for _, a := range s.All() {
		if a.Name() == name {
			return true
		}
	}
	return false
}

func (s AttackSet) MarshalJSON() ([]byte, error) {
	list := make([]Attack, 0, len(s.idx))
	for _, a := range s.All() {
		list = append(list, a)
	}
	return json.Marshal(list)
}

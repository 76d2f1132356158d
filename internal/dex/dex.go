package dex

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrEmptyDex is returned when a random creature is requested from a
	// catalog without individuals.
	ErrEmptyDex = errors.New("dex has no individuals")
	// ErrUnknownCreature is returned when a reference does not resolve.
	ErrUnknownCreature = errors.New("unknown creature")
)

// Dex holds every species, their individuals and the attack catalog.
// It is read-only once loaded and safe for concurrent use.
type Dex struct {
	Species []Species
	Attacks *Attacks
}

// Member is anything that points at a creature of the Dex, such as a team
// member.
type Member interface {
	Ref() CreatureRef
}

// Individuals returns a copy of every creature, flattened in species order.
func (d *Dex) Individuals() []Creature {
	var out []Creature
	for i := range d.Species {
		out = append(out, d.Species[i].Individuals...)
	}
	return out
}

// Random picks a creature uniformly among all individuals of all species.
// A nil r uses the package level generator.
func (d *Dex) Random(r *rand.Rand) (Creature, error) {
	all := d.Individuals()
	if len(all) == 0 {
		return Creature{}, ErrEmptyDex
	}
	var i int
	if r == nil {
		i = rand.IntN(len(all))
	} else {
		i = r.IntN(len(all))
	}
	return all[i], nil
}

// LookupCreature resolves ref.
func (d *Dex) LookupCreature(ref CreatureRef) (Creature, error) {
	if ref.SpeciesID < 0 || ref.SpeciesID >= len(d.Species) {
		return Creature{}, fmt.Errorf("%w: species %d out of range [0, %d)", ErrUnknownCreature, ref.SpeciesID, len(d.Species))
	}
	ind := d.Species[ref.SpeciesID].Individuals
	if ref.IndividualID < 0 || ref.IndividualID >= len(ind) {
		return Creature{}, fmt.Errorf("%w: individual %d out of range [0, %d) in species %d", ErrUnknownCreature, ref.IndividualID, len(ind), ref.SpeciesID)
	}
	return ind[ref.IndividualID], nil
}

// GetCreature resolves ref and panics if it does not point into the Dex:
// an invalid reference is a bug in the caller.
func (d *Dex) GetCreature(ref CreatureRef) Creature {
	c, err := d.LookupCreature(ref)
	if err != nil {
		panic(fmt.Sprintf("dex: GetCreature%s: %v", ref, err))
	}
	return c
}

// SpeciesOf returns the species of c, panicking on an unknown species id.
func (d *Dex) SpeciesOf(c Creature) *Species {
	if c.SpeciesID < 0 || c.SpeciesID >= len(d.Species) {
		panic(fmt.Sprintf("dex: creature %q has species id %d out of range [0, %d)", c.Name, c.SpeciesID, len(d.Species)))
	}
	return &d.Species[c.SpeciesID]
}

// FilterAttacksForCreature returns every attack c may use: physical attacks
// allowed by its species' attributes, then magical attacks of its element.
func (d *Dex) FilterAttacksForCreature(c Creature) AttackSet {
	sp := d.SpeciesOf(c)
	return d.Attacks.FilterForSpecies(sp).Concat(d.Attacks.FilterByElement(c.Element))
}

// FilterAttacksForTeamMember resolves the member's creature and returns its
// compatible attacks. It panics if the member points outside the Dex.
func (d *Dex) FilterAttacksForTeamMember(m Member) AttackSet {
	return d.FilterAttacksForCreature(d.GetCreature(m.Ref()))
}

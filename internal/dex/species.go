package dex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Species is the template shared by a family of creatures.
type Species struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	MassKg      float32      `json:"mass_kg"`
	HeightM     float32      `json:"height_m"`
	Attributes  AttributeSet `json:"attributes"`
	Stats       Stats        `json:"stats"`
	Individuals []Creature   `json:"individuals"`
}

// Creature is one named individual of a species. Its stats are derived from
// the species' base stats and its element once, at load time.
type Creature struct {
	Name      string  `json:"name"`
	Element   Element `json:"element"`
	SpeciesID int     `json:"species_id"`
	Stats     Stats   `json:"stats"`
}

func newCreature(name string, e Element, speciesID int, base Stats) Creature {
	return Creature{
		Name:      name,
		Element:   e,
		SpeciesID: speciesID,
		Stats:     base.WithElement(e),
	}
}

// SpritePath is the texture location of the creature, relative to the
// asset root.
func (c Creature) SpritePath() string {
	return fmt.Sprintf("textures/creatures/%s.gif", strings.ToLower(c.Name))
}

// CreatureRef points at one individual: the species index in the Dex and the
// individual index inside that species. It serializes as a two-element array.
type CreatureRef struct {
	SpeciesID    int
	IndividualID int
}

func (r CreatureRef) String() string {
	return fmt.Sprintf("(%d, %d)", r.SpeciesID, r.IndividualID)
}

func (r CreatureRef) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d]", r.SpeciesID, r.IndividualID)), nil
}

func (r *CreatureRef) UnmarshalJSON(b []byte) error {
	var pair []int
	if err := json.Unmarshal(b, &pair); err != nil || len(pair) != 2 {
		return fmt.Errorf("creature ref %s: expected [species_id, individual_id]", b)
	}
	r.SpeciesID, r.IndividualID = pair[0], pair[1]
	return nil
}

package game

import (
	"math/rand/v2"

	"pokeclone/internal/dex"
)

// DefaultEncounterRate triggers a wild fight on one step in four.
const DefaultEncounterRate = 64

// Encounter rolls wild fights while the player walks in herbs.
type Encounter struct {
	Rate uint8
	Rand *rand.Rand
}

// Step rolls a byte; below Rate a random creature of d shows up.
func (enc Encounter) Step(d *dex.Dex) (dex.Creature, bool, error) {
	var roll uint8
	if enc.Rand == nil {
		roll = uint8(rand.UintN(256))
	} else {
		roll = uint8(enc.Rand.UintN(256))
	}
	if roll >= enc.Rate {
		return dex.Creature{}, false, nil
	}
	c, err := d.Random(enc.Rand)
	if err != nil {
		return dex.Creature{}, false, err
	}
	return c, true, nil
}

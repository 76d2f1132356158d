package dex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const emberfoxSpecies = `{
    "species": [
        {
            "name": "Emberfox",
            "mass_kg": 9.5,
            "height_m": 0.6,
            "attributes": ["Paws", "Tail"],
            "stats": { "hp": 40, "attack": 50, "defense": 30, "speed": 60 },
            "individuals": [ { "name": "Emberfox-1", "element": "Fire" } ]
        },
        {
            "name": "Pebble",
            "mass_kg": 1,
            "height_m": 0.1,
            "attributes": [],
            "stats": { "hp": 10, "attack": 10, "defense": 10, "speed": 10 },
            "individuals": [
                { "name": "Pebble-1", "element": "earth" },
                { "name": "Pebble-2", "element": "WATER" }
            ]
        }
    ]
}`

const emberfoxAttacks = `{
    "physical_attacks": [
        { "name": "Scratch", "source": ["Paws"], "target": "Enemy", "damage": 10 },
        { "name": "Peck", "source": ["Beak"], "target": "enemy" }
    ],
    "magical_attacks": [
        { "name": "Fireball", "element": "Fire", "damage": 15 },
        { "name": "Splash", "element": "Water" }
    ]
}`

func loadEmberfox(t *testing.T) *Dex {
	t.Helper()
	d, err := Load([]byte(emberfoxSpecies), []byte(emberfoxAttacks))
	require.NoError(t, err)
	return d
}

type memberRef CreatureRef

func (m memberRef) Ref() CreatureRef { return CreatureRef(m) }

package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"pokeclone/internal/dex"
)

// Every creature is Fire so nobody dodges and every attack lands.
const arenaSpecies = `{
    "species": [
        {
            "name": "Emberfox", "mass_kg": 9.5, "height_m": 0.6,
            "attributes": ["Paws", "Tail"],
            "stats": { "hp": 40, "attack": 40, "defense": 40, "speed": 60 },
            "individuals": [
                { "name": "Emberfox", "element": "Fire" },
                { "name": "Cinder", "element": "Fire" }
            ]
        },
        {
            "name": "Pebble", "mass_kg": 1, "height_m": 0.1,
            "attributes": [],
            "stats": { "hp": 30, "attack": 16, "defense": 16, "speed": 10 },
            "individuals": [ { "name": "Pebble", "element": "Fire" } ]
        },
        {
            "name": "Brute", "mass_kg": 300, "height_m": 3,
            "attributes": ["Paws"],
            "stats": { "hp": 200, "attack": 200, "defense": 200, "speed": 200 },
            "individuals": [ { "name": "Brute", "element": "Fire" } ]
        },
        {
            "name": "Hawk", "mass_kg": 2, "height_m": 0.4,
            "attributes": ["Wings", "Beak"],
            "stats": { "hp": 50, "attack": 8, "defense": 8, "speed": 8 },
            "individuals": [ { "name": "Hawk", "element": "Fire" } ]
        }
    ]
}`

const arenaAttacks = `{
    "physical_attacks": [
        { "name": "Scratch", "source": ["Paws"], "target": "Enemy", "damage": 10, "strong_against": ["Wings"] },
        { "name": "Tackle", "source": [], "target": "Enemy", "damage": 5 },
        { "name": "Groom", "source": ["Tail"], "target": "Ally" },
        { "name": "Tail Whip", "source": ["Tail"], "target": "Enemy", "damage": 4, "weak_against": ["Paws"] },
        { "name": "Peck", "source": ["Beak"], "target": "Enemy", "damage": 8, "useless_against": ["Paws"] }
    ],
    "magical_attacks": [
        { "name": "Fireball", "element": "Fire", "damage": 15 },
        { "name": "Tidal Wave", "element": "Water", "damage": 15 },
        { "name": "Gust", "element": "Air", "damage": 15 }
    ]
}`

// Attack indices offered to Emberfox and Cinder.
const (
	atkScratch = iota
	atkTackle
	atkGroom
	atkTailWhip
	atkFireball
)

var (
	refEmberfox = dex.CreatureRef{SpeciesID: 0, IndividualID: 0}
	refCinder   = dex.CreatureRef{SpeciesID: 0, IndividualID: 1}
	refPebble   = dex.CreatureRef{SpeciesID: 1, IndividualID: 0}
	refBrute    = dex.CreatureRef{SpeciesID: 2, IndividualID: 0}
	refHawk     = dex.CreatureRef{SpeciesID: 3, IndividualID: 0}
)

func loadArena(t *testing.T) *dex.Dex {
	t.Helper()
	d, err := dex.Load([]byte(arenaSpecies), []byte(arenaAttacks))
	require.NoError(t, err)
	return d
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// newArenaSession returns a session whose team holds refs, in order.
func newArenaSession(t *testing.T, d *dex.Dex, refs ...dex.CreatureRef) *Session {
	t.Helper()
	s := NewSession(d, Options{Rand: seeded()})
	for _, ref := range refs {
		_, err := s.Recruit(ref, "")
		require.NoError(t, err)
	}
	return s
}

func act(kind ActionKind, index int) Action {
	return Action{Kind: kind, Index: index}
}

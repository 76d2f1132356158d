package dex

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	t.Parallel()

	d := loadEmberfox(t)
	require.Len(t, d.Species, 2)

	fox := d.Species[0]
	assert.Equal(t, "Emberfox", fox.Name)
	assert.Equal(t, float32(9.5), fox.MassKg)
	assert.Equal(t, float32(0.6), fox.HeightM)
	assert.Equal(t, NewAttributeSet(Paws, Tail), fox.Attributes)
	assert.Equal(t, Stats{HP: 40, Attack: 50, Defense: 30, Speed: 60, Dodge: 0, Accuracy: 100}, fox.Stats)
	require.Len(t, fox.Individuals, 1)
	assert.Equal(t, Fire, fox.Individuals[0].Element)
	assert.Equal(t, fox.Stats.WithElement(Fire), fox.Individuals[0].Stats)

	pebble := d.Species[1]
	assert.Equal(t, AttributeSet(0), pebble.Attributes)
	assert.Equal(t, Earth, pebble.Individuals[0].Element)
	assert.Equal(t, Water, pebble.Individuals[1].Element)

	require.Equal(t, 4, d.Attacks.Len())
	assert.Equal(t, Physical, d.Attacks.At(0).Kind)
	assert.Equal(t, Enemy, d.Attacks.At(1).Target())
	assert.Equal(t, Magical, d.Attacks.At(2).Kind)
	_, hasDamage := d.Attacks.At(3).Damage()
	assert.False(t, hasDamage)
}

func TestLoad_SpeciesIndexStability(t *testing.T) {
	t.Parallel()

	d := loadEmberfox(t)
	for sid, sp := range d.Species {
		assert.Equal(t, sid, sp.ID)
		for iid, c := range sp.Individuals {
			assert.Equal(t, sid, c.SpeciesID)
			assert.Equal(t, c, d.GetCreature(CreatureRef{SpeciesID: sid, IndividualID: iid}))
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		species string
		attacks string
		wantErr string
	}{
		{
			name:    "malformed json",
			species: `{"species": [`,
			attacks: emberfoxAttacks,
			wantErr: "species catalog: decoding",
		},
		{
			name:    "missing species key",
			species: `{}`,
			attacks: emberfoxAttacks,
			wantErr: "species catalog: species: missing required field",
		},
		{
			name:    "missing stats field",
			species: strings.Replace(emberfoxSpecies, `"speed": 60`, `"spd": 60`, 1),
			attacks: emberfoxAttacks,
			wantErr: "species[0].stats.speed: missing required field",
		},
		{
			name:    "stat out of range",
			species: strings.Replace(emberfoxSpecies, `"hp": 40`, `"hp": 300`, 1),
			attacks: emberfoxAttacks,
			wantErr: "species[0].stats.hp: 300 out of range",
		},
		{
			name:    "unknown attribute",
			species: strings.Replace(emberfoxSpecies, `"Tail"]`, `"Fins"]`, 1),
			attacks: emberfoxAttacks,
			wantErr: `species[0].attributes[1]: unknown attribute "Fins"`,
		},
		{
			name:    "unknown element",
			species: strings.Replace(emberfoxSpecies, `"element": "WATER"`, `"element": "plasma"`, 1),
			attacks: emberfoxAttacks,
			wantErr: `species[1].individuals[1].element: unknown element "plasma"`,
		},
		{
			name:    "missing individual name",
			species: strings.Replace(emberfoxSpecies, `"name": "Pebble-1", `, ``, 1),
			attacks: emberfoxAttacks,
			wantErr: "species[1].individuals[0].name: missing required field",
		},
		{
			name:    "missing magical list",
			species: emberfoxSpecies,
			attacks: `{"physical_attacks": []}`,
			wantErr: "attack catalog: magical_attacks: missing required field",
		},
		{
			name:    "unknown target",
			species: emberfoxSpecies,
			attacks: strings.Replace(emberfoxAttacks, `"target": "enemy"`, `"target": "everyone"`, 1),
			wantErr: `physical_attacks[1].target: unknown target "everyone"`,
		},
		{
			name:    "missing source",
			species: emberfoxSpecies,
			attacks: strings.Replace(emberfoxAttacks, `"source": ["Beak"], `, ``, 1),
			wantErr: "physical_attacks[1].source: missing required field",
		},
		{
			name:    "unknown magical element",
			species: emberfoxSpecies,
			attacks: strings.Replace(emberfoxAttacks, `"element": "Water"`, `"element": "Ice"`, 1),
			wantErr: `magical_attacks[1].element: unknown element "Ice"`,
		},
		{
			name:    "damage out of range",
			species: emberfoxSpecies,
			attacks: strings.Replace(emberfoxAttacks, `"damage": 15`, `"damage": -1`, 1),
			wantErr: "magical_attacks[0].damage: -1 out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load([]byte(tt.species), []byte(tt.attacks))
			require.Error(t, err)
			assert.Nil(t, d)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_TargetAliases(t *testing.T) {
	t.Parallel()

	attacks := `{
        "physical_attacks": [
            { "name": "Rest", "source": [], "target": "self" },
            { "name": "Meditate", "source": [], "target": "OneSelf" },
            { "name": "Thrash", "source": [], "target": "abs" },
            { "name": "Quake", "source": [], "target": "AllButSelf" },
            { "name": "Cheer", "source": [], "target": "ALLIES" }
        ],
        "magical_attacks": []
    }`
	d, err := Load([]byte(emberfoxSpecies), []byte(attacks))
	require.NoError(t, err)

	want := []Target{OneSelf, OneSelf, AllButSelf, AllButSelf, Allies}
	for i, tgt := range want {
		assert.Equal(t, tgt, d.Attacks.At(i).Target(), d.Attacks.At(i).Name())
	}
}

func TestLoad_DamageMultiplierLists(t *testing.T) {
	t.Parallel()

	attacks := `{
        "physical_attacks": [
            { "name": "Peck", "source": ["Beak"], "target": "Enemy",
              "strong_against": ["Legs"], "weak_against": ["Hair", "Claws"], "useless_against": ["Wings"] }
        ],
        "magical_attacks": []
    }`
	d, err := Load([]byte(emberfoxSpecies), []byte(attacks))
	require.NoError(t, err)

	p := d.Attacks.At(0).Physical
	assert.Equal(t, NewAttributeSet(Legs), p.StrongAgainst)
	assert.Equal(t, NewAttributeSet(Hair, Claws), p.WeakAgainst)
	assert.Equal(t, NewAttributeSet(Wings), p.UselessAgainst)
}

func TestMustLoadEmbedded(t *testing.T) {
	t.Parallel()

	d := MustLoadEmbedded()
	require.NotEmpty(t, d.Species)
	require.NotZero(t, d.Attacks.Len())

	// every element has a magical attack in the bundled data
	for _, e := range Elements {
		assert.NotZero(t, d.Attacks.FilterByElement(e).Len(), "no magical attack for %s", e)
	}
	// every creature can do something
	for _, c := range d.Individuals() {
		assert.NotZero(t, d.FilterAttacksForCreature(c).Len(), c.Name)
	}
}

// Not parallel: swaps the default logger.
func TestLoad_LogsOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	loadEmberfox(t)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "loaded dex"), out)
	assert.Contains(t, out, "species=2")
	assert.Contains(t, out, "individuals=3")
	assert.Contains(t, out, "attacks=4")
}

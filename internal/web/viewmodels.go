package web

import (
	"pokeclone/internal/dex"
	"pokeclone/internal/game"
)

// DexEntry is one species in the /dex listing.
type DexEntry struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	MassKg      float32          `json:"mass_kg"`
	HeightM     float32          `json:"height_m"`
	Attributes  dex.AttributeSet `json:"attributes"`
	Stats       dex.Stats        `json:"stats"`
	Individuals []CreatureEntry  `json:"individuals"`
}

// CreatureEntry describes one individual. Attacks is only filled by
// /dex/{species}/{individual}.
type CreatureEntry struct {
	Ref     dex.CreatureRef `json:"ref"`
	Name    string          `json:"name"`
	Element dex.Element     `json:"element"`
	Stats   dex.Stats       `json:"stats"`
	Sprite  string          `json:"sprite"`
	Attacks *dex.AttackSet  `json:"attacks,omitempty"`
}

// IndexViewModel feeds index.html.
type IndexViewModel struct {
	Species []DexEntry
	Team    game.TeamView
}

func dexEntries(d *dex.Dex) []DexEntry {
	out := make([]DexEntry, 0, len(d.Species))
	for i := range d.Species {
		sp := &d.Species[i]
		e := DexEntry{
			ID:         sp.ID,
			Name:       sp.Name,
			MassKg:     sp.MassKg,
			HeightM:    sp.HeightM,
			Attributes: sp.Attributes,
			Stats:      sp.Stats,
		}
		for j, c := range sp.Individuals {
			e.Individuals = append(e.Individuals, creatureEntry(dex.CreatureRef{SpeciesID: sp.ID, IndividualID: j}, c))
		}
		out = append(out, e)
	}
	return out
}

func creatureEntry(ref dex.CreatureRef, c dex.Creature) CreatureEntry {
	return CreatureEntry{
		Ref:     ref,
		Name:    c.Name,
		Element: c.Element,
		Stats:   c.Stats,
		Sprite:  "/" + c.SpritePath(),
	}
}

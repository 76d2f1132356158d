package dex

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

//go:embed data/gen1.json
var embeddedSpecies []byte

//go:embed data/attacks.json
var embeddedAttacks []byte

// MustLoadEmbedded builds the Dex from the catalog bundled with the binary.
// A broken catalog is a broken build, so it panics.
func MustLoadEmbedded() *Dex {
	d, err := Load(embeddedSpecies, embeddedAttacks)
	if err != nil {
		panic(fmt.Sprintf("dex: bundled catalog: %v", err))
	}
	return d
}

// Load parses the species and attacks documents. Any missing field, out of
// range number or unknown token fails the whole load; the error names the
// offending key.
func Load(speciesJSON, attacksJSON []byte) (*Dex, error) {
	species, err := loadSpecies(speciesJSON)
	if err != nil {
		return nil, fmt.Errorf("species catalog: %w", err)
	}
	attacks, err := loadAttacks(attacksJSON)
	if err != nil {
		return nil, fmt.Errorf("attack catalog: %w", err)
	}
	d := &Dex{Species: species, Attacks: attacks}
	slog.Info("loaded dex",
		"species", len(d.Species),
		"individuals", len(d.Individuals()),
		"attacks", attacks.Len())
	return d, nil
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	if dec.More() {
		return errors.New("decoding: trailing data after document")
	}
	return nil
}

func missing(key string) error {
	return fmt.Errorf("%s: missing required field", key)
}

func byteValue(key string, v *int) (uint8, error) {
	if v == nil {
		return 0, missing(key)
	}
	if *v < 0 || *v > math.MaxUint8 {
		return 0, fmt.Errorf("%s: %d out of range [0, 255]", key, *v)
	}
	return uint8(*v), nil
}

func optionalByte(key string, v *int) (*uint8, error) {
	if v == nil {
		return nil, nil
	}
	b, err := byteValue(key, v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func loadSpecies(b []byte) ([]Species, error) {
	var doc SpeciesFile
	if err := decodeStrict(b, &doc); err != nil {
		return nil, err
	}
	if doc.Species == nil {
		return nil, missing("species")
	}
	out := make([]Species, 0, len(*doc.Species))
	for i, sd := range *doc.Species {
		sp, err := speciesFromDocument(len(out), sd)
		if err != nil {
			return nil, fmt.Errorf("species[%d].%w", i, err)
		}
		out = append(out, sp)
	}
	return out, nil
}

func speciesFromDocument(id int, sd SpeciesDocument) (Species, error) {
	if sd.Name == nil {
		return Species{}, missing("name")
	}
	if sd.MassKg == nil {
		return Species{}, missing("mass_kg")
	}
	if sd.HeightM == nil {
		return Species{}, missing("height_m")
	}
	if sd.Attributes == nil {
		return Species{}, missing("attributes")
	}
	attrs, err := parseAttributes("attributes", *sd.Attributes)
	if err != nil {
		return Species{}, err
	}
	if sd.Stats == nil {
		return Species{}, missing("stats")
	}
	stats, err := statsFromDocument(*sd.Stats)
	if err != nil {
		return Species{}, err
	}
	if sd.Individuals == nil {
		return Species{}, missing("individuals")
	}
	sp := Species{
		ID:          id,
		Name:        *sd.Name,
		MassKg:      float32(*sd.MassKg),
		HeightM:     float32(*sd.HeightM),
		Attributes:  attrs,
		Stats:       stats,
		Individuals: make([]Creature, 0, len(*sd.Individuals)),
	}
	for j, ind := range *sd.Individuals {
		if ind.Name == nil {
			return Species{}, missing(fmt.Sprintf("individuals[%d].name", j))
		}
		if ind.Element == nil {
			return Species{}, missing(fmt.Sprintf("individuals[%d].element", j))
		}
		e, err := ParseElement(*ind.Element)
		if err != nil {
			return Species{}, fmt.Errorf("individuals[%d].element: %w", j, err)
		}
		sp.Individuals = append(sp.Individuals, newCreature(*ind.Name, e, id, stats))
	}
	return sp, nil
}

func statsFromDocument(sd StatsDocument) (Stats, error) {
	s := Stats{Dodge: DefaultDodge, Accuracy: DefaultAccuracy}
	var err error
	if s.HP, err = byteValue("stats.hp", sd.HP); err != nil {
		return Stats{}, err
	}
	if s.Attack, err = byteValue("stats.attack", sd.Attack); err != nil {
		return Stats{}, err
	}
	if s.Defense, err = byteValue("stats.defense", sd.Defense); err != nil {
		return Stats{}, err
	}
	if s.Speed, err = byteValue("stats.speed", sd.Speed); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func loadAttacks(b []byte) (*Attacks, error) {
	var doc AttacksFile
	if err := decodeStrict(b, &doc); err != nil {
		return nil, err
	}
	if doc.PhysicalAttacks == nil {
		return nil, missing("physical_attacks")
	}
	if doc.MagicalAttacks == nil {
		return nil, missing("magical_attacks")
	}
	list := make([]Attack, 0, len(*doc.PhysicalAttacks)+len(*doc.MagicalAttacks))
	for i, pd := range *doc.PhysicalAttacks {
		p, err := physicalFromDocument(pd)
		if err != nil {
			return nil, fmt.Errorf("physical_attacks[%d].%w", i, err)
		}
		list = append(list, NewPhysical(p))
	}
	for i, md := range *doc.MagicalAttacks {
		m, err := magicalFromDocument(md)
		if err != nil {
			return nil, fmt.Errorf("magical_attacks[%d].%w", i, err)
		}
		list = append(list, NewMagical(m))
	}
	return &Attacks{list: list}, nil
}

func physicalFromDocument(pd PhysicalAttackDocument) (PhysicalAttack, error) {
	if pd.Name == nil {
		return PhysicalAttack{}, missing("name")
	}
	if pd.Source == nil {
		return PhysicalAttack{}, missing("source")
	}
	source, err := parseAttributes("source", *pd.Source)
	if err != nil {
		return PhysicalAttack{}, err
	}
	if pd.Target == nil {
		return PhysicalAttack{}, missing("target")
	}
	target, err := ParseTarget(*pd.Target)
	if err != nil {
		return PhysicalAttack{}, fmt.Errorf("target: %w", err)
	}
	damage, err := optionalByte("damage", pd.Damage)
	if err != nil {
		return PhysicalAttack{}, err
	}
	p := PhysicalAttack{
		Name:   *pd.Name,
		Source: source,
		Target: target,
		Damage: damage,
	}
	if p.StrongAgainst, err = parseAttributes("strong_against", pd.StrongAgainst); err != nil {
		return PhysicalAttack{}, err
	}
	if p.WeakAgainst, err = parseAttributes("weak_against", pd.WeakAgainst); err != nil {
		return PhysicalAttack{}, err
	}
	if p.UselessAgainst, err = parseAttributes("useless_against", pd.UselessAgainst); err != nil {
		return PhysicalAttack{}, err
	}
	return p, nil
}

func magicalFromDocument(md MagicalAttackDocument) (MagicalAttack, error) {
	if md.Name == nil {
		return MagicalAttack{}, missing("name")
	}
	if md.Element == nil {
		return MagicalAttack{}, missing("element")
	}
	e, err := ParseElement(*md.Element)
	if err != nil {
		return MagicalAttack{}, fmt.Errorf("element: %w", err)
	}
	damage, err := optionalByte("damage", md.Damage)
	if err != nil {
		return MagicalAttack{}, err
	}
	return MagicalAttack{Name: *md.Name, Element: e, Damage: damage}, nil
}

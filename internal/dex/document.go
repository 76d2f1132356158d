package dex

// The types below describe the two catalog files exactly as they appear on
// disk. Required fields are pointers so that a missing key can be told apart
// from a zero value. cmd/schema reflects over them to publish JSON schemas.

// SpeciesFile is the root of the species catalog.
type SpeciesFile struct {
	Species *[]SpeciesDocument `json:"species" jsonschema:"title=Species,description=Every species in load order. The position is the species id."`
}

// SpeciesDocument is one species entry.
type SpeciesDocument struct {
	Name        *string               `json:"name" jsonschema:"minLength=1"`
	MassKg      *float64              `json:"mass_kg" jsonschema:"minimum=0,description=Mass in kilograms"`
	HeightM     *float64              `json:"height_m" jsonschema:"minimum=0,description=Height in meters"`
	Attributes  *[]string             `json:"attributes" jsonschema:"description=Physical attributes (case-insensitive)"`
	Stats       *StatsDocument        `json:"stats"`
	Individuals *[]IndividualDocument `json:"individuals"`
}

// StatsDocument holds base stats; each value fits in a byte.
type StatsDocument struct {
	HP      *int `json:"hp" jsonschema:"minimum=0,maximum=255"`
	Attack  *int `json:"attack" jsonschema:"minimum=0,maximum=255"`
	Defense *int `json:"defense" jsonschema:"minimum=0,maximum=255"`
	Speed   *int `json:"speed" jsonschema:"minimum=0,maximum=255"`
}

// IndividualDocument is one creature of a species.
type IndividualDocument struct {
	Name    *string `json:"name" jsonschema:"minLength=1"`
	Element *string `json:"element" jsonschema:"enum=Fire,enum=Air,enum=Earth,enum=Water"`
}

// AttacksFile is the root of the attack catalog.
type AttacksFile struct {
	PhysicalAttacks *[]PhysicalAttackDocument `json:"physical_attacks"`
	MagicalAttacks  *[]MagicalAttackDocument  `json:"magical_attacks"`
}

// PhysicalAttackDocument is an attack gated by attributes.
type PhysicalAttackDocument struct {
	Name           *string   `json:"name" jsonschema:"minLength=1"`
	Source         *[]string `json:"source" jsonschema:"description=Attributes all required to use the attack"`
	Target         *string   `json:"target" jsonschema:"enum=Enemy,enum=Enemies,enum=Ally,enum=Allies,enum=All,enum=OneSelf,enum=Self,enum=AllButSelf,enum=Abs"`
	Damage         *int      `json:"damage,omitempty" jsonschema:"minimum=0,maximum=255"`
	StrongAgainst  []string  `json:"strong_against,omitempty"`
	WeakAgainst    []string  `json:"weak_against,omitempty"`
	UselessAgainst []string  `json:"useless_against,omitempty"`
}

// MagicalAttackDocument is an attack gated by element.
type MagicalAttackDocument struct {
	Name    *string `json:"name" jsonschema:"minLength=1"`
	Element *string `json:"element" jsonschema:"enum=Fire,enum=Air,enum=Earth,enum=Water"`
	Damage  *int    `json:"damage,omitempty" jsonschema:"minimum=0,maximum=255"`
}

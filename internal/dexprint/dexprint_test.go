package dexprint

import (
	"bytes"
	"testing"

	"pokeclone/internal/dex"
)

func TestGenerate_NilDex(t *testing.T) {
	b, err := Generate(nil, "Test")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if b != nil {
		t.Error("expected nil PDF for nil dex")
	}
}

func TestGenerate_EmbeddedDex(t *testing.T) {
	d := dex.MustLoadEmbedded()
	b, err := Generate(d, "Generation 1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(b) < 1000 {
		t.Errorf("PDF too short: %d bytes", len(b))
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
}

func TestGenerate_ManyPages(t *testing.T) {
	// Enough individuals to overflow the first page.
	base := dex.Stats{HP: 20, Attack: 20, Defense: 20, Speed: 20, Accuracy: 100}
	var species []dex.Species
	for i := 0; i < 6; i++ {
		sp := dex.Species{ID: i, Name: "Blob", Stats: base}
		for _, e := range dex.Elements {
			sp.Individuals = append(sp.Individuals, dex.Creature{Name: "Blob " + e.String(), Element: e, SpeciesID: i, Stats: base.WithElement(e)})
		}
		species = append(species, sp)
	}
	d := &dex.Dex{Species: species, Attacks: dex.NewAttacks()}

	b, err := Generate(d, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
}

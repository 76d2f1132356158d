package game

import (
	"encoding/json"
	"errors"
	"testing"

	"pokeclone/internal/dex"
)

func TestTeamRecruit(t *testing.T) {
	d := loadArena(t)
	var team Team

	m, err := team.Recruit(d, refEmberfox, "Sparky")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.HP != 40 {
		t.Errorf("Expected full hp 40, got %d", m.HP)
	}
	if got := m.Name(d); got != "Sparky" {
		t.Errorf("Expected surname 'Sparky', got '%s'", got)
	}

	m, err = team.Recruit(d, refPebble, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Surname != nil {
		t.Error("Expected no surname")
	}
	if got := m.Name(d); got != "Pebble" {
		t.Errorf("Expected creature name 'Pebble', got '%s'", got)
	}
	if got := m.Sprite(d); got != "textures/creatures/pebble.gif" {
		t.Errorf("Unexpected sprite path %s", got)
	}

	_, err = team.Recruit(d, dex.CreatureRef{SpeciesID: 9}, "")
	if !errors.Is(err, dex.ErrUnknownCreature) {
		t.Errorf("Expected ErrUnknownCreature, got %v", err)
	}
	if len(team) != 2 {
		t.Errorf("Expected 2 members, got %d", len(team))
	}
}

func TestTeamFull(t *testing.T) {
	d := loadArena(t)
	var team Team
	for i := 0; i < MaxTeamSize; i++ {
		if _, err := team.Recruit(d, refPebble, ""); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if _, err := team.Recruit(d, refPebble, ""); !errors.Is(err, ErrTeamFull) {
		t.Errorf("Expected ErrTeamFull, got %v", err)
	}
}

func TestTeamAliveAndHeal(t *testing.T) {
	d := loadArena(t)
	team := Team{
		{CreatureID: refEmberfox, HP: 0},
		{CreatureID: refCinder, HP: 12},
		{CreatureID: refPebble, HP: 0},
	}
	if got := team.Alive(); got != 1 {
		t.Errorf("Expected 1 alive, got %d", got)
	}
	if got := team.FirstAlive(); got != 1 {
		t.Errorf("Expected first alive 1, got %d", got)
	}

	team.Heal(d)
	for i, m := range team {
		if m.HP != m.MaxHP(d) {
			t.Errorf("Member %d: expected hp %d, got %d", i, m.MaxHP(d), m.HP)
		}
	}
	if (Team{}).FirstAlive() != -1 {
		t.Error("Expected -1 for an empty team")
	}
}

func TestTeamValidate(t *testing.T) {
	d := loadArena(t)
	tests := []struct {
		name    string
		team    Team
		wantErr bool
	}{
		{"valid", Team{{CreatureID: refEmberfox, HP: 40}}, false},
		{"empty", Team{}, false},
		{"dangling ref", Team{{CreatureID: dex.CreatureRef{SpeciesID: 1, IndividualID: 3}, HP: 1}}, true},
		{"hp above max", Team{{CreatureID: refPebble, HP: 31}}, true},
		{"too many", make(Team, MaxTeamSize+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.team.Validate(d)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFilterAttacksForTeamMember(t *testing.T) {
	d := loadArena(t)
	m := TeamMember{CreatureID: refEmberfox, HP: 40}
	got := d.FilterAttacksForTeamMember(m).Names()
	want := []string{"Scratch", "Tackle", "Groom", "Tail Whip", "Fireball"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, got[i])
		}
	}
}

func TestTeamMemberJSONKeepsNullSurname(t *testing.T) {
	b, err := json.Marshal(TeamMember{CreatureID: refPebble, HP: 7})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := `{"surname":null,"creature_id":[1,0],"hp":7}`
	if string(b) != want {
		t.Errorf("Expected %s, got %s", want, b)
	}
}

package game

import (
	"fmt"

	"pokeclone/internal/dex"
)

// MemberView is a team member as shown to the player.
type MemberView struct {
	Index    int         `json:"index"`
	Name     string      `json:"name"`
	Creature string      `json:"creature"`
	Element  dex.Element `json:"element"`
	HP       uint8       `json:"hp"`
	MaxHP    uint8       `json:"max_hp"`
	Sprite   string      `json:"sprite"`
	Active   bool        `json:"active,omitempty"`
	Fainted  bool        `json:"fainted,omitempty"`
}

type FoeView struct {
	Name    string      `json:"name"`
	Element dex.Element `json:"element"`
	HP      uint8       `json:"hp"`
	MaxHP   uint8       `json:"max_hp"`
	Sprite  string      `json:"sprite"`
}

// Choice is one entry of the current menu. Index is the value to send back
// with a choose action.
type Choice struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type FightView struct {
	State   FightState   `json:"state"`
	Turn    int          `json:"turn"`
	Foe     FoeView      `json:"foe"`
	Team    []MemberView `json:"team"`
	Choices []Choice     `json:"choices,omitempty"`
	Log     []string     `json:"log"`
}

type TeamView struct {
	Members []MemberView `json:"members"`
	Bag     Bag          `json:"bag"`
	Level   int          `json:"level"`
	Coords  [2]int       `json:"coords"`
}

func memberViews(d *dex.Dex, team Team, active int) []MemberView {
	out := make([]MemberView, 0, len(team))
	for i, m := range team {
		c := m.Creature(d)
		out = append(out, MemberView{
			Index:    i,
			Name:     m.Name(d),
			Creature: c.Name,
			Element:  c.Element,
			HP:       m.HP,
			MaxHP:    c.Stats.HP,
			Sprite:   c.SpritePath(),
			Active:   i == active,
			Fainted:  m.Fainted(),
		})
	}
	return out
}

// fightView must be called with s.mu held.
func (s *Session) fightView() FightView {
	f := s.fight
	d := s.engine.Dex
	return FightView{
		State: f.State,
		Turn:  f.Turn,
		Foe: FoeView{
			Name:    f.Foe.Creature.Name,
			Element: f.Foe.Creature.Element,
			HP:      f.Foe.HP,
			MaxHP:   f.Foe.Creature.Stats.HP,
			Sprite:  f.Foe.Creature.SpritePath(),
		},
		Team:    memberViews(d, s.team, f.Active),
		Choices: choices(d, f, s.team, s.bag),
		Log:     append([]string(nil), f.Log...),
	}
}

func choices(d *dex.Dex, f *Fight, team Team, bag Bag) []Choice {
	var out []Choice
	switch f.State {
	case MainAction:
		for _, k := range []ActionKind{ActAttack, ActItem, ActSwitch, ActSource, ActFlee} {
			out = append(out, Choice{Index: int(k), Label: k.String()})
		}
	case AttackChoice:
		for i, a := range d.FilterAttacksForTeamMember(team[f.Active]).All() {
			out = append(out, Choice{Index: i, Label: a.Name()})
		}
	case ItemChoice:
		for i, it := range Items {
			out = append(out, Choice{Index: i, Label: fmt.Sprintf("%s x%d", it.Name, bag[it.Name])})
		}
	case SourceChoice:
		if m := team[f.Active]; !m.Fainted() {
			out = append(out, Choice{Index: f.Active, Label: m.Name(d)})
		}
	case TargetChoice:
		for i, idx := range TargetCandidates(team) {
			out = append(out, Choice{Index: i, Label: team[idx].Name(d)})
		}
	case SwitchChoice:
		for i, idx := range SwitchCandidates(f, team) {
			out = append(out, Choice{Index: i, Label: team[idx].Name(d)})
		}
	}
	return out
}

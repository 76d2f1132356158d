package game

import (
	"errors"
	"fmt"

	"pokeclone/internal/dex"
)

// MaxTeamSize is the number of creatures a player can carry.
const MaxTeamSize = 6

var ErrTeamFull = errors.New("team is full")

// TeamMember is a creature recruited by the player. Max hp is never stored:
// it always comes from the Dex.
type TeamMember struct {
	Surname    *string         `json:"surname"`
	CreatureID dex.CreatureRef `json:"creature_id"`
	HP         uint8           `json:"hp"`
}

// Ref implements dex.Member.
func (m TeamMember) Ref() dex.CreatureRef { return m.CreatureID }

// Creature dereferences the member into the Dex. It panics on a dangling
// reference.
func (m TeamMember) Creature(d *dex.Dex) dex.Creature {
	return d.GetCreature(m.CreatureID)
}

// Name is the surname if the player gave one, the creature name otherwise.
func (m TeamMember) Name(d *dex.Dex) string {
	if m.Surname != nil && *m.Surname != "" {
		return *m.Surname
	}
	return m.Creature(d).Name
}

func (m TeamMember) MaxHP(d *dex.Dex) uint8 {
	return m.Creature(d).Stats.HP
}

func (m TeamMember) Sprite(d *dex.Dex) string {
	return m.Creature(d).SpritePath()
}

func (m TeamMember) Fainted() bool { return m.HP == 0 }

// Team is the ordered roster of the player.
type Team []TeamMember

// Recruit appends a member at full health. The reference is checked against
// the Dex.
func (t *Team) Recruit(d *dex.Dex, ref dex.CreatureRef, surname string) (TeamMember, error) {
	if len(*t) >= MaxTeamSize {
		return TeamMember{}, ErrTeamFull
	}
	c, err := d.LookupCreature(ref)
	if err != nil {
		return TeamMember{}, fmt.Errorf("recruiting %s: %w", ref, err)
	}
	m := TeamMember{CreatureID: ref, HP: c.Stats.HP}
	if surname != "" {
		m.Surname = &surname
	}
	*t = append(*t, m)
	return m, nil
}

// Alive counts members that can still fight.
func (t Team) Alive() int {
	n := 0
	for _, m := range t {
		if !m.Fainted() {
			n++
		}
	}
	return n
}

// FirstAlive returns the index of the first member able to fight, or -1.
func (t Team) FirstAlive() int {
	for i, m := range t {
		if !m.Fainted() {
			return i
		}
	}
	return -1
}

// Heal restores every member to max hp.
func (t Team) Heal(d *dex.Dex) {
	for i := range t {
		t[i].HP = t[i].MaxHP(d)
	}
}

// Validate checks that every member resolves in d and that hp does not
// exceed max hp. Used on data coming back from a save.
func (t Team) Validate(d *dex.Dex) error {
	if len(t) > MaxTeamSize {
		return fmt.Errorf("%w: %d members", ErrTeamFull, len(t))
	}
	for i, m := range t {
		c, err := d.LookupCreature(m.CreatureID)
		if err != nil {
			return fmt.Errorf("team[%d]: %w", i, err)
		}
		if m.HP > c.Stats.HP {
			return fmt.Errorf("team[%d]: hp %d above max %d", i, m.HP, c.Stats.HP)
		}
	}
	return nil
}

func (t Team) clone() Team {
	out := make(Team, len(t))
	for i, m := range t {
		out[i] = m
		if m.Surname != nil {
			s := *m.Surname
			out[i].Surname = &s
		}
	}
	return out
}

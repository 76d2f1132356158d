package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"pokeclone/internal/dex"
)

// Options tune a new Session.
type Options struct {
	// EncounterRate is compared against a random byte on each step.
	EncounterRate uint8
	// Rand drives encounters and accuracy rolls. Nil uses the package
	// level generator.
	Rand *rand.Rand
}

// Session is the whole mutable state of one player: team, bag, position
// and the fight in progress. Every method is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	engine    Engine
	encounter Encounter
	team      Team
	bag       Bag
	fight     *Fight
	level     int
	coords    [2]int
}

func NewSession(d *dex.Dex, opts Options) *Session {
	return &Session{
		engine:    Engine{Dex: d, Rand: opts.Rand},
		encounter: Encounter{Rate: opts.EncounterRate, Rand: opts.Rand},
		bag:       StarterBag(),
	}
}

func (s *Session) Dex() *dex.Dex { return s.engine.Dex }

// Recruit adds a creature of the Dex to the team at full health.
func (s *Session) Recruit(ref dex.CreatureRef, surname string) (TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFight() {
		return TeamMember{}, fmt.Errorf("%w: cannot recruit during a fight", ErrInvalidAction)
	}
	return s.team.Recruit(s.engine.Dex, ref, surname)
}

func (s *Session) inFight() bool {
	return s.fight != nil && !s.fight.State.Over()
}

// StartWildFight installs c as the foe and sends the first member able to
// fight.
func (s *Session) StartWildFight(c dex.Creature) (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startWildFight(c)
}

func (s *Session) startWildFight(c dex.Creature) (FightView, error) {
	if s.inFight() {
		return FightView{}, fmt.Errorf("%w: a fight is already in progress", ErrInvalidAction)
	}
	active := s.team.FirstAlive()
	if active < 0 {
		return FightView{}, ErrNoTeam
	}
	f := newWildFight(c, active)
	if err := s.engine.Begin(f, s.team); err != nil {
		return FightView{}, err
	}
	s.fight = f
	slog.Debug("wild fight started", "foe", c.Name, "active", active)
	return s.fightView(), nil
}

// StartTrainerFight is reserved for trainer battles, which have no rules
// yet.
func (s *Session) StartTrainerFight() error {
	return fmt.Errorf("trainer fight: %w", ErrNotSupported)
}

// Act feeds one action to the fight in progress.
func (s *Session) Act(a Action) (StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFight() {
		return StepResult{}, ErrNoFight
	}
	res, err := s.engine.Step(s.fight, s.team, s.bag, a)
	if err != nil {
		return res, err
	}
	if res.State == Lose {
		// Back to the last healing spot with a rested team.
		s.team.Heal(s.engine.Dex)
		s.coords = [2]int{}
	}
	if res.State.Over() {
		slog.Debug("fight over", "state", res.State, "foe", s.fight.Foe.Creature.Name, "turns", s.fight.Turn)
	}
	return res, nil
}

// WalkResult is the outcome of one step on the map.
type WalkResult struct {
	Coords [2]int     `json:"coords"`
	Fight  *FightView `json:"fight,omitempty"`
}

// Walk moves the player by (dx, dy). In herbs, the step may start a wild
// fight.
func (s *Session) Walk(dx, dy int, herbs bool) (WalkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFight() {
		return WalkResult{}, fmt.Errorf("%w: cannot walk during a fight", ErrInvalidAction)
	}
	s.coords[0] += dx
	s.coords[1] += dy
	res := WalkResult{Coords: s.coords}
	if !herbs || s.team.Alive() == 0 {
		return res, nil
	}
	c, ok, err := s.encounter.Step(s.engine.Dex)
	if err != nil {
		return res, fmt.Errorf("encounter: %w", err)
	}
	if !ok {
		return res, nil
	}
	v, err := s.startWildFight(c)
	if err != nil {
		return res, err
	}
	res.Fight = &v
	return res, nil
}

// Fight describes the current or last fight.
func (s *Session) Fight() (FightView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fight == nil {
		return FightView{}, ErrNoFight
	}
	return s.fightView(), nil
}

func (s *Session) Team() TeamView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TeamView{
		Members: memberViews(s.engine.Dex, s.team, -1),
		Bag:     s.bagCopy(),
		Level:   s.level,
		Coords:  s.coords,
	}
}

func (s *Session) bagCopy() Bag {
	out := make(Bag, len(s.bag))
	for k, v := range s.bag {
		out[k] = v
	}
	return out
}

// Progress is the persistent part of a session.
type Progress struct {
	Level  int
	Coords [2]int
	Team   Team
}

// Progress snapshots what a save keeps.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{Level: s.level, Coords: s.coords, Team: s.team.clone()}
}

// Restore replaces the session progress after checking the team against
// the Dex. Any fight is dropped.
func (s *Session) Restore(p Progress) error {
	if err := p.Team.Validate(s.engine.Dex); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = p.Level
	s.coords = p.Coords
	s.team = p.Team.clone()
	s.fight = nil
	return nil
}

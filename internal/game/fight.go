package game

import (
	"errors"
	"fmt"
	"strings"

	"pokeclone/internal/dex"
)

var (
	// ErrInvalidAction is returned when an action does not apply to the
	// current fight state.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotSupported marks gameplay that has no implementation yet.
	ErrNotSupported = errors.New("not yet supported")
	ErrNoFight      = errors.New("no fight in progress")
	ErrNoTeam       = errors.New("no creature able to fight")
)

// FightState is the phase of a fight.
type FightState uint8

const (
	// Start is the setup phase before the first menu.
	Start FightState = iota
	// MainAction: attack, use an item, switch, or flee.
	MainAction
	// SourceChoice: which creature on the field acts.
	SourceChoice
	// AttackChoice: which attack to use.
	AttackChoice
	// ItemChoice: which item to use.
	ItemChoice
	// TargetChoice: who receives the attack or item.
	TargetChoice
	// SwitchChoice: which creature replaces the active one.
	SwitchChoice
	Win
	Lose
	// Fled means the player went back to the overworld.
	Fled
)

var fightStateNames = [...]string{
	Start:        "Start",
	MainAction:   "MainAction",
	SourceChoice: "SourceChoice",
	AttackChoice: "AttackChoice",
	ItemChoice:   "ItemChoice",
	TargetChoice: "TargetChoice",
	SwitchChoice: "SwitchChoice",
	Win:          "Win",
	Lose:         "Lose",
	Fled:         "Fled",
}

func (s FightState) String() string {
	if int(s) < len(fightStateNames) {
		return fightStateNames[s]
	}
	return fmt.Sprintf("FightState(%d)", uint8(s))
}

func (s FightState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseFightState resolves a state name as printed by String.
func ParseFightState(s string) (FightState, error) {
	for i, name := range fightStateNames {
		if name == s {
			return FightState(i), nil
		}
	}
	return 0, fmt.Errorf("unknown fight state %q", s)
}

func (s *FightState) UnmarshalText(b []byte) error {
	v, err := ParseFightState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Over reports whether the fight has ended.
func (s FightState) Over() bool {
	return s == Win || s == Lose || s == Fled
}

// ActionKind is a player input during a fight.
type ActionKind uint8

const (
	ActAttack ActionKind = iota
	ActItem
	ActSwitch
	ActSource
	ActFlee
	// ActChoose picks entry Index of the list offered by the current state.
	ActChoose
	// ActBack returns to the main menu.
	ActBack
)

var actionNames = [...]string{
	ActAttack: "attack",
	ActItem:   "item",
	ActSwitch: "switch",
	ActSource: "source",
	ActFlee:   "flee",
	ActChoose: "choose",
	ActBack:   "back",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// ParseActionKind resolves an action name, ignoring case.
func ParseActionKind(s string) (ActionKind, error) {
	for i, name := range actionNames {
		if strings.EqualFold(name, s) {
			return ActionKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, s)
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(b []byte) error {
	v, err := ParseActionKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Action is one player input. Index is only read by ActChoose.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Index int        `json:"index"`
}

// FightKind tells wild encounters from trainer battles.
type FightKind uint8

const (
	Wild FightKind = iota
	Trainer
)

// Foe is the opposing combatant.
type Foe struct {
	Creature dex.Creature `json:"creature"`
	HP       uint8        `json:"hp"`
}

type pendingKind uint8

const (
	pendingNone pendingKind = iota
	pendingAttack
	pendingItem
)

// pending is an action waiting for its target.
type pending struct {
	kind   pendingKind
	attack dex.Attack
	item   Item
}

// Fight is the state of one battle.
type Fight struct {
	State  FightState
	Kind   FightKind
	Foe    Foe
	Active int
	Turn   int
	Log    []string

	pending pending
	// forced is set when the active member fainted and must be replaced
	// before the fight goes on.
	forced bool
}

func newWildFight(foe dex.Creature, active int) *Fight {
	return &Fight{
		State:  Start,
		Kind:   Wild,
		Foe:    Foe{Creature: foe, HP: foe.Stats.HP},
		Active: active,
	}
}

func (f *Fight) logf(format string, args ...any) {
	f.Log = append(f.Log, fmt.Sprintf(format, args...))
}

func invalid(st FightState, a Action) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidAction, a.Kind, st)
}

package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"pokeclone/internal/dex"
)

// Engine resolves fights against the Dex. It is not safe for concurrent use
// because of Rand; every Session owns one.
type Engine struct {
	Dex  *dex.Dex
	Rand *rand.Rand
}

// StepResult is the outcome of one action: the new state and the events it
// produced, oldest first.
type StepResult struct {
	State  FightState `json:"state"`
	Events []string   `json:"events"`
}

func (e *Engine) intN(n int) int {
	if e.Rand == nil {
		return rand.IntN(n)
	}
	return e.Rand.IntN(n)
}

// Begin moves a fresh fight from Start to MainAction.
func (e *Engine) Begin(f *Fight, team Team) error {
	if f.State != Start {
		return fmt.Errorf("%w: fight already started (%s)", ErrInvalidAction, f.State)
	}
	if f.Active < 0 || f.Active >= len(team) || team[f.Active].Fainted() {
		return ErrNoTeam
	}
	f.logf("A wild %s appeared!", f.Foe.Creature.Name)
	f.logf("Go, %s!", team[f.Active].Name(e.Dex))
	f.State = MainAction
	return nil
}

// Step applies one player action. On error the fight is left untouched.
func (e *Engine) Step(f *Fight, team Team, bag Bag, a Action) (StepResult, error) {
	mark := len(f.Log)
	var err error
	switch f.State {
	case MainAction:
		err = e.mainAction(f, team, a)
	case SourceChoice:
		err = e.sourceChoice(f, team, a)
	case AttackChoice:
		err = e.attackChoice(f, team, a)
	case ItemChoice:
		err = e.itemChoice(f, team, bag, a)
	case TargetChoice:
		err = e.targetChoice(f, team, bag, a)
	case SwitchChoice:
		err = e.switchChoice(f, team, a)
	default:
		err = invalid(f.State, a)
	}
	if err != nil {
		return StepResult{State: f.State}, err
	}
	return StepResult{State: f.State, Events: append([]string(nil), f.Log[mark:]...)}, nil
}

func (e *Engine) mainAction(f *Fight, team Team, a Action) error {
	switch a.Kind {
	case ActAttack:
		f.State = AttackChoice
	case ActItem:
		f.State = ItemChoice
	case ActSwitch:
		if len(SwitchCandidates(f, team)) == 0 {
			return fmt.Errorf("%w: no other creature can fight", ErrInvalidAction)
		}
		f.State = SwitchChoice
	case ActSource:
		f.State = SourceChoice
	case ActFlee:
		f.logf("Got away safely!")
		f.State = Fled
	default:
		return invalid(f.State, a)
	}
	return nil
}

// back handles ActBack from any sub-menu.
func back(f *Fight, a Action) bool {
	if a.Kind != ActBack || f.forced {
		return false
	}
	f.pending = pending{}
	f.State = MainAction
	return true
}

func (e *Engine) sourceChoice(f *Fight, team Team, a Action) error {
	if back(f, a) {
		return nil
	}
	if a.Kind != ActChoose {
		return invalid(f.State, a)
	}
	// Only the active member is on the field; changing it is a switch.
	if a.Index != f.Active {
		return fmt.Errorf("%w: source %d is not on the field, switch instead", ErrInvalidAction, a.Index)
	}
	if team[f.Active].Fainted() {
		return fmt.Errorf("%w: %s cannot fight", ErrInvalidAction, team[f.Active].Name(e.Dex))
	}
	f.State = MainAction
	return nil
}

func (e *Engine) attackChoice(f *Fight, team Team, a Action) error {
	if back(f, a) {
		return nil
	}
	if a.Kind != ActChoose {
		return invalid(f.State, a)
	}
	attacks := e.Dex.FilterAttacksForTeamMember(team[f.Active])
	if a.Index < 0 || a.Index >= attacks.Len() {
		return fmt.Errorf("%w: attack %d out of range [0, %d)", ErrInvalidAction, a.Index, attacks.Len())
	}
	atk := attacks.At(a.Index)
	if atk.Target() == dex.Ally && team.Alive() > 1 {
		f.pending = pending{kind: pendingAttack, attack: atk}
		f.State = TargetChoice
		return nil
	}
	e.resolveTurn(f, team, true, func() { e.playerAttack(f, team, atk, f.Active) })
	return nil
}

func (e *Engine) itemChoice(f *Fight, team Team, bag Bag, a Action) error {
	if back(f, a) {
		return nil
	}
	if a.Kind != ActChoose {
		return invalid(f.State, a)
	}
	if a.Index < 0 || a.Index >= len(Items) {
		return fmt.Errorf("%w: item %d out of range [0, %d)", ErrInvalidAction, a.Index, len(Items))
	}
	it := Items[a.Index]
	if bag[it.Name] <= 0 {
		return fmt.Errorf("%w: no %s left", ErrInvalidAction, it.Name)
	}
	if team.Alive() > 1 {
		f.pending = pending{kind: pendingItem, item: it}
		f.State = TargetChoice
		return nil
	}
	bag.take(it.Name)
	e.resolveTurn(f, team, false, func() { e.useItem(f, team, it, f.Active) })
	return nil
}

func (e *Engine) targetChoice(f *Fight, team Team, bag Bag, a Action) error {
	if back(f, a) {
		return nil
	}
	if a.Kind != ActChoose {
		return invalid(f.State, a)
	}
	targets := TargetCandidates(team)
	if a.Index < 0 || a.Index >= len(targets) {
		return fmt.Errorf("%w: target %d out of range [0, %d)", ErrInvalidAction, a.Index, len(targets))
	}
	target := targets[a.Index]
	p := f.pending
	f.pending = pending{}
	switch p.kind {
	case pendingAttack:
		e.resolveTurn(f, team, true, func() { e.playerAttack(f, team, p.attack, target) })
	case pendingItem:
		bag.take(p.item.Name)
		e.resolveTurn(f, team, false, func() { e.useItem(f, team, p.item, target) })
	default:
		return fmt.Errorf("%w: nothing to target", ErrInvalidAction)
	}
	return nil
}

func (e *Engine) switchChoice(f *Fight, team Team, a Action) error {
	if back(f, a) {
		return nil
	}
	if a.Kind != ActChoose {
		return invalid(f.State, a)
	}
	cands := SwitchCandidates(f, team)
	if a.Index < 0 || a.Index >= len(cands) {
		return fmt.Errorf("%w: switch %d out of range [0, %d)", ErrInvalidAction, a.Index, len(cands))
	}
	next := cands[a.Index]
	if f.forced {
		f.forced = false
		f.Active = next
		f.logf("Go, %s!", team[next].Name(e.Dex))
		f.State = MainAction
		return nil
	}
	e.resolveTurn(f, team, false, func() {
		f.logf("%s, come back! Go, %s!", team[f.Active].Name(e.Dex), team[next].Name(e.Dex))
		f.Active = next
	})
	return nil
}

// SwitchCandidates lists the team indices that could replace the active
// member.
func SwitchCandidates(f *Fight, team Team) []int {
	var out []int
	for i, m := range team {
		if i != f.Active && !m.Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// TargetCandidates lists the team indices the pending action may target.
func TargetCandidates(team Team) []int {
	var out []int
	for i, m := range team {
		if !m.Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// resolveTurn runs the player's move and the foe's answer in speed order.
// Items and switches always go first; attacks follow the speed stat, the
// player winning ties.
func (e *Engine) resolveTurn(f *Fight, team Team, speedOrdered bool, player func()) {
	f.Turn++
	playerFirst := true
	if speedOrdered {
		mine := team[f.Active].Creature(e.Dex).Stats.Speed
		playerFirst = mine >= f.Foe.Creature.Stats.Speed
	}
	if playerFirst {
		player()
		if f.Foe.HP > 0 && !team[f.Active].Fainted() {
			e.foeTurn(f, team)
		}
	} else {
		e.foeTurn(f, team)
		if !team[f.Active].Fainted() {
			player()
		}
	}
	e.settle(f, team)
}

func (e *Engine) settle(f *Fight, team Team) {
	switch {
	case f.Foe.HP == 0:
		f.logf("The wild %s fainted!", f.Foe.Creature.Name)
		f.State = Win
	case team.Alive() == 0:
		f.logf("You have no creature left to fight!")
		f.State = Lose
	case team[f.Active].Fainted():
		f.logf("%s fainted!", team[f.Active].Name(e.Dex))
		f.forced = true
		f.State = SwitchChoice
	default:
		f.State = MainAction
	}
}

func (e *Engine) playerAttack(f *Fight, team Team, atk dex.Attack, target int) {
	user := team[f.Active].Creature(e.Dex)
	name := team[f.Active].Name(e.Dex)
	switch atk.Target() {
	case dex.Enemy, dex.Enemies, dex.AllButSelf:
		f.logf("%s used %s!", name, atk.Name())
		f.Foe.HP = e.strike(f, user, f.Foe.Creature, atk, f.Foe.HP, f.Foe.Creature.Name)
	case dex.All:
		f.logf("%s used %s!", name, atk.Name())
		f.Foe.HP = e.strike(f, user, f.Foe.Creature, atk, f.Foe.HP, f.Foe.Creature.Name)
		team[f.Active].HP = e.strike(f, user, user, atk, team[f.Active].HP, name)
	default:
		f.logf("%s used %s on %s. Nothing happened.", name, atk.Name(), team[target].Name(e.Dex))
	}
}

func (e *Engine) useItem(f *Fight, team Team, it Item, target int) {
	m := &team[target]
	before := m.HP
	maxHP := m.MaxHP(e.Dex)
	m.HP = uint8(min(int(m.HP)+int(it.Heal), int(maxHP)))
	f.logf("Used %s on %s: +%d HP.", it.Name, m.Name(e.Dex), m.HP-before)
}

// FoeAttack is the attack the wild creature always answers with: the first
// one of its compatible attacks that hits an opponent.
func (e *Engine) FoeAttack(foe dex.Creature) (dex.Attack, bool) {
	for _, a := range e.Dex.FilterAttacksForCreature(foe).All() {
		switch a.Target() {
		case dex.Enemy, dex.Enemies, dex.All, dex.AllButSelf:
			return a, true
		}
	}
	return dex.Attack{}, false
}

func (e *Engine) foeTurn(f *Fight, team Team) {
	foe := f.Foe.Creature
	atk, ok := e.FoeAttack(foe)
	if !ok {
		f.logf("The wild %s is watching.", foe.Name)
		return
	}
	f.logf("The wild %s used %s!", foe.Name, atk.Name())
	m := &team[f.Active]
	m.HP = e.strike(f, foe, m.Creature(e.Dex), atk, m.HP, m.Name(e.Dex))
	if atk.Target() == dex.All {
		f.Foe.HP = e.strike(f, foe, foe, atk, f.Foe.HP, foe.Name)
	}
}

// strike rolls accuracy and applies damage to hp, returning the new hp.
func (e *Engine) strike(f *Fight, att, def dex.Creature, atk dex.Attack, hp uint8, defName string) uint8 {
	chance := int(att.Stats.Accuracy) - int(def.Stats.Dodge)
	if e.intN(100) >= chance {
		f.logf("%s avoided the attack!", defName)
		return hp
	}
	mult := Multiplier(e.Dex, def, atk)
	dmg := Damage(att, def, atk, mult)
	switch {
	case mult == 0:
		f.logf("It doesn't affect %s...", defName)
	case mult > 1:
		f.logf("It's super effective! %s took %d damage.", defName, dmg)
	case mult < 1:
		f.logf("It's not very effective... %s took %d damage.", defName, dmg)
	default:
		f.logf("%s took %d damage.", defName, dmg)
	}
	if dmg >= hp {
		return 0
	}
	return hp - dmg
}

// Multiplier is the effectiveness of atk against def: physical attacks look
// at the defender's species attributes, magical ones at the element cycle.
func Multiplier(d *dex.Dex, def dex.Creature, atk dex.Attack) float64 {
	m := 1.0
	switch atk.Kind {
	case dex.Physical:
		attrs := d.SpeciesOf(def).Attributes
		if atk.Physical.UselessAgainst.Intersects(attrs) {
			return 0
		}
		if atk.Physical.StrongAgainst.Intersects(attrs) {
			m *= 2
		}
		if atk.Physical.WeakAgainst.Intersects(attrs) {
			m *= 0.5
		}
	case dex.Magical:
		el, _ := atk.Element()
		if el.Strong(def.Element) {
			m *= 2
		}
		if el.Weak(def.Element) {
			m *= 0.5
		}
	}
	return m
}

// Damage is the hp lost by def: the attack's flat damage plus a quarter of
// the attacker's attack, minus an eighth of the defender's defense, at least
// one, scaled by mult.
func Damage(att, def dex.Creature, atk dex.Attack, mult float64) uint8 {
	base, _ := atk.Damage()
	raw := int(base) + int(att.Stats.Attack)/4 - int(def.Stats.Defense)/8
	if raw < 1 {
		raw = 1
	}
	v := math.Round(float64(raw) * mult)
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

package game

import "pokeclone/internal/dex"

// Item is a consumable used from the bag during a fight.
type Item struct {
	Name   string     `json:"name"`
	Heal   uint8      `json:"heal"`
	Target dex.Target `json:"target"`
}

// Items is the fixed item list; ItemChoice indexes into it.
var Items = []Item{
	{Name: "Potion", Heal: 20, Target: dex.Ally},
}

// Bag counts the items held by the player, by item name.
type Bag map[string]int

// StarterBag is what a new player begins with.
func StarterBag() Bag {
	return Bag{"Potion": 3}
}

func (b Bag) take(name string) bool {
	if b[name] <= 0 {
		return false
	}
	b[name]--
	return true
}

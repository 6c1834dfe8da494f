// Package strategy implements the Cop and Robber move policies. Every
// operation returns a replacement value; a strategy is never changed in place,
// so a caller may keep an old value and it stays valid.
package strategy

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/menace"
)

// Kind selects the policy variant.
type Kind int

const (
	Random Kind = iota
	Menace
)

func (k Kind) String() string {
	switch k {
	case Random:
		return "Random"
	case Menace:
		return "MENACE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "random" or "menace" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "rand":
		return Random, nil
	case "menace":
		return Menace, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want random or menace)", s)
	}
}

// MarshalText lets Kind appear as a string in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Captured reports whether any cop shares the robber's vertex.
func Captured(cops []graph.Vertex, robber graph.Vertex) bool {
	return slices.Contains(cops, robber)
}

// record is one draw made during the current game.
type record struct {
	key  menace.StateKey
	move int
}

// learner is the MENACE memory shared by both roles. Its map and slice are
// treated as immutable: every change produces fresh copies.
type learner struct {
	bags  map[menace.StateKey]menace.Bag
	moves []record
}

// draw picks a move from the bag for key, creating it with size moves if the
// state has not been seen before.
func (l learner) draw(key menace.StateKey, size int, sample float64) (learner, int) {
	bags := l.bags
	bag, ok := bags[key]
	if !ok {
		bag = menace.NewBag(size)
		bags = maps.Clone(l.bags)
		if bags == nil {
			bags = make(map[menace.StateKey]menace.Bag)
		}
		bags[key] = bag
	}

	move := bag.Choose(sample)
	if move == menace.NoMove {
		panic(fmt.Sprintf("menace: bag for state %q has no tokens", key))
	}

	moves := append(slices.Clip(l.moves), record{key: key, move: move})
	return learner{bags: bags, moves: moves}, move
}

// settle rewards or punishes every move of the finished game and forgets the
// move list. Bags carry over to the next game.
func (l learner) settle(won bool) learner {
	if len(l.moves) == 0 {
		return learner{bags: l.bags}
	}

	bags := maps.Clone(l.bags)
	for _, r := range l.moves {
		if won {
			bags[r.key] = bags[r.key].Increase(r.move, menace.Reward)
		} else {
			bags[r.key] = bags[r.key].Decrease(r.move, menace.Punishment)
		}
	}
	return learner{bags: bags}
}

func (l learner) snapshot() map[menace.StateKey]menace.Bag {
	return maps.Clone(l.bags)
}

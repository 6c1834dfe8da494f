package strategy

import (
	"fmt"

	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/menace"
)

// Cop moves one or more cop tokens.
type Cop struct {
	kind   Kind
	graph  *graph.Graph
	tokens int
	memory learner
}

// NewCop creates a cop strategy controlling tokens cops on g.
func NewCop(kind Kind, g *graph.Graph, tokens int) Cop {
	return Cop{kind: kind, graph: g, tokens: tokens}
}

// Kind returns the policy variant.
func (c Cop) Kind() Kind {
	return c.kind
}

// Tokens returns the number of cops controlled.
func (c Cop) Tokens() int {
	return c.tokens
}

// Bags returns a copy of the learned bags. Random cops have none.
func (c Cop) Bags() map[menace.StateKey]menace.Bag {
	return c.memory.snapshot()
}

// Pending returns how many draws await credit at the end of the game.
func (c Cop) Pending() int {
	return len(c.memory.moves)
}

// Begin places every cop.
func (c Cop) Begin(sample float64) (Cop, []graph.Vertex) {
	radixes := PlacementRadixes(c.graph, c.tokens)

	switch c.kind {
	case Random:
		choices := expand(sample, radixes)
		positions := make([]graph.Vertex, len(choices))
		for i, v := range choices {
			positions[i] = graph.Vertex(v)
		}
		return c, positions

	case Menace:
		memory, move := c.memory.draw(menace.KeyOf(), JointSize(radixes), sample)
		c.memory = memory
		return c, Place(c.graph, c.tokens, move)

	default:
		panic(fmt.Sprintf("strategy: unknown cop kind %d", c.kind))
	}
}

// Move advances every cop by one step.
func (c Cop) Move(cops []graph.Vertex, robber graph.Vertex, sample float64) (Cop, []graph.Vertex) {
	radixes := Radixes(c.graph, cops)

	switch c.kind {
	case Random:
		return c, Apply(c.graph, cops, Encode(expand(sample, radixes), radixes))

	case Menace:
		key := menace.KeyOf(append(cloneVertices(cops), robber)...)
		memory, move := c.memory.draw(key, JointSize(radixes), sample)
		c.memory = memory
		return c, Apply(c.graph, cops, move)

	default:
		panic(fmt.Sprintf("strategy: unknown cop kind %d", c.kind))
	}
}

// End learns from the terminal position of a game.
func (c Cop) End(cops []graph.Vertex, robber graph.Vertex) Cop {
	if c.kind != Menace {
		return c
	}
	c.memory = c.memory.settle(Captured(cops, robber))
	return c
}

func cloneVertices(vs []graph.Vertex) []graph.Vertex {
	out := make([]graph.Vertex, len(vs), len(vs)+1)
	copy(out, vs)
	return out
}

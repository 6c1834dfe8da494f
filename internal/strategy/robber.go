package strategy

import (
	"fmt"

	"github.com/lox/copsandrobbers/internal/graph"
	"github.com/lox/copsandrobbers/internal/menace"
)

// Robber moves the single robber token.
type Robber struct {
	kind   Kind
	graph  *graph.Graph
	memory learner
}

// NewRobber creates a robber strategy on g.
func NewRobber(kind Kind, g *graph.Graph) Robber {
	return Robber{kind: kind, graph: g}
}

// Kind returns the policy variant.
func (r Robber) Kind() Kind {
	return r.kind
}

// Bags returns a copy of the learned bags. Random robbers have none.
func (r Robber) Bags() map[menace.StateKey]menace.Bag {
	return r.memory.snapshot()
}

// Pending returns how many draws await credit at the end of the game.
func (r Robber) Pending() int {
	return len(r.memory.moves)
}

// Begin places the robber after seeing where the cops are.
func (r Robber) Begin(cops []graph.Vertex, sample float64) (Robber, graph.Vertex) {
	n := r.graph.NumVertices()

	switch r.kind {
	case Random:
		return r, graph.Vertex(expand(sample, []int{n})[0])

	case Menace:
		memory, move := r.memory.draw(menace.KeyOf(cops...), n, sample)
		r.memory = memory
		return r, graph.Vertex(move)

	default:
		panic(fmt.Sprintf("strategy: unknown robber kind %d", r.kind))
	}
}

// Move advances the robber by one step.
func (r Robber) Move(cops []graph.Vertex, robber graph.Vertex, sample float64) (Robber, graph.Vertex) {
	radix := Radix(r.graph, robber)

	switch r.kind {
	case Random:
		return r, Step(r.graph, robber, expand(sample, []int{radix})[0])

	case Menace:
		key := menace.KeyOf(append(cloneVertices(cops), robber)...)
		memory, move := r.memory.draw(key, radix, sample)
		r.memory = memory
		return r, Step(r.graph, robber, move)

	default:
		panic(fmt.Sprintf("strategy: unknown robber kind %d", r.kind))
	}
}

// End learns from the terminal position of a game.
func (r Robber) End(cops []graph.Vertex, robber graph.Vertex) Robber {
	if r.kind != Menace {
		return r
	}
	r.memory = r.memory.settle(!Captured(cops, robber))
	return r
}

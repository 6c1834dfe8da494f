package strategy

import "github.com/lox/copsandrobbers/internal/graph"

// Radix is the number of choices a token at v has: each neighbor, then stay.
func Radix(g *graph.Graph, v graph.Vertex) int {
	return g.Degree(v) + 1
}

// Radixes returns the per-token radix for a set of positions.
func Radixes(g *graph.Graph, positions []graph.Vertex) []int {
	radixes := make([]int, len(positions))
	for i, v := range positions {
		radixes[i] = Radix(g, v)
	}
	return radixes
}

// PlacementRadixes is the radix list for placing n tokens anywhere on g.
func PlacementRadixes(g *graph.Graph, n int) []int {
	radixes := make([]int, n)
	for i := range radixes {
		radixes[i] = g.NumVertices()
	}
	return radixes
}

// JointSize is the number of joint move-ids for the given radixes.
func JointSize(radixes []int) int {
	size := 1
	for _, r := range radixes {
		size *= r
	}
	return size
}

// Encode packs per-token choices into a mixed-radix move-id, token 0 being
// least significant.
func Encode(choices, radixes []int) int {
	id := 0
	scale := 1
	for i, c := range choices {
		id += c * scale
		scale *= radixes[i]
	}
	return id
}

// Decode unpacks a move-id into per-token choices.
func Decode(id int, radixes []int) []int {
	choices := make([]int, len(radixes))
	for i, r := range radixes {
		choices[i] = id % r
		id /= r
	}
	return choices
}

// Step returns where a token at v ends up after choice: a neighbor, or v
// itself when choice is the stay index.
func Step(g *graph.Graph, v graph.Vertex, choice int) graph.Vertex {
	neighbors := g.Neighbors(v)
	if choice == len(neighbors) {
		return v
	}
	return neighbors[choice]
}

// Apply decodes a joint move-id against positions and returns the new
// positions.
func Apply(g *graph.Graph, positions []graph.Vertex, id int) []graph.Vertex {
	choices := Decode(id, Radixes(g, positions))
	next := make([]graph.Vertex, len(positions))
	for i, v := range positions {
		next[i] = Step(g, v, choices[i])
	}
	return next
}

// Place decodes a placement move-id into vertices.
func Place(g *graph.Graph, n, id int) []graph.Vertex {
	choices := Decode(id, PlacementRadixes(g, n))
	positions := make([]graph.Vertex, n)
	for i, c := range choices {
		positions[i] = graph.Vertex(c)
	}
	return positions
}

// expand splits one sample across tokens: multiply by the radix, take the
// floor as the choice, keep the fractional part for the next token.
func expand(sample float64, radixes []int) []int {
	choices := make([]int, len(radixes))
	for i, r := range radixes {
		sample *= float64(r)
		c := int(sample)
		if c >= r {
			c = r - 1
		}
		choices[i] = c
		sample -= float64(c)
	}
	return choices
}

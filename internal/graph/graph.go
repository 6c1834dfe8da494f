// Package graph holds the static board the game is played on.
package graph

import (
	"fmt"
	"strings"
)

// Vertex is an index into a graph's vertex list.
type Vertex int

// Graph is an undirected board described by adjacency lists. Neighbor order is
// significant: it fixes which move-id selects which neighbor.
type Graph struct {
	name      string
	adjacency [][]Vertex
}

// New creates a graph from adjacency lists. The lists are copied so the caller
// may reuse its slices. Neighbors must be valid vertex indices; connectivity
// and symmetry are not checked.
func New(name string, adjacency [][]int) (*Graph, error) {
	if len(adjacency) == 0 {
		return nil, fmt.Errorf("graph %q has no vertices", name)
	}

	adj := make([][]Vertex, len(adjacency))
	for v, neighbors := range adjacency {
		adj[v] = make([]Vertex, len(neighbors))
		for i, n := range neighbors {
			if n < 0 || n >= len(adjacency) {
				return nil, fmt.Errorf("graph %q: vertex %d has neighbor %d outside 0..%d",
					name, v, n, len(adjacency)-1)
			}
			adj[v][i] = Vertex(n)
		}
	}

	return &Graph{name: name, adjacency: adj}, nil
}

// MustNew is New for package-level templates that are known to be valid.
func MustNew(name string, adjacency [][]int) *Graph {
	g, err := New(name, adjacency)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the display name of the graph.
func (g *Graph) Name() string {
	return g.name
}

// NumVertices returns N.
func (g *Graph) NumVertices() int {
	return len(g.adjacency)
}

// Neighbors returns the neighbors of v in move-id order. The returned slice
// must not be modified.
func (g *Graph) Neighbors(v Vertex) []Vertex {
	return g.adjacency[v]
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v Vertex) int {
	return len(g.adjacency[v])
}

// Adjacency returns a copy of the adjacency lists as plain ints.
func (g *Graph) Adjacency() [][]int {
	out := make([][]int, len(g.adjacency))
	for v, neighbors := range g.adjacency {
		out[v] = make([]int, len(neighbors))
		for i, n := range neighbors {
			out[v][i] = int(n)
		}
	}
	return out
}

// Edges returns each undirected edge once, as (lower, higher) pairs.
func (g *Graph) Edges() [][2]Vertex {
	var edges [][2]Vertex
	for v, neighbors := range g.adjacency {
		for _, n := range neighbors {
			if Vertex(v) < n {
				edges = append(edges, [2]Vertex{Vertex(v), n})
			}
		}
	}
	return edges
}

// String renders the graph as "name: 0->[1] 1->[0]".
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString(g.name)
	b.WriteString(":")
	for v, neighbors := range g.adjacency {
		fmt.Fprintf(&b, " %d->%v", v, neighbors)
	}
	return b.String()
}
